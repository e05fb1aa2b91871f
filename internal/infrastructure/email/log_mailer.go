package email

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/pkg/logger"
)

var _ auth.Mailer = (*LogMailer)(nil)

// LogMailer mailer de desarrollo: no envía nada, solo registra.
// Se usa cuando SMTP_HOST no está configurado. Loguea el token en nivel debug
// para poder completar los flujos de verificación/recuperación en local.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de solo-log.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendVerification(_ context.Context, email, _, token string) error {
	m.log.Info().Str("email", email).Msg("correo de verificación (simulado)")
	m.log.Debug().Str("token", token).Msg("token de verificación")
	return nil
}

func (m *LogMailer) SendWelcome(_ context.Context, email, _ string) error {
	m.log.Info().Str("email", email).Msg("correo de bienvenida (simulado)")
	return nil
}

func (m *LogMailer) SendRecovery(_ context.Context, email, _, token string) error {
	m.log.Info().Str("email", email).Msg("correo de recuperación (simulado)")
	m.log.Debug().Str("token", token).Msg("token de recuperación")
	return nil
}
