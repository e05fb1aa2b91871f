package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/pkg/config"
)

var _ auth.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementación del puerto auth.Mailer sobre SMTP.
// Se construye una vez en el arranque y se inyecta; los fallos los absorbe el caso de uso.
type SMTPMailer struct {
	client  *mail.Client
	from    string
	baseURL string
}

// NewSMTPMailer construye el mailer SMTP con la configuración dada.
func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("crear cliente SMTP: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From, baseURL: cfg.BaseURL}, nil
}

// SendVerification envía el correo con el link de verificación de email.
func (m *SMTPMailer) SendVerification(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Confirma tu email para activar tu cuenta:\n\n%s/verificar-email?token=%s\n\n"+
			"El enlace expira en 24 horas. Si no creaste esta cuenta, ignora este correo.\n",
		name, m.baseURL, token)
	return m.send(ctx, email, name, "Confirma tu email", body)
}

// SendWelcome envía el correo de bienvenida tras la verificación.
func (m *SMTPMailer) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Tu cuenta quedó verificada. Ya puedes descubrir y publicar eventos:\n\n%s\n",
		name, m.baseURL)
	return m.send(ctx, email, name, "Bienvenido a Eventos", body)
}

// SendRecovery envía el correo con el link de recuperación de password.
func (m *SMTPMailer) SendRecovery(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf(
		"Hola %s,\n\n"+
			"Recibimos una solicitud para restablecer tu password:\n\n%s/restablecer-password?token=%s\n\n"+
			"El enlace expira en 1 hora. Si no fuiste tú, ignora este correo.\n",
		name, m.baseURL, token)
	return m.send(ctx, email, name, "Recupera tu password", body)
}

func (m *SMTPMailer) send(ctx context.Context, email, name, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("remitente: %w", err)
	}
	if err := msg.AddToFormat(name, email); err != nil {
		return fmt.Errorf("destinatario: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
