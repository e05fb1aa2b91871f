package auth

import "context"

// Mailer es el puerto hacia el transporte de correo saliente. Para este caso de uso
// los envíos son best-effort: un fallo se registra y nunca aborta la transición
// de estado principal (el registro no debe bloquearse porque el SMTP esté caído).
type Mailer interface {
	SendVerification(ctx context.Context, email, name, token string) error
	SendWelcome(ctx context.Context, email, name string) error
	SendRecovery(ctx context.Context, email, name, token string) error
}
