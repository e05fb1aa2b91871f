package dto

import "time"

// RegisterRequest entrada para registro: name, email y password en texto (se hashea en el use case).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserResponse proyección pública de un usuario (sin hash ni tokens internos).
type UserResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida de login: par de tokens + proyección del usuario.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UnverifiedResponse salida cuando el login encuentra una cuenta sin verificar:
// no es un 401, el cliente debe ofrecer el reenvío de verificación.
type UnverifiedResponse struct {
	EmailVerified bool   `json:"email_verified"` // siempre false
	Email         string `json:"email"`
	Message       string `json:"message"`
}

// VerifyEmailRequest entrada para verificación de email.
type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyEmailResponse salida de la verificación. En la primera verificación exitosa
// se emiten tokens (auto-login); en la repetición idempotente no se emite nada.
type VerifyEmailResponse struct {
	AlreadyVerified bool         `json:"already_verified"`
	AccessToken     string       `json:"access_token,omitempty"`
	RefreshToken    string       `json:"refresh_token,omitempty"`
	User            UserResponse `json:"user"`
}

// ResendVerificationRequest entrada para reenviar el email de verificación.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RecoveryRequest entrada para solicitar recuperación de password.
type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest entrada para restablecer el password con un token de recuperación.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ChangePasswordRequest entrada para cambio de password de un usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// RefreshRequest entrada para renovar el token de acceso.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse salida del refresh: SOLO un nuevo token de acceso.
// El refresh token no rota ni se invalida; sigue siendo válido hasta su propia expiración.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// UpdateProfileRequest entrada para editar el perfil propio. Campos vacíos no se tocan.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1,max=200"`
	Email string `json:"email" validate:"omitempty,email"`
}
