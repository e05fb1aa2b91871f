package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una cuenta del sistema. El id numérico lo asigna la base de datos.
//
// Invariantes que mantiene el caso de uso de auth:
//   - VerificationToken no nulo mientras la verificación está pendiente; nulo después.
//   - RecoveryToken y RecoveryTokenExpiry son nulos o no nulos juntos.
//   - PasswordHash nunca vacío ni igual al password en texto plano.
type User struct {
	ID           int64
	Name         string
	Email        string // único (el store lo guarda en minúsculas)
	PasswordHash string // bcrypt hash, nunca se serializa hacia afuera
	Role         string // admin | user

	EmailVerified      bool
	VerificationToken  *string
	VerificationSentAt *time.Time // fecha de emisión del token de verificación (para TTL opcional)

	RecoveryToken       *string
	RecoveryTokenExpiry *time.Time

	// Active en false deshabilita el login aunque el email esté verificado
	// (suspensión blanda, distinta de un borrado).
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin indica si la cuenta tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
