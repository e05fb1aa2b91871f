package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los mapea a status codes:
// validación -> 400, credenciales/token -> 401, rol -> 403, no encontrado -> 404, unicidad -> 409.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrInvalidCredentials respuesta genérica de login: cubre email inexistente y
	// password incorrecto con la misma forma para no permitir enumeración de cuentas.
	ErrInvalidCredentials = errors.New("credenciales inválidas")

	// ErrAccountInactive cuenta suspendida. Externamente se responde igual de genérico
	// que ErrInvalidCredentials, con una nota de contactar al administrador.
	ErrAccountInactive = errors.New("cuenta desactivada")

	// ErrEmailNotVerified el usuario existe pero aún no verificó su email. NO es un
	// fallo de credenciales: el cliente debe ofrecer reenviar la verificación.
	ErrEmailNotVerified = errors.New("email no verificado")

	// ErrInvalidToken bearer token ausente, malformado, expirado o de clase equivocada.
	ErrInvalidToken = errors.New("token inválido o expirado")

	// ErrRecoveryExpired el token de recuperación existe pero su expiración ya pasó.
	// No se limpia en este caso: solo un reset exitoso o una nueva solicitud lo reemplazan.
	ErrRecoveryExpired = errors.New("el token de recuperación expiró")

	// ErrVerificationExpired solo se produce si la expiración de tokens de verificación
	// está habilitada por configuración (por defecto no lo está).
	ErrVerificationExpired = errors.New("el token de verificación expiró")
)
