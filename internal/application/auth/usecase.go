package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
	"github.com/jhoicas/eventos-api/pkg/logger"
	"github.com/jhoicas/eventos-api/pkg/password"
	"github.com/jhoicas/eventos-api/pkg/random"
	"github.com/jhoicas/eventos-api/pkg/token"
)

// Mensajes genéricos anti-enumeración: misma respuesta exista o no la cuenta.
const (
	MsgRecoverySent     = "si el email está registrado, enviamos instrucciones para recuperar el password"
	MsgVerificationSent = "si el email está registrado, enviamos un nuevo correo de verificación"
	MsgAlreadyVerified  = "el email ya está verificado, puedes iniciar sesión"
)

// Config ajustes del ciclo de vida de identidad.
type Config struct {
	// VerificationTTL expiración de tokens de verificación. Cero la deshabilita:
	// el comportamiento por defecto es que nunca expiren, aunque el correo prometa 24h.
	VerificationTTL time.Duration
	// RecoveryTTL vida del token de recuperación (por defecto 1 hora).
	RecoveryTTL time.Duration
}

// UseCase orquesta registro, login, verificación de email, recuperación y cambio de
// password, y la emisión/renovación de tokens. Compone el hasher, el codec y el store;
// no guarda estado propio entre requests.
type UseCase struct {
	users  repository.UserRepository
	codec  *token.Codec
	mailer Mailer
	log    *logger.Logger
	cfg    Config
	now    func() time.Time
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, codec *token.Codec, mailer Mailer, log *logger.Logger, cfg Config) *UseCase {
	if cfg.RecoveryTTL <= 0 {
		cfg.RecoveryTTL = time.Hour
	}
	return &UseCase{
		users:  users,
		codec:  codec,
		mailer: mailer,
		log:    log,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Register crea la cuenta en estado pendiente de verificación y envía (best-effort)
// el correo con el token. Nunca devuelve tokens de sesión: la cuenta aún no puede autenticarse.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	verifToken, err := random.Hex(random.TokenBytes)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		Role:               entity.RoleUser,
		EmailVerified:      false,
		VerificationToken:  &verifToken,
		VerificationSentAt: &now,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	// Una carrera contra otro registro con el mismo email termina aquí: el store
	// convierte la violación de unicidad en ErrEmailAlreadyExists.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.sendBestEffort(ctx, "verificación", user.Email, func() error {
		return uc.mailer.SendVerification(ctx, user.Email, user.Name, verifToken)
	})

	resp := toUserResponse(user)
	return &resp, nil
}

// Login autentica por email/password y emite el par de tokens.
//
// Orden de comprobaciones (deliberado):
//  1. email inexistente -> credenciales inválidas (genérico, sin revelar existencia)
//  2. cuenta desactivada -> credenciales inválidas con nota de contactar al administrador
//  3. email sin verificar -> ErrEmailNotVerified ANTES de comparar el password, para que
//     el cliente dirija al flujo de reenvío de verificación
//  4. password incorrecto -> credenciales inválidas (misma forma que el caso 1)
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return nil, domain.ErrAccountInactive
	}
	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}
	if !password.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.issueSession(user)
}

// VerifyEmail consume el token de verificación: marca el email como verificado,
// limpia el token y emite tokens de sesión (auto-login tras la primera verificación).
// Repetir la llamada sobre una cuenta ya verificada es un no-op idempotente sin emisión.
func (uc *UseCase) VerifyEmail(ctx context.Context, verifToken string) (*dto.VerifyEmailResponse, error) {
	verifToken = strings.TrimSpace(verifToken)
	if verifToken == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByVerificationToken(ctx, verifToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.EmailVerified {
		// Tolera doble click / reintentos del link.
		return &dto.VerifyEmailResponse{AlreadyVerified: true, User: toUserResponse(user)}, nil
	}
	// Comprobación opcional: por defecto VerificationTTL es cero y los tokens no expiran.
	if uc.cfg.VerificationTTL > 0 && user.VerificationSentAt != nil &&
		uc.now().After(user.VerificationSentAt.Add(uc.cfg.VerificationTTL)) {
		return nil, domain.ErrVerificationExpired
	}

	user.EmailVerified = true
	user.VerificationToken = nil
	user.VerificationSentAt = nil
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.sendBestEffort(ctx, "bienvenida", user.Email, func() error {
		return uc.mailer.SendWelcome(ctx, user.Email, user.Name)
	})

	session, err := uc.issueSession(user)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyEmailResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         session.User,
	}, nil
}

// ResendVerification regenera el token de verificación (invalidando el anterior) y reenvía el correo.
// Si el email no existe responde el mensaje genérico; si ya está verificado lo informa
// (asimetría deliberada heredada del diseño original, no "corregir" en silencio).
func (uc *UseCase) ResendVerification(ctx context.Context, email string) (*dto.MessageResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &dto.MessageResponse{Message: MsgVerificationSent}, nil
	}
	if user.EmailVerified {
		return &dto.MessageResponse{Message: MsgAlreadyVerified}, nil
	}

	verifToken, err := random.Hex(random.TokenBytes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user.VerificationToken = &verifToken
	user.VerificationSentAt = &now
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.sendBestEffort(ctx, "verificación", user.Email, func() error {
		return uc.mailer.SendVerification(ctx, user.Email, user.Name, verifToken)
	})
	return &dto.MessageResponse{Message: MsgVerificationSent}, nil
}

// RequestPasswordRecovery genera un token de recuperación con expiración y envía el correo.
// La respuesta es byte-idéntica exista o no la cuenta (anti-enumeración).
func (uc *UseCase) RequestPasswordRecovery(ctx context.Context, email string) (*dto.MessageResponse, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &dto.MessageResponse{Message: MsgRecoverySent}, nil
	}

	recToken, err := random.Hex(random.TokenBytes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	expiry := now.Add(uc.cfg.RecoveryTTL)
	// Una nueva solicitud reemplaza cualquier token de recuperación anterior.
	user.RecoveryToken = &recToken
	user.RecoveryTokenExpiry = &expiry
	user.UpdatedAt = now
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}

	uc.sendBestEffort(ctx, "recuperación", user.Email, func() error {
		return uc.mailer.SendRecovery(ctx, user.Email, user.Name, recToken)
	})
	return &dto.MessageResponse{Message: MsgRecoverySent}, nil
}

// ResetPassword consume un token de recuperación vigente y guarda el nuevo password.
// Un token expirado NO se limpia aquí: solo un reset exitoso o una nueva solicitud lo reemplazan.
func (uc *UseCase) ResetPassword(ctx context.Context, recToken, newPassword string) (*dto.MessageResponse, error) {
	recToken = strings.TrimSpace(recToken)
	if recToken == "" || newPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByRecoveryToken(ctx, recToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.RecoveryTokenExpiry == nil || uc.now().After(*user.RecoveryTokenExpiry) {
		return nil, domain.ErrRecoveryExpired
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.RecoveryToken = nil
	user.RecoveryTokenExpiry = nil
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "password actualizado, ya puedes iniciar sesión"}, nil
}

// ChangePassword cambia el password de un usuario ya autenticado verificando el actual.
func (uc *UseCase) ChangePassword(ctx context.Context, userID int64, in dto.ChangePasswordRequest) (*dto.MessageResponse, error) {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// No debería ocurrir tras pasar el middleware de auth.
		return nil, domain.ErrUserNotFound
	}
	if !password.Verify(in.CurrentPassword, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := password.Hash(in.NewPassword)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "password actualizado"}, nil
}

// RefreshAccessToken valida el refresh token y emite SOLO un nuevo token de acceso.
// El refresh token no rota: el mismo sigue siendo válido hasta su expiración.
func (uc *UseCase) RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := uc.codec.VerifyRefresh(refreshToken)
	if err != nil {
		// Expirado vs malformado solo interesa para telemetría; el cliente ve un 401 genérico.
		uc.log.Debug().Bool("expired", errors.Is(err, token.ErrExpired)).Msg("refresh token rechazado")
		return nil, domain.ErrInvalidToken
	}

	user, err := uc.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidToken
	}
	if !user.Active {
		return nil, domain.ErrAccountInactive
	}

	access, err := uc.codec.IssueAccess(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// GetProfile devuelve la proyección pública del usuario autenticado.
func (uc *UseCase) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile edita name/email del usuario autenticado. Un cambio de email que
// choque con otra cuenta se reporta como conflicto (lo detecta el store).
func (uc *UseCase) UpdateProfile(ctx context.Context, userID int64, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" && email != user.Email {
		user.Email = email
	}
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ListUsers lista cuentas con paginación (solo administración).
func (uc *UseCase) ListUsers(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// issueSession emite el par access+refresh para un usuario ya autenticado.
func (uc *UseCase) issueSession(user *entity.User) (*dto.LoginResponse, error) {
	access, err := uc.codec.IssueAccess(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return nil, err
	}
	refresh, err := uc.codec.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	}, nil
}

// sendBestEffort ejecuta un envío de correo y registra el fallo sin propagarlo.
// Nunca se loguean tokens ni passwords, solo el tipo de correo y el destinatario.
func (uc *UseCase) sendBestEffort(_ context.Context, kind, email string, send func() error) {
	if err := send(); err != nil {
		uc.log.Warn().Err(err).Str("email", email).Str("tipo", kind).Msg("no se pudo enviar el correo")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
