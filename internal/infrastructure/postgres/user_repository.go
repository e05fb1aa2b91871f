package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, email_verified,
	verification_token, verification_sent_at, recovery_token, recovery_token_expiry,
	active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// El email se guarda en minúsculas; la unicidad la garantiza un índice único sobre lower(email).
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario y asigna su ID.
// Una violación de unicidad de email se reporta como domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role, email_verified,
			verification_token, verification_sent_at, recovery_token, recovery_token_expiry,
			active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.EmailVerified,
		user.VerificationToken, user.VerificationSentAt, user.RecoveryToken, user.RecoveryTokenExpiry,
		user.Active, user.CreatedAt, user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (case-insensitive).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

// GetByVerificationToken obtiene el usuario dueño de un token de verificación pendiente.
func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE verification_token = $1`, token)
}

// GetByRecoveryToken obtiene el usuario dueño de un token de recuperación en curso.
func (r *UserRepo) GetByRecoveryToken(ctx context.Context, token string) (*entity.User, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE recovery_token = $1`, token)
}

func (r *UserRepo) queryOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified,
		&u.VerificationToken, &u.VerificationSentAt, &u.RecoveryToken, &u.RecoveryTokenExpiry,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza un usuario. Un cambio de email que choque con otro usuario
// se reporta como domain.ErrEmailAlreadyExists.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role = $5,
			email_verified = $6, verification_token = $7, verification_sent_at = $8,
			recovery_token = $9, recovery_token_expiry = $10, active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.EmailVerified, user.VerificationToken, user.VerificationSentAt,
		user.RecoveryToken, user.RecoveryTokenExpiry, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios con paginación (administración).
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified,
			&u.VerificationToken, &u.VerificationSentAt, &u.RecoveryToken, &u.RecoveryTokenExpiry,
			&u.Active, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
