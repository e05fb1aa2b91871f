package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) si no hay fila; los errores son de infraestructura.
// Create asigna el ID y devuelve domain.ErrEmailAlreadyExists ante violación de unicidad,
// igual que Update cuando un cambio de email choca con otro usuario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	GetByRecoveryToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
