package repository

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// EventFilter criterios de listado de eventos. Los campos en cero no filtran.
type EventFilter struct {
	CategoryID string
	Status     string // draft | published; vacío = ambos (solo para admin)
	From       time.Time
	To         time.Time
	Search     string // busca en título y venue
	Limit      int
	Offset     int
}

// EventRepository define el puerto de persistencia para Event (DIP).
// El borrado es lógico (DeletedAt); las búsquedas excluyen eventos borrados.
type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	List(ctx context.Context, f EventFilter) ([]*entity.Event, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
