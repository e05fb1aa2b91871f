package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

const eventColumns = `id, title, description, category_id, venue, starts_at, ends_at,
	price, capacity, flyer_url, status, created_by, created_at, updated_at, deleted_at`

// EventRepo implementación del puerto EventRepository sobre PostgreSQL.
// Todas las consultas excluyen eventos con borrado lógico (deleted_at no nulo).
type EventRepo struct {
	pool *pgxpool.Pool
}

// NewEventRepository construye el adaptador de persistencia para eventos.
func NewEventRepository(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Create persiste un nuevo evento.
func (r *EventRepo) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, description, category_id, venue, starts_at, ends_at,
			price, capacity, flyer_url, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.pool.Exec(ctx, query,
		event.ID, event.Title, event.Description, event.CategoryID, event.Venue,
		event.StartsAt, event.EndsAt, event.Price, event.Capacity, event.FlyerURL,
		event.Status, event.CreatedBy, event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID. Devuelve (nil, nil) si no existe o fue borrado.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND deleted_at IS NULL`
	var e entity.Event
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.Venue, &e.StartsAt, &e.EndsAt,
		&e.Price, &e.Capacity, &e.FlyerURL, &e.Status, &e.CreatedBy,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Update actualiza un evento.
func (r *EventRepo) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events SET title = $2, description = $3, category_id = $4, venue = $5,
			starts_at = $6, ends_at = $7, price = $8, capacity = $9, flyer_url = $10,
			status = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.pool.Exec(ctx, query,
		event.ID, event.Title, event.Description, event.CategoryID, event.Venue,
		event.StartsAt, event.EndsAt, event.Price, event.Capacity, event.FlyerURL,
		event.Status, event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// List lista eventos según el filtro y devuelve también el total sin paginar.
func (r *EventRepo) List(ctx context.Context, f repository.EventFilter) ([]*entity.Event, int, error) {
	where := []string{"deleted_at IS NULL"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.CategoryID != "" {
		where = append(where, "category_id = "+arg(f.CategoryID))
	}
	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if !f.From.IsZero() {
		where = append(where, "starts_at >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "starts_at <= "+arg(f.To))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, "(title ILIKE "+p+" OR venue ILIKE "+p+")")
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + cond +
		` ORDER BY starts_at LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg(f.Offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var list []*entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.CategoryID, &e.Venue, &e.StartsAt, &e.EndsAt,
			&e.Price, &e.Capacity, &e.FlyerURL, &e.Status, &e.CreatedBy,
			&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// SoftDelete marca el evento como borrado; las consultas dejan de verlo.
func (r *EventRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE events SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	return nil
}
