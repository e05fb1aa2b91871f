package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// EventUseCase casos de uso CRUD para eventos: creación, edición, listado filtrado
// y borrado lógico. La visibilidad de borradores depende del rol del solicitante.
type EventUseCase struct {
	events     repository.EventRepository
	categories repository.CategoryRepository
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(events repository.EventRepository, categories repository.CategoryRepository) *EventUseCase {
	return &EventUseCase{events: events, categories: categories}
}

// Caller identidad resuelta por el middleware de auth. Zero value = anónimo.
type Caller struct {
	UserID int64
	Role   string
}

// IsAdmin indica si el solicitante es administrador.
func (c Caller) IsAdmin() bool { return c.Role == entity.RoleAdmin }

// Create crea un evento (por defecto en borrador) a nombre del solicitante.
func (uc *EventUseCase) Create(ctx context.Context, caller Caller, in dto.CreateEventRequest) (*dto.EventResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.CategoryID == "" || in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.EndsAt.Before(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	status := in.Status
	if status == "" {
		status = entity.EventStatusDraft
	}
	now := time.Now()
	event := &entity.Event{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Venue:       strings.TrimSpace(in.Venue),
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Price:       in.Price,
		Capacity:    in.Capacity,
		FlyerURL:    in.FlyerURL,
		Status:      status,
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// GetByID devuelve un evento. Los borradores solo son visibles para admin o su creador;
// para el resto el evento "no existe".
func (uc *EventUseCase) GetByID(ctx context.Context, caller Caller, id string) (*dto.EventResponse, error) {
	event, err := uc.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if event.Status == entity.EventStatusDraft && !uc.canManage(caller, event) {
		return nil, nil
	}
	return toEventResponse(event), nil
}

// Update edita un evento; solo admin o el creador.
func (uc *EventUseCase) Update(ctx context.Context, caller Caller, id string, in dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := uc.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, nil
	}
	if !uc.canManage(caller, event) {
		return nil, domain.ErrForbidden
	}

	if in.Title != nil {
		event.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.CategoryID != nil {
		category, err := uc.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		event.CategoryID = *in.CategoryID
	}
	if in.Venue != nil {
		event.Venue = *in.Venue
	}
	if in.StartsAt != nil {
		event.StartsAt = *in.StartsAt
	}
	if in.EndsAt != nil {
		event.EndsAt = *in.EndsAt
	}
	if event.EndsAt.Before(event.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil {
		event.Price = *in.Price
	}
	if in.Capacity != nil {
		event.Capacity = *in.Capacity
	}
	if in.FlyerURL != nil {
		event.FlyerURL = *in.FlyerURL
	}
	if in.Status != nil {
		if *in.Status != entity.EventStatusDraft && *in.Status != entity.EventStatusPublished {
			return nil, domain.ErrInvalidInput
		}
		event.Status = *in.Status
	}
	event.UpdatedAt = time.Now()
	if err := uc.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

// List lista eventos con filtros y paginación. Para solicitantes no admin el
// filtro de estado se fuerza a "published": los borradores no se listan.
func (uc *EventUseCase) List(ctx context.Context, caller Caller, q dto.ListEventsQuery) (*dto.EventListResponse, error) {
	q.DefaultPage()
	f := repository.EventFilter{
		CategoryID: q.CategoryID,
		Status:     q.Status,
		Search:     strings.TrimSpace(q.Search),
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
	if !caller.IsAdmin() {
		f.Status = entity.EventStatusPublished
	}
	var err error
	if f.From, err = parseDate(q.From); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if f.To, err = parseDate(q.To); err != nil {
		return nil, domain.ErrInvalidInput
	}

	list, total, err := uc.events.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEventResponse(e))
	}
	return &dto.EventListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete hace borrado lógico; solo admin o el creador.
func (uc *EventUseCase) Delete(ctx context.Context, caller Caller, id string) error {
	event, err := uc.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event == nil {
		return domain.ErrNotFound
	}
	if !uc.canManage(caller, event) {
		return domain.ErrForbidden
	}
	return uc.events.SoftDelete(ctx, id, time.Now())
}

func (uc *EventUseCase) canManage(caller Caller, event *entity.Event) bool {
	return caller.IsAdmin() || (caller.UserID != 0 && caller.UserID == event.CreatedBy)
}

// parseDate acepta RFC3339 o fecha simple AAAA-MM-DD; vacío devuelve cero.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toEventResponse(e *entity.Event) *dto.EventResponse {
	return &dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		Venue:       e.Venue,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		Price:       e.Price,
		Capacity:    e.Capacity,
		FlyerURL:    e.FlyerURL,
		Status:      e.Status,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
