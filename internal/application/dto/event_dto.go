package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEventRequest entrada para crear un evento.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=300"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	CategoryID  string          `json:"category_id" validate:"required,uuid"`
	Venue       string          `json:"venue" validate:"omitempty,max=300"`
	StartsAt    time.Time       `json:"starts_at" validate:"required"`
	EndsAt      time.Time       `json:"ends_at" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity" validate:"min=0"`
	FlyerURL    string          `json:"flyer_url" validate:"omitempty,url"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft published"`
}

// UpdateEventRequest entrada para actualizar un evento. Punteros nulos no se tocan.
type UpdateEventRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"category_id"`
	Venue       *string          `json:"venue"`
	StartsAt    *time.Time       `json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at"`
	Price       *decimal.Decimal `json:"price"`
	Capacity    *int             `json:"capacity"`
	FlyerURL    *string          `json:"flyer_url"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft published"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"category_id"`
	Venue       string          `json:"venue,omitempty"`
	StartsAt    time.Time       `json:"starts_at"`
	EndsAt      time.Time       `json:"ends_at"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	FlyerURL    string          `json:"flyer_url,omitempty"`
	Status      string          `json:"status"`
	CreatedBy   int64           `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListEventsQuery filtros de listado (query params).
type ListEventsQuery struct {
	PageRequest
	CategoryID string `query:"category_id"`
	Status     string `query:"status" validate:"omitempty,oneof=draft published"`
	From       string `query:"from"` // RFC3339 o fecha AAAA-MM-DD
	To         string `query:"to"`
	Search     string `query:"q"`
}

// EventListResponse listado paginado de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
