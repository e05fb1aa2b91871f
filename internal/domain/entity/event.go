package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de publicación de un evento.
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
)

// Event representa un evento publicable del catálogo.
type Event struct {
	ID          string // uuid
	Title       string
	Description string
	CategoryID  string
	Venue       string
	StartsAt    time.Time
	EndsAt      time.Time
	Price       decimal.Decimal
	Capacity    int
	FlyerURL    string // la gestión de archivos es de otro servicio; aquí solo la URL
	Status      string // draft | published
	CreatedBy   int64  // id del usuario creador

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // soft-delete: los listados públicos lo excluyen
}
