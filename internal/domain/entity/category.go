package entity

import "time"

// Category agrupa eventos para filtrado y navegación.
type Category struct {
	ID          string // uuid
	Name        string
	Slug        string // único, derivado del nombre
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
