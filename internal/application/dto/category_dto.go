package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCategoryRequest entrada para actualizar una categoría. Campos vacíos no se tocan.
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
