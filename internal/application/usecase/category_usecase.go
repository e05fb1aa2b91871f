package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías de eventos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría; el slug se deriva del nombre y debe ser único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	slug := Slugify(name)
	existing, err := uc.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Update actualiza nombre/descripción; el slug se recalcula si cambia el nombre.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		category.Name = name
		category.Slug = Slugify(name)
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		category.Description = desc
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(ctx context.Context, limit, offset int) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina una categoría por ID.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normaliza un nombre a slug: minúsculas, guiones, sin caracteres raros.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugInvalid.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
