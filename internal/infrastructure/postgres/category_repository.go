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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

// Create persiste una nueva categoría. Un slug duplicado se reporta como domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description,
		category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.queryOne(ctx, `SELECT id, name, slug, description, created_at, updated_at
		FROM categories WHERE id = $1`, id)
}

// GetBySlug obtiene una categoría por slug.
func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.queryOne(ctx, `SELECT id, name, slug, description, created_at, updated_at
		FROM categories WHERE slug = $1`, slug)
}

func (r *CategoryRepo) queryOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, description = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		category.ID, category.Name, category.Slug, category.Description, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// List lista categorías con paginación.
func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	query := `SELECT id, name, slug, description, created_at, updated_at
		FROM categories ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
