package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Conciertos":           "conciertos",
		"  Teatro y Danza  ":   "teatro-y-danza",
		"Música (en vivo)!!":   "m-sica-en-vivo",
		"Ferias---Artesanales": "ferias-artesanales",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.Slugify(in), "entrada: %q", in)
	}
}

func TestCategoryCreate_GeneraSlug(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	out, err := uc.Create(context.Background(), dto.CreateCategoryRequest{
		Name:        "Teatro y Danza",
		Description: "Artes escénicas",
	})
	require.NoError(t, err)
	assert.Equal(t, "teatro-y-danza", out.Slug)
	assert.NotEmpty(t, out.ID)
}

func TestCategoryCreate_SlugDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Conciertos"})
	require.NoError(t, err)

	// Mismo slug aunque el nombre difiera en mayúsculas y espacios.
	_, err = uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "  CONCIERTOS "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	_, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_RecalculaSlug(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	created, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Conciertos"})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), created.ID, dto.UpdateCategoryRequest{Name: "Festivales"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Festivales", out.Name)
	assert.Equal(t, "festivales", out.Slug)
}

func TestCategoryUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	out, err := uc.Update(context.Background(), "no-existe", dto.UpdateCategoryRequest{Name: "X"})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCategoryDelete(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo())

	created, err := uc.Create(context.Background(), dto.CreateCategoryRequest{Name: "Conciertos"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrNotFound)

	out, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}
