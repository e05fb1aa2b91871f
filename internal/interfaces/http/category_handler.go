package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/domain"
)

// CategoryHandler maneja las peticiones HTTP para Category.
// Lectura pública; escritura solo admin (la exige el router).
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría (admin)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, description"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return validation(c, "name es requerido")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE", Message: "ya existe una categoría con ese nombre"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return validation(c, "name es requerido")
		}
		return internal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "paginación inválida")
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return internal(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría (admin)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE", Message: "ya existe una categoría con ese nombre"})
		}
		return internal(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "categoría no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría (admin)
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "categoría no encontrada"})
		}
		return internal(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
