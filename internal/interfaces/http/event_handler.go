package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/usecase"
	"github.com/jhoicas/eventos-api/internal/domain"
)

// EventHandler maneja las peticiones HTTP para Event. El listado y el detalle son
// públicos (con identidad opcional: solo un admin ve borradores); la escritura
// requiere sesión.
type EventHandler struct {
	uc *usecase.EventUseCase
}

// NewEventHandler construye el handler.
func NewEventHandler(uc *usecase.EventUseCase) *EventHandler {
	return &EventHandler{uc: uc}
}

// caller arma la identidad del solicitante desde los locals (zero value = anónimo).
func caller(c *fiber.Ctx) usecase.Caller {
	return usecase.Caller{UserID: GetUserID(c), Role: GetRole(c)}
}

// Create godoc
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), caller(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "title, category_id, starts_at y ends_at son requeridos y coherentes")
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "CATEGORY_NOT_FOUND", Message: "la categoría no existe"})
		}
		return internal(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar eventos
// @Tags         events
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Param        status       query  string  false  "draft|published (solo admin)"
// @Param        from         query  string  false  "Desde (RFC3339 o AAAA-MM-DD)"
// @Param        to           query  string  false  "Hasta"
// @Param        q            query  string  false  "Búsqueda en título y venue"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.EventListResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	var q dto.ListEventsQuery
	if err := c.QueryParser(&q); err != nil {
		return validation(c, "filtros inválidos")
	}
	out, err := h.uc.List(c.Context(), caller(c), q)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return validation(c, "fechas inválidas: usa RFC3339 o AAAA-MM-DD")
		}
		return internal(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener evento por ID
// @Tags         events
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), caller(c), c.Params("id"))
	if err != nil {
		return internal(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "evento no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar evento (admin o creador)
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.EventResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), caller(c), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return forbidden(c)
		case errors.Is(err, domain.ErrInvalidInput):
			return validation(c, "datos del evento inválidos")
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "CATEGORY_NOT_FOUND", Message: "la categoría no existe"})
		}
		return internal(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "evento no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento (borrado lógico; admin o creador)
// @Tags         events
// @Security     Bearer
// @Param        id  path  string  true  "ID del evento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), caller(c), c.Params("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return forbidden(c)
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "evento no encontrado"})
		}
		return internal(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Code: "FORBIDDEN", Message: "sin permiso sobre este evento"})
}
