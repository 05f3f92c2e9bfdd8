package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/rs/zerolog"
)

// ShiftHandler apertura y cierre de turnos de caja (protegido).
type ShiftHandler struct {
	svc *shift.Service
	log zerolog.Logger
}

// NewShiftHandler construye el handler.
func NewShiftHandler(svc *shift.Service, log zerolog.Logger) *ShiftHandler {
	return &ShiftHandler{svc: svc, log: log}
}

// Start godoc
// @Summary      Abrir turno
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartShiftRequest  true  "base de caja"
// @Success      201   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/shifts [post]
func (h *ShiftHandler) Start(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.StartShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.StartShift(c.Context(), userID, storeID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// End godoc
// @Summary      Cerrar turno (conteo ciego)
// @Description  Calcula el efectivo esperado, la diferencia y marca el turno como closed o flagged.
// @Tags         shifts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del turno"
// @Param        body  body  dto.EndShiftRequest  true  "efectivo contado"
// @Success      200   {object}  dto.ShiftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/end [post]
func (h *ShiftHandler) End(c *fiber.Ctx) error {
	var in dto.EndShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.ownShift(c); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.svc.EndShift(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AutoEnd godoc
// @Summary      Cierre automático de turno
// @Description  Cierra sin conteo físico: contado = esperado, diferencia cero.
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id}/auto-end [post]
func (h *ShiftHandler) AutoEnd(c *fiber.Ctx) error {
	if _, err := h.ownShift(c); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.svc.AutoEndShift(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener turno
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del turno"
// @Success      200  {object}  dto.ShiftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shifts/{id} [get]
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ownShift(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func (h *ShiftHandler) ownShift(c *fiber.Ctx) (*dto.ShiftResponse, error) {
	id := c.Params("id")
	sh, err := h.svc.GetShift(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if sh.StoreID != GetStoreID(c) {
		return nil, domain.NotFoundf("turno %s", id)
	}
	return sh, nil
}
