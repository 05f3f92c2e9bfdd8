package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/rs/zerolog"
)

// AnalyticsHandler consolidados de la tienda.
type AnalyticsHandler struct {
	uc  *analytics.DailySummaryUseCase
	log zerolog.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.DailySummaryUseCase, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetDailySummary godoc
// @Summary      Consolidado diario
// @Description  Ventas, ticket promedio y diferencias de caja de los turnos cerrados en el día.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD). Default: hoy."
// @Success      200  {object}  dto.DailySummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily [get]
func (h *AnalyticsHandler) GetDailySummary(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.DailySummary(c.Context(), storeID, c.Query("date"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
