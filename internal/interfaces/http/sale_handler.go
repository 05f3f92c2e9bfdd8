package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/rs/zerolog"
)

// SaleHandler maneja ventas, checkout de invitados, reembolsos y estados (protegido).
type SaleHandler struct {
	svc *sales.Service
	log zerolog.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *sales.Service, log zerolog.Logger) *SaleHandler {
	return &SaleHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Procesar venta
// @Description  Valida, calcula totales, descuenta inventario y acumula fidelización en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "items, payments, discount, customer_id, order_type, status"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.ProcessTransaction(c.Context(), storeID, userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GuestCheckout godoc
// @Summary      Checkout de invitado
// @Description  Ubica al cliente por email o teléfono (o lo crea) y procesa la venta a su nombre.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GuestCheckoutRequest  true  "customer + sale"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/sales/guest [post]
func (h *SaleHandler) GuestCheckout(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.GuestCheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.GuestCheckout(c.Context(), storeID, userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ownSale(c)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la venta
// @Description  Cualquier estado conocido puede asignarse desde cualquier otro; no toca inventario.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleStatusRequest  true  "pending | processing | shipped | completed | cancelled"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSaleStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.ownSale(c); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.svc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Refund godoc
// @Summary      Reembolsar venta
// @Description  Repone el stock de cada línea y revierte la fidelización del cliente en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.RefundSaleRequest  true  "motivo"
// @Success      200   {object}  dto.RefundResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/refund [post]
func (h *SaleHandler) Refund(c *fiber.Ctx) error {
	var in dto.RefundSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.ownSale(c); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.svc.RefundSale(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ownSale carga la venta del path y verifica que pertenezca a la tienda del token.
// Una venta de otra tienda se reporta como inexistente.
func (h *SaleHandler) ownSale(c *fiber.Ctx) (*dto.SaleResponse, error) {
	id := c.Params("id")
	sale, err := h.svc.GetSale(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if sale.StoreID != GetStoreID(c) {
		return nil, domain.NotFoundf("venta %s", id)
	}
	return sale, nil
}
