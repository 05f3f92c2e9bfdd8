package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea del carrito. El precio se toma del catálogo, nunca del cliente.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PaymentRequest pago recibido (cash | card | other).
type PaymentRequest struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// DiscountRequest descuento sobre el subtotal (percentage | fixed).
type DiscountRequest struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CreateSaleRequest body para POST /api/sales.
// Status vacío: completed si lo pagado cubre el total, pending en otro caso.
type CreateSaleRequest struct {
	Items          []SaleItemRequest `json:"items"`
	Payments       []PaymentRequest  `json:"payments"`
	Discount       *DiscountRequest  `json:"discount,omitempty"`
	CustomerID     string            `json:"customer_id,omitempty"`
	OrderType      string            `json:"order_type,omitempty"`
	Status         string            `json:"status,omitempty"`
	TableNumber    *int              `json:"table_number,omitempty"`
	IsGuestOrder   bool              `json:"is_guest_order,omitempty"`
	PaymentTerms   string            `json:"payment_terms,omitempty"`
	PaymentDueDate *time.Time        `json:"payment_due_date,omitempty"`
}

// GuestCustomerRequest datos de contacto para ubicar o crear el cliente invitado.
type GuestCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// GuestCheckoutRequest body para POST /api/sales/guest.
type GuestCheckoutRequest struct {
	Customer GuestCustomerRequest `json:"customer"`
	Sale     CreateSaleRequest    `json:"sale"`
}

// UpdateSaleStatusRequest body para PATCH /api/sales/:id/status.
type UpdateSaleStatusRequest struct {
	Status string `json:"status"`
}

// RefundSaleRequest body para POST /api/sales/:id/refund.
type RefundSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleItemResponse línea persistida con el precio congelado al vender.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PaymentResponse pago persistido.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// SaleResponse respuesta de venta con ítems y pagos.
type SaleResponse struct {
	ID             string             `json:"id"`
	StoreID        string             `json:"store_id"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	Payments       []PaymentResponse  `json:"payments"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountType   string             `json:"discount_type,omitempty"`
	DiscountValue  decimal.Decimal    `json:"discount_value"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	TotalPaid      decimal.Decimal    `json:"total_paid"`
	OrderType      string             `json:"order_type"`
	Status         string             `json:"status"`
	TableNumber    *int               `json:"table_number,omitempty"`
	IsGuestOrder   bool               `json:"is_guest_order"`
	PaymentTerms   string             `json:"payment_terms,omitempty"`
	PaymentDueDate *time.Time         `json:"payment_due_date,omitempty"`
	RefundedAt     *time.Time         `json:"refunded_at,omitempty"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// RefundResponse confirmación de reembolso (no se persiste como entidad propia).
type RefundResponse struct {
	SaleID         string          `json:"sale_id"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
	RefundedBy     string          `json:"refunded_by"`
	RefundedAt     time.Time       `json:"refunded_at"`
	ItemsRestocked int             `json:"items_restocked"`
	PointsReversed int64           `json:"points_reversed"`
}
