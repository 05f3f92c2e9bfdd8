package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. La transición es libre (ver sales.UpdateStatus).
const (
	SaleStatusPending    = "pending"
	SaleStatusProcessing = "processing"
	SaleStatusShipped    = "shipped"
	SaleStatusCompleted  = "completed"
	SaleStatusCancelled  = "cancelled"
)

// Tipos de pedido.
const (
	OrderTypeInStore  = "in-store"
	OrderTypeOnline   = "online"
	OrderTypeCurbside = "curbside"
)

// Medios de pago.
const (
	PaymentTypeCash  = "cash"
	PaymentTypeCard  = "card"
	PaymentTypeOther = "other"
)

// Tipos de descuento.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// ValidSaleStatus indica si s es un estado conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusPending, SaleStatusProcessing, SaleStatusShipped, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// ValidOrderType indica si t es un tipo de pedido conocido.
func ValidOrderType(t string) bool {
	return t == OrderTypeInStore || t == OrderTypeOnline || t == OrderTypeCurbside
}

// ValidPaymentType indica si t es un medio de pago conocido.
func ValidPaymentType(t string) bool {
	return t == PaymentTypeCash || t == PaymentTypeCard || t == PaymentTypeOther
}

// Discount descuento solicitado sobre el subtotal.
type Discount struct {
	Type  string
	Value decimal.Decimal
}

// Sale cabecera de una venta; es dueña de sus ítems y pagos.
// Invariante: GrandTotal = Subtotal - DiscountAmount + TaxAmount.
type Sale struct {
	ID             string
	StoreID        string
	CustomerID     string // vacío = venta sin cliente
	CreatedBy      string
	Items          []SaleItem
	Payments       []Payment
	Subtotal       decimal.Decimal
	DiscountType   string
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
	OrderType      string
	Status         string
	TableNumber    *int
	IsGuestOrder   bool
	PaymentTerms   string
	PaymentDueDate *time.Time
	RefundedAt     *time.Time // nil = nunca reembolsada
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TotalPaid suma de los pagos registrados.
func (s *Sale) TotalPaid() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SaleItem línea de venta. UnitPrice es una foto del precio al vender y no cambia después.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Payment pago inmutable asociado a una venta.
type Payment struct {
	ID        string
	SaleID    string
	Type      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}
