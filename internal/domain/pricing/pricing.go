package pricing

import (
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TaxRate el impuesto es fijo en cero; no se calcula.
var TaxRate = decimal.Zero

// PaymentTolerance diferencia máxima aceptada entre pagos y total.
var PaymentTolerance = decimal.RequireFromString("0.01")

var hundred = decimal.NewFromInt(100)

// Line precio de catálogo vigente y cantidad solicitada.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

// Totals resultado del cálculo. LineSubtotals está alineado con las líneas de entrada.
type Totals struct {
	LineSubtotals  []decimal.Decimal
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Calculate calcula subtotal, descuento, impuesto y total.
// Descuento porcentual = subtotal * valor / 100 redondeado a 2 decimales; fijo = valor.
// El descuento nunca supera el subtotal, de modo que el total nunca es negativo.
func Calculate(lines []Line, discount *entity.Discount) (Totals, error) {
	t := Totals{LineSubtotals: make([]decimal.Decimal, len(lines))}
	for i, l := range lines {
		if l.Quantity <= 0 {
			return Totals{}, domain.Invalidf("la cantidad debe ser positiva (línea %d)", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return Totals{}, domain.Invalidf("precio negativo (línea %d)", i+1)
		}
		st := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		t.LineSubtotals[i] = st
		t.Subtotal = t.Subtotal.Add(st)
	}

	amount, err := DiscountAmount(t.Subtotal, discount)
	if err != nil {
		return Totals{}, err
	}
	t.DiscountAmount = amount
	t.TaxAmount = t.Subtotal.Sub(amount).Mul(TaxRate).Round(2)
	t.GrandTotal = t.Subtotal.Sub(t.DiscountAmount).Add(t.TaxAmount)
	return t, nil
}

// DiscountAmount monto a descontar sobre subtotal. nil = sin descuento.
func DiscountAmount(subtotal decimal.Decimal, discount *entity.Discount) (decimal.Decimal, error) {
	if discount == nil || discount.Type == "" {
		return decimal.Zero, nil
	}
	if discount.Value.IsNegative() {
		return decimal.Zero, domain.Invalidf("el descuento no puede ser negativo")
	}
	var amount decimal.Decimal
	switch discount.Type {
	case entity.DiscountTypePercentage:
		if discount.Value.GreaterThan(hundred) {
			return decimal.Zero, domain.Invalidf("descuento porcentual mayor a 100")
		}
		amount = subtotal.Mul(discount.Value).Div(hundred).Round(2)
	case entity.DiscountTypeFixed:
		amount = discount.Value
	default:
		return decimal.Zero, domain.Invalidf("tipo de descuento desconocido: %s", discount.Type)
	}
	if amount.GreaterThan(subtotal) {
		amount = subtotal
	}
	return amount, nil
}

// PaymentsMatch indica si |pagado - total| <= PaymentTolerance.
func PaymentsMatch(paid, total decimal.Decimal) bool {
	return paid.Sub(total).Abs().LessThanOrEqual(PaymentTolerance)
}
