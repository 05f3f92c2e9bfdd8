package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPaymentMismatch   = errors.New("la suma de pagos no coincide con el total")
)

// Tipos de ítem de inventario reportados en InsufficientStockError.
const (
	StockKindProduct  = "product"
	StockKindMaterial = "material"
)

// InsufficientStockError detalla qué ítem habría quedado en negativo.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Kind      string // product | material
	ItemID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s %s: disponible %s, solicitado %s",
		e.Kind, e.ItemID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// PaymentMismatchError lleva ambos montos para que el caller pueda mostrarlos.
type PaymentMismatchError struct {
	Paid  decimal.Decimal
	Total decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("pagos %s no coinciden con el total %s", e.Paid.StringFixed(2), e.Total.StringFixed(2))
}

func (e *PaymentMismatchError) Is(target error) bool { return target == ErrPaymentMismatch }

// NotFoundf envuelve ErrNotFound con el identificador que faltó.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Invalidf envuelve ErrInvalidInput con el motivo.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
