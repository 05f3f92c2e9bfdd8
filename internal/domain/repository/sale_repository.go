package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleRepository persistencia del agregado Sale (cabecera, ítems y pagos).
type SaleRepository interface {
	// Create inserta cabecera, ítems y pagos; debe llamarse dentro de una transacción.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// MarkRefunded registra la fecha del reembolso; domain.ErrNotFound si la venta no existe.
	MarkRefunded(ctx context.Context, id string, at time.Time) error
	// UpdateStatus retorna domain.ErrNotFound si la venta no existe.
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	// SumGrandTotalSince suma GrandTotal de todas las ventas de la tienda creadas en o después de since.
	SumGrandTotalSince(ctx context.Context, storeID string, since time.Time) (decimal.Decimal, error)
}
