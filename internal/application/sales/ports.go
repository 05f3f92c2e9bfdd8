package sales

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una transacción (Commit si fn retorna nil).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Options políticas del motor de ventas.
type Options struct {
	// RefundOnce rechaza con domain.ErrConflict el reembolso de una venta con refunded_at.
	// La reserva "refund:<saleID>" en el IdempotencyGuard solo corta antes los reintentos concurrentes.
	RefundOnce bool
	// RefundGuardTTL vigencia de la reserva de reembolso.
	RefundGuardTTL time.Duration
}
