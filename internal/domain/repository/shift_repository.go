package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ShiftRepository persistencia de turnos de caja.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.CashShift) error
	GetByID(ctx context.Context, id string) (*entity.CashShift, error)
	GetForUpdate(ctx context.Context, id string) (*entity.CashShift, error)
	// Close persiste el cierre (hora, efectivo esperado/real, diferencia, estado).
	Close(ctx context.Context, shift *entity.CashShift) error
	// ListOpenStartedBefore turnos abiertos con StartTime anterior a before.
	ListOpenStartedBefore(ctx context.Context, before time.Time) ([]*entity.CashShift, error)
}
