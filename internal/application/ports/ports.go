package ports

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// EventPublisher puerto de salida hacia la capa de notificaciones (dashboard, websockets).
// Es fire-and-forget: un error se registra en el log y nunca revierte la operación que lo originó.
type EventPublisher interface {
	Publish(ctx context.Context, kind, storeID string, payload any) error
}

// ShiftReporter envía el reporte de fin de turno (PDF, correo...). Se invoca tras el commit del cierre.
type ShiftReporter interface {
	SendShiftReport(ctx context.Context, shift *entity.CashShift) error
}

// IdempotencyGuard reserva una clave una sola vez (p. ej. "refund:<saleID>").
// Acquire retorna false si la clave ya estaba tomada.
type IdempotencyGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
