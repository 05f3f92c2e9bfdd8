package repository

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// AnalyticsRepository consultas agregadas de solo lectura.
type AnalyticsRepository interface {
	// DailySummary consolida ventas y turnos cerrados en [from, to).
	DailySummary(ctx context.Context, storeID string, from, to time.Time) (*entity.DailySummary, error)
}
