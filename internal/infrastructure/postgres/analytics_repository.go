package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el consolidado diario.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica (normalmente sobre el pool).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// DailySummary consolida ventas creadas y turnos cerrados en [from, to).
// Las ventas canceladas se cuentan aparte y no suman a GrossSales.
// Usa COALESCE para devolver cero si no hay filas (día sin movimiento).
func (r *AnalyticsRepo) DailySummary(ctx context.Context, storeID string, from, to time.Time) (*entity.DailySummary, error) {
	const salesQuery = `
	SELECT
	    COUNT(*) FILTER (WHERE status <> 'cancelled')                          AS sales_count,
	    COUNT(*) FILTER (WHERE status =  'cancelled')                          AS cancelled_count,
	    COALESCE(SUM(grand_total) FILTER (WHERE status <> 'cancelled'), 0)    AS gross_sales
	FROM sales
	WHERE store_id = $1
	  AND created_at >= $2 AND created_at < $3`

	const shiftsQuery = `
	SELECT
	    COUNT(*) FILTER (WHERE status = 'closed')  AS shifts_closed,
	    COUNT(*) FILTER (WHERE status = 'flagged') AS shifts_flagged,
	    COALESCE(SUM(variance), 0)                 AS net_variance
	FROM cash_shifts
	WHERE store_id = $1
	  AND end_time >= $2 AND end_time < $3`

	out := &entity.DailySummary{StoreID: storeID, Date: from}
	err := r.q.QueryRow(ctx, salesQuery, storeID, from, to).
		Scan(&out.SalesCount, &out.CancelledCount, &out.GrossSales)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailySummary sales: %w", err)
	}
	err = r.q.QueryRow(ctx, shiftsQuery, storeID, from, to).
		Scan(&out.ShiftsClosed, &out.ShiftsFlagged, &out.NetVariance)
	if err != nil {
		return nil, fmt.Errorf("analytics.DailySummary shifts: %w", err)
	}
	return out, nil
}
