package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary consolidado diario de ventas y diferencias de caja de una tienda.
type DailySummary struct {
	StoreID        string
	Date           time.Time
	SalesCount     int64
	CancelledCount int64
	GrossSales     decimal.Decimal // suma de GrandTotal de ventas no canceladas
	ShiftsClosed   int64
	ShiftsFlagged  int64
	NetVariance    decimal.Decimal // suma de Variance de turnos cerrados ese día
}
