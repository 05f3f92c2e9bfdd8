package dto

import "github.com/shopspring/decimal"

// DailySummaryResponse consolidado del día para GET /api/analytics/daily?date=YYYY-MM-DD.
type DailySummaryResponse struct {
	StoreID        string          `json:"store_id"`
	Date           string          `json:"date"`
	SalesCount     int64           `json:"sales_count"`
	CancelledCount int64           `json:"cancelled_count"`
	GrossSales     decimal.Decimal `json:"gross_sales"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
	ShiftsClosed   int64           `json:"shifts_closed"`
	ShiftsFlagged  int64           `json:"shifts_flagged"`
	NetVariance    decimal.Decimal `json:"net_variance"`
}
