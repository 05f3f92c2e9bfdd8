package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartShiftRequest body para POST /api/shifts.
type StartShiftRequest struct {
	OpeningCash decimal.Decimal `json:"opening_cash"`
}

// EndShiftRequest body para POST /api/shifts/:id/end (conteo ciego).
type EndShiftRequest struct {
	ClosingCash decimal.Decimal `json:"closing_cash"`
}

// ShiftResponse turno de caja. Los campos de cierre van nulos mientras esté abierto.
type ShiftResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	StoreID      string           `json:"store_id"`
	StartTime    time.Time        `json:"start_time"`
	StartCash    decimal.Decimal  `json:"start_cash"`
	EndTime      *time.Time       `json:"end_time,omitempty"`
	ExpectedCash *decimal.Decimal `json:"expected_cash,omitempty"`
	ActualCash   *decimal.Decimal `json:"actual_cash,omitempty"`
	Variance     *decimal.Decimal `json:"variance,omitempty"`
	Status       string           `json:"status"`
	CloseMode    string           `json:"close_mode,omitempty"`
}
