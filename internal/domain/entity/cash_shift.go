package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del turno de caja: OPEN -> {CLOSED, FLAGGED}, ambos terminales.
const (
	ShiftStatusOpen    = "open"
	ShiftStatusClosed  = "closed"
	ShiftStatusFlagged = "flagged"
)

// Modos de cierre.
const (
	ShiftCloseManual = "manual" // conteo ciego del cajero
	ShiftCloseAuto   = "auto"   // cierre desatendido, sin conteo físico
)

// CashShift turno de un cajero en una tienda.
// ExpectedCash, ActualCash y Variance solo tienen valor una vez cerrado.
type CashShift struct {
	ID           string
	UserID       string
	StoreID      string
	StartTime    time.Time
	StartCash    decimal.Decimal
	EndTime      *time.Time
	ExpectedCash *decimal.Decimal
	ActualCash   *decimal.Decimal
	Variance     *decimal.Decimal
	Status       string
	CloseMode    string
}

// IsOpen indica si el turno todavía acepta cierre.
func (s *CashShift) IsOpen() bool {
	return s.Status == ShiftStatusOpen
}
