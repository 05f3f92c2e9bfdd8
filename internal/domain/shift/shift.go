package shift

import (
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultTolerance diferencia absoluta (unidades de moneda) a partir de la cual el turno queda FLAGGED.
var DefaultTolerance = decimal.NewFromInt(1)

// ExpectedCash efectivo inicial más las ventas de la tienda desde el inicio del turno.
func ExpectedCash(startCash, salesTotal decimal.Decimal) decimal.Decimal {
	return startCash.Add(salesTotal)
}

// Classify FLAGGED si |variance| > tolerance, CLOSED en otro caso.
func Classify(variance, tolerance decimal.Decimal) string {
	if variance.Abs().GreaterThan(tolerance) {
		return entity.ShiftStatusFlagged
	}
	return entity.ShiftStatusClosed
}

// Close aplica el conteo ciego: variance = actual - expected.
// Retorna domain.ErrNotFound si el turno ya no está abierto.
func Close(s *entity.CashShift, expected, actual, tolerance decimal.Decimal, at time.Time) error {
	if !s.IsOpen() {
		return domain.NotFoundf("turno abierto %s", s.ID)
	}
	variance := actual.Sub(expected)
	s.EndTime = &at
	s.ExpectedCash = &expected
	s.ActualCash = &actual
	s.Variance = &variance
	s.Status = Classify(variance, tolerance)
	s.CloseMode = entity.ShiftCloseManual
	return nil
}

// AutoClose cierre desatendido: el efectivo real se fuerza al esperado, diferencia 0, siempre CLOSED.
func AutoClose(s *entity.CashShift, expected decimal.Decimal, at time.Time) error {
	if !s.IsOpen() {
		return domain.NotFoundf("turno abierto %s", s.ID)
	}
	actual := expected
	variance := decimal.Zero
	s.EndTime = &at
	s.ExpectedCash = &expected
	s.ActualCash = &actual
	s.Variance = &variance
	s.Status = entity.ShiftStatusClosed
	s.CloseMode = entity.ShiftCloseAuto
	return nil
}
