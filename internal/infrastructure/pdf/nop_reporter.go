package pdf

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ ports.ShiftReporter = NopReporter{}

// NopReporter se usa cuando REPORTS_DIR está vacío.
type NopReporter struct{}

// SendShiftReport no hace nada.
func (NopReporter) SendShiftReport(context.Context, *entity.CashShift) error { return nil }
