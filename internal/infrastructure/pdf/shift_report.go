// Package pdf genera el reporte de cierre de turno de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + Cajero     │  Turno + Estado               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PERÍODO: Apertura / Cierre / Modo                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUADRE: Base | Esperado | Contado | Diferencia              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del turno + leyenda                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ ports.ShiftReporter = (*ShiftReporter)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Reporter ──────────────────────────────────────────────────────────────────

// ShiftReporter escribe un PDF por turno cerrado en Dir (turno-<id>.pdf).
type ShiftReporter struct {
	dir     string
	printer *message.Printer
}

// NewShiftReporter construye el reporter; crea el directorio si no existe.
func NewShiftReporter(dir string) (*ShiftReporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pdf: crear directorio de reportes: %w", err)
	}
	return &ShiftReporter{dir: dir, printer: message.NewPrinter(language.Spanish)}, nil
}

// SendShiftReport genera el PDF y lo guarda en disco.
func (r *ShiftReporter) SendShiftReport(ctx context.Context, shift *entity.CashShift) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := r.Generate(shift)
	if err != nil {
		return err
	}
	path := filepath.Join(r.dir, "turno-"+shift.ID+".pdf")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("pdf: escribir %s: %w", path, err)
	}
	return nil
}

// Generate genera el PDF del cierre y devuelve sus bytes.
func (r *ShiftReporter) Generate(shift *entity.CashShift) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de turno", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shift))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(periodRow(shift))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.cashRows(shift)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(shift))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(shift *entity.CashShift) core.Row {
	statusColor := colorPrimary
	if shift.Status == entity.ShiftStatusFlagged {
		statusColor = colorAlert
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Tienda "+shift.StoreID, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cajero: "+shift.UserID, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("CIERRE DE TURNO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(statusLabel(shift.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: statusColor, Top: 7,
			}),
		),
	)
}

func periodRow(shift *entity.CashShift) core.Row {
	end := "—"
	if shift.EndTime != nil {
		end = shift.EndTime.Format("02/01/2006 15:04")
	}
	mode := "Conteo del cajero"
	if shift.CloseMode == entity.ShiftCloseAuto {
		mode = "Cierre automático (sin conteo)"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PERÍODO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("Apertura: %s   |   Cierre: %s   |   Modo: %s",
				shift.StartTime.Format("02/01/2006 15:04"), end, mode,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// cashRows: una fila por concepto del cuadre.
func (r *ShiftReporter) cashRows(shift *entity.CashShift) []core.Row {
	entry := func(label, value string, c *props.Color) core.Row {
		return row.New(7).Add(
			col.New(3),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Size: 9, Align: align.Right, Right: 1, Color: c,
			})),
			col.New(3),
		)
	}
	varianceColor := colorPrimary
	if shift.Status == entity.ShiftStatusFlagged {
		varianceColor = colorAlert
	}
	return []core.Row{
		entry("Base de caja:", r.money(&shift.StartCash), nil),
		entry("Efectivo esperado:", r.money(shift.ExpectedCash), nil),
		entry("Efectivo contado:", r.money(shift.ActualCash), nil),
		entry("Diferencia:", r.money(shift.Variance), varianceColor),
	}
}

func footerRow(shift *entity.CashShift) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(shift.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Turno "+shift.ID, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Diferencia = contado - esperado. Esperado = base + ventas de la tienda desde la apertura.",
				props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores en español: 1234.5 -> "$1.234,50".
func (r *ShiftReporter) money(d *decimal.Decimal) string {
	if d == nil {
		return "—"
	}
	return r.printer.Sprintf("$%.2f", d.InexactFloat64())
}

func statusLabel(status string) string {
	switch status {
	case entity.ShiftStatusClosed:
		return "CERRADO"
	case entity.ShiftStatusFlagged:
		return "CON DIFERENCIA"
	default:
		return "ABIERTO"
	}
}
