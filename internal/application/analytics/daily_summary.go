// Package analytics contiene los consolidados de ventas y cierres de caja por día.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha aceptado en ?date=.
const DateLayout = "2006-01-02"

// DailySummaryUseCase consolidado diario de ventas y diferencias de caja.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DailySummaryUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
}

// NewDailySummaryUseCase construye el caso de uso. loc define el límite del día (nil = UTC).
func NewDailySummaryUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *DailySummaryUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DailySummaryUseCase{analyticsRepo: analyticsRepo, loc: loc}
}

// DailySummary consolida el día date (YYYY-MM-DD; vacío = hoy).
func (uc *DailySummaryUseCase) DailySummary(ctx context.Context, storeID, date string) (*dto.DailySummaryResponse, error) {
	day, err := uc.parseDay(date)
	if err != nil {
		return nil, err
	}
	from := day
	to := day.AddDate(0, 0, 1)

	sum, err := uc.analyticsRepo.DailySummary(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if sum.SalesCount > 0 {
		avg = sum.GrossSales.Div(decimal.NewFromInt(sum.SalesCount)).Round(2)
	}
	return &dto.DailySummaryResponse{
		StoreID:        storeID,
		Date:           day.Format(DateLayout),
		SalesCount:     sum.SalesCount,
		CancelledCount: sum.CancelledCount,
		GrossSales:     sum.GrossSales,
		AverageTicket:  avg,
		ShiftsClosed:   sum.ShiftsClosed,
		ShiftsFlagged:  sum.ShiftsFlagged,
		NetVariance:    sum.NetVariance,
	}, nil
}

func (uc *DailySummaryUseCase) parseDay(date string) (time.Time, error) {
	if date == "" {
		now := time.Now().In(uc.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	day, err := time.ParseInLocation(DateLayout, date, uc.loc)
	if err != nil {
		return time.Time{}, domain.Invalidf("fecha inválida %q, se espera YYYY-MM-DD", date)
	}
	return day, nil
}
