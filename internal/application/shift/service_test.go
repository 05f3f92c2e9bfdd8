package shift_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recordingReporter struct {
	mu     sync.Mutex
	shifts []string
	err    error
}

func (r *recordingReporter) SendShiftReport(_ context.Context, sh *entity.CashShift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shifts = append(r.shifts, sh.ID)
	return r.err
}

type nopPublisher struct{ count int }

func (p *nopPublisher) Publish(context.Context, string, string, any) error {
	p.count++
	return nil
}

func newService(t *testing.T) (*shift.Service, *memory.Store, *recordingReporter, *nopPublisher) {
	t.Helper()
	store := memory.New()
	rep := &recordingReporter{}
	pub := &nopPublisher{}
	svc := shift.NewService(store, store.Repositories(), pub, rep, decimal.Zero, zerolog.Nop())
	return svc, store, rep, pub
}

func seedSale(t *testing.T, store *memory.Store, storeID, total string, at time.Time) {
	t.Helper()
	require.NoError(t, store.Repositories().Sales.Create(context.Background(), &entity.Sale{
		ID: uuid.New().String(), StoreID: storeID, GrandTotal: d(total), Subtotal: d(total),
		Status: entity.SaleStatusCompleted, OrderType: entity.OrderTypeInStore, CreatedAt: at,
	}))
}

func TestEndShift_CuadreExactoCierra(t *testing.T) {
	svc, store, rep, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("10000")})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusOpen, opened.Status)

	seedSale(t, store, "st1", "3000", time.Now().UTC().Add(time.Second))
	seedSale(t, store, "st1", "2000", time.Now().UTC().Add(time.Second))
	seedSale(t, store, "otra-tienda", "999", time.Now().UTC().Add(time.Second))
	seedSale(t, store, "st1", "777", opened.StartTime.Add(-time.Hour)) // anterior al turno

	closed, err := svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("15000")})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusClosed, closed.Status)
	assert.True(t, closed.ExpectedCash.Equal(d("15000")))
	assert.True(t, closed.Variance.IsZero())
	assert.NotNil(t, closed.EndTime)
	assert.Equal(t, []string{opened.ID}, rep.shifts)
}

func TestEndShift_DiferenciaMayorATolerancia(t *testing.T) {
	svc, store, _, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("10000")})
	require.NoError(t, err)
	seedSale(t, store, "st1", "5000", time.Now().UTC().Add(time.Second))

	closed, err := svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("15500")})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusFlagged, closed.Status)
	assert.True(t, closed.Variance.Equal(d("500")))
}

func TestAutoEndShift_SiempreCerradoSinDiferencia(t *testing.T) {
	svc, store, _, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("100")})
	require.NoError(t, err)
	seedSale(t, store, "st1", "5000", time.Now().UTC().Add(time.Second))

	closed, err := svc.AutoEndShift(ctx, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusClosed, closed.Status)
	assert.True(t, closed.Variance.IsZero())
	assert.True(t, closed.ActualCash.Equal(d("5100")))
	assert.Equal(t, entity.ShiftCloseAuto, closed.CloseMode)
}

func TestEndShift_DobleCierreRetornaNotFound(t *testing.T) {
	svc, _, rep, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("0")})
	require.NoError(t, err)
	_, err = svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("0")})
	require.NoError(t, err)

	_, err = svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("0")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.AutoEndShift(ctx, opened.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.EndShift(ctx, "no-existe", dto.EndShiftRequest{ClosingCash: d("0")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Len(t, rep.shifts, 1)
}

func TestEndShift_CierresConcurrentesSoloUnoGana(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("0")})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("0")}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestEndShift_FalloDelReporteNoFallaElCierre(t *testing.T) {
	svc, _, rep, _ := newService(t)
	rep.err = errors.New("smtp caído")
	ctx := context.Background()

	opened, err := svc.StartShift(ctx, "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("10")})
	require.NoError(t, err)

	closed, err := svc.EndShift(ctx, opened.ID, dto.EndShiftRequest{ClosingCash: d("10")})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusClosed, closed.Status)
}

func TestStartShift_EfectivoNegativo(t *testing.T) {
	svc, _, _, _ := newService(t)
	_, err := svc.StartShift(context.Background(), "cajero-1", "st1", dto.StartShiftRequest{OpeningCash: d("-1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAutoCloseStale_CierraSoloLosViejos(t *testing.T) {
	svc, store, _, _ := newService(t)
	ctx := context.Background()
	old := &entity.CashShift{
		ID: "viejo", UserID: "u", StoreID: "st1", StartCash: d("0"),
		StartTime: time.Now().UTC().Add(-20 * time.Hour), Status: entity.ShiftStatusOpen,
	}
	require.NoError(t, store.Repositories().Shifts.Create(ctx, old))
	fresh, err := svc.StartShift(ctx, "u", "st1", dto.StartShiftRequest{OpeningCash: d("0")})
	require.NoError(t, err)

	n, err := svc.AutoCloseStale(ctx, 12*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := svc.GetShift(ctx, "viejo")
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusClosed, got.Status)
	got, err = svc.GetShift(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusOpen, got.Status)
}
