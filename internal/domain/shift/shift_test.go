package shift_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openShift() *entity.CashShift {
	return &entity.CashShift{ID: "s1", StartCash: d("10000"), Status: entity.ShiftStatusOpen, StartTime: time.Now()}
}

func TestClose_CuadreExacto(t *testing.T) {
	s := openShift()
	expected := shift.ExpectedCash(s.StartCash, d("5000"))

	require.NoError(t, shift.Close(s, expected, d("15000"), shift.DefaultTolerance, time.Now()))

	assert.Equal(t, entity.ShiftStatusClosed, s.Status)
	assert.True(t, s.Variance.IsZero())
	assert.NotNil(t, s.EndTime)
}

func TestClose_SobranteMarcaFlagged(t *testing.T) {
	s := openShift()
	expected := shift.ExpectedCash(s.StartCash, d("5000"))

	require.NoError(t, shift.Close(s, expected, d("15500"), shift.DefaultTolerance, time.Now()))

	assert.Equal(t, entity.ShiftStatusFlagged, s.Status)
	assert.True(t, s.Variance.Equal(d("500")))
}

func TestClassify_LimiteDeTolerancia(t *testing.T) {
	assert.Equal(t, entity.ShiftStatusClosed, shift.Classify(d("1"), shift.DefaultTolerance))
	assert.Equal(t, entity.ShiftStatusClosed, shift.Classify(d("-1"), shift.DefaultTolerance))
	assert.Equal(t, entity.ShiftStatusFlagged, shift.Classify(d("1.01"), shift.DefaultTolerance))
	assert.Equal(t, entity.ShiftStatusFlagged, shift.Classify(d("-3"), shift.DefaultTolerance))
}

func TestAutoClose_SiempreSinDiferencia(t *testing.T) {
	s := openShift()

	require.NoError(t, shift.AutoClose(s, d("15000"), time.Now()))

	assert.Equal(t, entity.ShiftStatusClosed, s.Status)
	assert.True(t, s.Variance.IsZero())
	assert.True(t, s.ActualCash.Equal(d("15000")))
	assert.Equal(t, entity.ShiftCloseAuto, s.CloseMode)
}

func TestClose_TurnoYaCerrado(t *testing.T) {
	s := openShift()
	s.Status = entity.ShiftStatusClosed

	err := shift.Close(s, d("1"), d("1"), shift.DefaultTolerance, time.Now())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(shift.AutoClose(s, d("1"), time.Now()), domain.ErrNotFound))
}
