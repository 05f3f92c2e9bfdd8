package pricing_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_SinDescuento(t *testing.T) {
	totals, err := pricing.Calculate([]pricing.Line{
		{UnitPrice: d("2500"), Quantity: 2},
		{UnitPrice: d("1200.50"), Quantity: 1},
	}, nil)

	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(d("6200.50")))
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.GrandTotal.Equal(d("6200.50")))
	assert.True(t, totals.LineSubtotals[0].Equal(d("5000")))
}

func TestCalculate_DescuentoPorcentualRedondeado(t *testing.T) {
	totals, err := pricing.Calculate([]pricing.Line{{UnitPrice: d("33.33"), Quantity: 1}},
		&entity.Discount{Type: entity.DiscountTypePercentage, Value: d("10")})

	require.NoError(t, err)
	assert.True(t, totals.DiscountAmount.Equal(d("3.33")), "got %s", totals.DiscountAmount)
	assert.True(t, totals.GrandTotal.Equal(d("30")))
}

func TestCalculate_DescuentoFijoSeLimitaAlSubtotal(t *testing.T) {
	totals, err := pricing.Calculate([]pricing.Line{{UnitPrice: d("100"), Quantity: 1}},
		&entity.Discount{Type: entity.DiscountTypeFixed, Value: d("250")})

	require.NoError(t, err)
	assert.True(t, totals.DiscountAmount.Equal(d("100")))
	assert.True(t, totals.GrandTotal.IsZero())
}

func TestCalculate_Errores(t *testing.T) {
	cases := map[string]struct {
		lines    []pricing.Line
		discount *entity.Discount
	}{
		"cantidad cero":       {lines: []pricing.Line{{UnitPrice: d("1"), Quantity: 0}}},
		"descuento negativo":  {lines: []pricing.Line{{UnitPrice: d("1"), Quantity: 1}}, discount: &entity.Discount{Type: entity.DiscountTypeFixed, Value: d("-1")}},
		"tipo desconocido":    {lines: []pricing.Line{{UnitPrice: d("1"), Quantity: 1}}, discount: &entity.Discount{Type: "bogo", Value: d("1")}},
		"porcentaje excesivo": {lines: []pricing.Line{{UnitPrice: d("1"), Quantity: 1}}, discount: &entity.Discount{Type: entity.DiscountTypePercentage, Value: d("101")}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pricing.Calculate(tc.lines, tc.discount)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}
}

func TestPaymentsMatch_Tolerancia(t *testing.T) {
	assert.True(t, pricing.PaymentsMatch(d("100.00"), d("100.01")))
	assert.True(t, pricing.PaymentsMatch(d("100.01"), d("100")))
	assert.False(t, pricing.PaymentsMatch(d("99.98"), d("100")))
}
