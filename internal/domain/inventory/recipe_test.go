package inventory_test

import (
	"testing"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestExpandRecipe_MultiplicaPorCantidadVendida(t *testing.T) {
	recipe := []entity.RecipeLine{
		{MaterialID: "harina", Quantity: d("0.25")},
		{MaterialID: "leche", Quantity: d("2")},
	}

	reqs := inventory.ExpandRecipe(recipe, 3)

	require.Len(t, reqs, 2)
	assert.Equal(t, "harina", reqs[0].MaterialID)
	assert.True(t, reqs[0].Quantity.Equal(d("0.75")), "got %s", reqs[0].Quantity)
	assert.Equal(t, "leche", reqs[1].MaterialID)
	assert.True(t, reqs[1].Quantity.Equal(d("6")), "got %s", reqs[1].Quantity)
}

func TestExpandRecipe_RecetaVacia(t *testing.T) {
	assert.Empty(t, inventory.ExpandRecipe(nil, 5))
}

func TestBuildDeductionPlan_AgrupaYOrdena(t *testing.T) {
	cafe := &entity.Product{ID: "p-cafe", Type: entity.ProductTypeSimple}
	agua := &entity.Product{ID: "p-agua", Type: entity.ProductTypeSimple}
	latte := &entity.Product{ID: "p-latte", Type: entity.ProductTypeComposite, Recipe: []entity.RecipeLine{
		{MaterialID: "m-leche", Quantity: d("0.2")},
		{MaterialID: "m-cafe", Quantity: d("0.02")},
	}}
	capuchino := &entity.Product{ID: "p-capu", Type: entity.ProductTypeComposite, Recipe: []entity.RecipeLine{
		{MaterialID: "m-leche", Quantity: d("0.1")},
	}}

	plan := inventory.BuildDeductionPlan([]inventory.PlanLine{
		{Product: cafe, Quantity: 2},
		{Product: latte, Quantity: 3},
		{Product: agua, Quantity: 1},
		{Product: cafe, Quantity: 1},
		{Product: capuchino, Quantity: 2},
	})

	require.Equal(t, []inventory.ProductDeduction{
		{ProductID: "p-agua", Quantity: 1},
		{ProductID: "p-cafe", Quantity: 3},
	}, plan.Products)

	require.Len(t, plan.Materials, 2)
	assert.Equal(t, "m-cafe", plan.Materials[0].MaterialID)
	assert.True(t, plan.Materials[0].Quantity.Equal(d("0.06")))
	assert.Equal(t, "m-leche", plan.Materials[1].MaterialID)
	assert.True(t, plan.Materials[1].Quantity.Equal(d("0.8")))
}

func TestBuildDeductionPlan_CompuestoTresUnidadesDosPorUnidad(t *testing.T) {
	p := &entity.Product{ID: "p", Type: entity.ProductTypeComposite, Recipe: []entity.RecipeLine{
		{MaterialID: "M", Quantity: d("2")},
	}}

	plan := inventory.BuildDeductionPlan([]inventory.PlanLine{{Product: p, Quantity: 3}})

	assert.Empty(t, plan.Products)
	require.Len(t, plan.Materials, 1)
	assert.True(t, plan.Materials[0].Quantity.Equal(d("6")))
	assert.False(t, plan.IsEmpty())
}
