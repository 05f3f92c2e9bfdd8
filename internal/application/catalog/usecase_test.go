package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T) *catalog.UseCase {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.Repositories().Materials.Create(context.Background(),
		&entity.RawMaterial{ID: "m-leche", Name: "Leche", Unit: "l"}))
	return catalog.NewUseCase(store, store.Repositories(), zerolog.Nop())
}

func TestCreateProduct_CompuestoConservaOrdenDeReceta(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	cafe, err := uc.CreateMaterial(ctx, dto.CreateMaterialRequest{Name: "Café molido", Unit: "kg"})
	require.NoError(t, err)

	out, err := uc.CreateProduct(ctx, "st1", dto.CreateProductRequest{
		Name: "Latte", Type: entity.ProductTypeComposite, Price: d("4500"),
		Recipe: []dto.RecipeLineDTO{
			{MaterialID: "m-leche", Quantity: d("0.25")},
			{MaterialID: cafe.ID, Quantity: d("0.018")},
		},
	})
	require.NoError(t, err)

	got, err := uc.GetProduct(ctx, "st1", out.ID)
	require.NoError(t, err)
	require.Len(t, got.Recipe, 2)
	assert.Equal(t, "m-leche", got.Recipe[0].MaterialID)
	assert.Equal(t, cafe.ID, got.Recipe[1].MaterialID)
	assert.True(t, got.Price.Equal(d("4500")))
}

func TestCreateProduct_SimplePorDefecto(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.CreateProduct(context.Background(), "st1", dto.CreateProductRequest{Name: "Pan", Price: d("500")})

	require.NoError(t, err)
	assert.Equal(t, entity.ProductTypeSimple, out.Type)
	assert.Empty(t, out.Recipe)
}

func TestCreateProduct_Validaciones(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	cases := []dto.CreateProductRequest{
		{Name: "", Price: d("1")},
		{Name: "X", Type: "combo", Price: d("1")},
		{Name: "X", Price: d("-1")},
		{Name: "X", Type: entity.ProductTypeComposite, Price: d("1")},
		{Name: "X", Price: d("1"), Recipe: []dto.RecipeLineDTO{{MaterialID: "m-leche", Quantity: d("1")}}},
		{Name: "X", Type: entity.ProductTypeComposite, Price: d("1"), Recipe: []dto.RecipeLineDTO{{MaterialID: "m-leche", Quantity: decimal.Zero}}},
		{Name: "X", Type: entity.ProductTypeComposite, Price: d("1"), Recipe: []dto.RecipeLineDTO{
			{MaterialID: "m-leche", Quantity: d("1")}, {MaterialID: "m-leche", Quantity: d("2")},
		}},
	}
	for _, in := range cases {
		_, err := uc.CreateProduct(ctx, "st1", in)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "entrada %+v", in)
	}
}

func TestCreateProduct_MateriaPrimaInexistente(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.CreateProduct(context.Background(), "st1", dto.CreateProductRequest{
		Name: "Mocca", Type: entity.ProductTypeComposite, Price: d("5000"),
		Recipe: []dto.RecipeLineDTO{{MaterialID: "m-chocolate", Quantity: d("0.1")}},
	})

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGetProduct_OtraTiendaEsNoEncontrado(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()
	out, err := uc.CreateProduct(ctx, "st1", dto.CreateProductRequest{Name: "Pan", Price: d("500")})
	require.NoError(t, err)

	_, err = uc.GetProduct(ctx, "st2", out.ID)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCreateMaterial_UnidadPorDefecto(t *testing.T) {
	uc := newUseCase(t)

	out, err := uc.CreateMaterial(context.Background(), dto.CreateMaterialRequest{Name: "Azúcar"})

	require.NoError(t, err)
	assert.Equal(t, "und", out.Unit)
	_, err = uc.CreateMaterial(context.Background(), dto.CreateMaterialRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
