package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(t *testing.T, harina string) (*inventory.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repositories()
	require.NoError(t, repos.Materials.Create(ctx, &entity.RawMaterial{ID: "m-harina", Name: "Harina", Unit: "kg"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p-pan", Name: "Pan", Type: entity.ProductTypeSimple, Price: d("500")}))
	require.NoError(t, repos.MaterialStock.Upsert(ctx, &entity.RawMaterialInventory{StoreID: "st1", MaterialID: "m-harina", Quantity: d(harina)}))
	return inventory.NewUseCase(store, inventory.NewLedger(), repos, zerolog.Nop()), store
}

func TestAdjust_PositivoYNegativoConAuditoria(t *testing.T) {
	uc, store := newUseCase(t, "10")
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "st1", "u1", dto.AdjustInventoryRequest{MaterialID: "m-harina", Quantity: d("2.5"), Reason: "compra"})
	require.NoError(t, err)
	resp, err := uc.Adjust(ctx, "st1", "u1", dto.AdjustInventoryRequest{MaterialID: "m-harina", Quantity: d("-4"), Reason: "merma"})
	require.NoError(t, err)
	assert.Equal(t, inventory.MovementAdjustment, resp.Kind)

	stock, err := uc.MaterialStock(ctx, "st1", "m-harina")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(d("8.5")))
	assert.Len(t, store.Adjustments(), 2)
}

func TestAdjust_NegativoSinStockNoDejaAuditoria(t *testing.T) {
	uc, store := newUseCase(t, "1")

	_, err := uc.Adjust(context.Background(), "st1", "u1", dto.AdjustInventoryRequest{MaterialID: "m-harina", Quantity: d("-3")})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Empty(t, store.Adjustments())
}

func TestAdjust_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t, "1")
	ctx := context.Background()

	_, err := uc.Adjust(ctx, "st1", "u1", dto.AdjustInventoryRequest{MaterialID: "m-harina", Quantity: decimal.Zero})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Adjust(ctx, "st1", "u1", dto.AdjustInventoryRequest{MaterialID: "m-azucar", Quantity: d("1")})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAllocate_DescuentaYRegistra(t *testing.T) {
	uc, store := newUseCase(t, "5")
	ctx := context.Background()

	resp, err := uc.Allocate(ctx, "st1", "u1", dto.AllocateMaterialRequest{MaterialID: "m-harina", Quantity: d("5"), Reason: "producción"})
	require.NoError(t, err)
	assert.Equal(t, inventory.MovementAllocation, resp.Kind)

	_, err = uc.Allocate(ctx, "st1", "u1", dto.AllocateMaterialRequest{MaterialID: "m-harina", Quantity: d("0.1")})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	_, err = uc.Allocate(ctx, "st1", "u1", dto.AllocateMaterialRequest{MaterialID: "m-harina", Quantity: d("-1")})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Len(t, store.Allocations(), 1)
}

func TestAllocate_ConcurrenteNuncaNegativo(t *testing.T) {
	uc, _ := newUseCase(t, "3")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Allocate(ctx, "st1", "u1", dto.AllocateMaterialRequest{MaterialID: "m-harina", Quantity: d("1")})
		}()
	}
	wg.Wait()

	stock, err := uc.MaterialStock(ctx, "st1", "m-harina")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())
}

func TestProductStock_SinFilaEsCero(t *testing.T) {
	uc, _ := newUseCase(t, "0")

	stock, err := uc.ProductStock(context.Background(), "st1", "p-pan")
	require.NoError(t, err)
	assert.Equal(t, int64(0), stock.Quantity)

	_, err = uc.ProductStock(context.Background(), "st1", "p-x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLedger_IncrementCreaFila(t *testing.T) {
	store := memory.New()
	ledger := inventory.NewLedger()
	ctx := context.Background()

	err := store.Run(ctx, func(repos repository.Repositories) error {
		return ledger.IncrementProductInTx(ctx, repos, "st1", "p-nuevo", 4)
	})
	require.NoError(t, err)

	inv, err := store.Repositories().ProductStock.Get(ctx, "st1", "p-nuevo")
	require.NoError(t, err)
	assert.Equal(t, int64(4), inv.Quantity)
}

func TestLedger_DecrementInsuficienteNombraElProducto(t *testing.T) {
	store := memory.New()
	ledger := inventory.NewLedger()
	ctx := context.Background()

	err := store.Run(ctx, func(repos repository.Repositories) error {
		return ledger.DecrementProductInTx(ctx, repos, "st1", "p-agotado", 1)
	})

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "p-agotado", stockErr.ItemID)
	assert.Equal(t, domain.StockKindProduct, stockErr.Kind)
	assert.True(t, stockErr.Available.IsZero())
}

func TestAdjustProduct_CargaYDescuentaStockConAuditoria(t *testing.T) {
	uc, store := newUseCase(t, "0")
	ctx := context.Background()

	resp, err := uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "p-pan", Quantity: 12, Reason: "compra"})
	require.NoError(t, err)
	assert.Equal(t, inventory.MovementProductAdjustment, resp.Kind)
	assert.Equal(t, "p-pan", resp.ProductID)
	assert.Empty(t, resp.MaterialID)

	_, err = uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "p-pan", Quantity: -5, Reason: "conteo"})
	require.NoError(t, err)

	stock, err := uc.ProductStock(ctx, "st1", "p-pan")
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock.Quantity)
	require.Len(t, store.ProductAdjustments(), 2)
	assert.Equal(t, int64(-5), store.ProductAdjustments()[1].Quantity)
}

func TestAdjustProduct_SalidaSinStockNoDejaAuditoria(t *testing.T) {
	uc, store := newUseCase(t, "0")

	_, err := uc.AdjustProduct(context.Background(), "st1", "u1", dto.AdjustProductRequest{ProductID: "p-pan", Quantity: -1})

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, domain.StockKindProduct, stockErr.Kind)
	assert.Empty(t, store.ProductAdjustments())
}

func TestAdjustProduct_Validaciones(t *testing.T) {
	uc, store := newUseCase(t, "0")
	ctx := context.Background()
	require.NoError(t, store.Repositories().Products.Create(ctx, &entity.Product{
		ID: "p-latte", Name: "Latte", Type: entity.ProductTypeComposite, Price: d("4000"),
		Recipe: []entity.RecipeLine{{MaterialID: "m-harina", Quantity: d("1")}},
	}))
	require.NoError(t, store.Repositories().Products.Create(ctx, &entity.Product{
		ID: "p-ajeno", StoreID: "st2", Name: "Ajeno", Type: entity.ProductTypeSimple, Price: d("1"),
	}))

	_, err := uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "p-pan", Quantity: 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "p-latte", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "m-harina", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.AdjustProduct(ctx, "st1", "u1", dto.AdjustProductRequest{ProductID: "p-ajeno", Quantity: 3})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, store.ProductAdjustments())
}

func TestLedger_PlanVacioNoTocaStock(t *testing.T) {
	store := memory.New()
	ledger := inventory.NewLedger()
	ctx := context.Background()

	plan := domaininv.BuildDeductionPlan([]domaininv.PlanLine{{Product: nil, Quantity: 2}})
	require.True(t, plan.IsEmpty())

	err := store.Run(ctx, func(repos repository.Repositories) error {
		return ledger.ApplyPlanInTx(ctx, repos, "st1", plan)
	})

	require.NoError(t, err)
}
