package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/migration"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openDB aplica migraciones y abre un pool contra POS_TEST_DATABASE_URL; omite el test si no está definido.
func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("POS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("POS_TEST_DATABASE_URL no definido")
	}
	m, err := migration.New(url, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, storeID string, recipe []entity.RecipeLine) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.NewString(), StoreID: storeID, Name: "Empanada", Type: entity.ProductTypeSimple,
		Price: decimal.RequireFromString("2500"), CreatedAt: now, UpdatedAt: now,
	}
	if len(recipe) > 0 {
		p.Type = entity.ProductTypeComposite
		p.Recipe = recipe
	}
	require.NoError(t, postgres.NewProductRepository(pool).Create(context.Background(), p))
	return p
}

func TestProductRepo_RecetaEnOrden(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()

	materials := postgres.NewRawMaterialRepository(pool)
	harina := &entity.RawMaterial{ID: uuid.NewString(), Name: "Harina", Unit: "kg"}
	queso := &entity.RawMaterial{ID: uuid.NewString(), Name: "Queso", Unit: "kg"}
	require.NoError(t, materials.Create(ctx, harina))
	require.NoError(t, materials.Create(ctx, queso))

	p := seedProduct(t, pool, storeID, []entity.RecipeLine{
		{MaterialID: queso.ID, Quantity: decimal.RequireFromString("0.05")},
		{MaterialID: harina.ID, Quantity: decimal.RequireFromString("0.1")},
	})

	got, err := postgres.NewProductRepository(pool).GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Recipe, 2)
	assert.Equal(t, queso.ID, got.Recipe[0].MaterialID)
	assert.True(t, got.Recipe[1].Quantity.Equal(decimal.RequireFromString("0.1")))

	missing, err := postgres.NewProductRepository(pool).GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLedger_DescuentosConcurrentesNuncaNegativos(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()
	p := seedProduct(t, pool, storeID, nil)

	stock := postgres.NewProductStockRepository(pool)
	require.NoError(t, stock.AddQuantity(ctx, storeID, p.ID, 5))

	runner := postgres.NewTxRunner(pool, 5*time.Second)
	ledger := inventory.NewLedger()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, short int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(repos repository.Repositories) error {
				return ledger.DecrementProductInTx(ctx, repos, storeID, p.ID, 1)
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				short++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, 5, short)
	inv, err := stock.Get(ctx, storeID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.Quantity)
}

func TestTxRunner_RollbackDescartaTodo(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()
	p := seedProduct(t, pool, storeID, nil)

	runner := postgres.NewTxRunner(pool, 5*time.Second)
	boom := errors.New("falla simulada")
	err := runner.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.ProductStock.AddQuantity(ctx, storeID, p.ID, 7); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	inv, err := postgres.NewProductStockRepository(pool).Get(ctx, storeID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), inv.Quantity)
}

func TestSaleRepo_CreaYLeeConItemsYPagos(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()
	p := seedProduct(t, pool, storeID, nil)
	now := time.Now().UTC().Truncate(time.Microsecond)

	saleID := uuid.NewString()
	sale := &entity.Sale{
		ID: saleID, StoreID: storeID, CreatedBy: "cajero-1",
		Items: []entity.SaleItem{{
			ID: uuid.NewString(), SaleID: saleID, ProductID: p.ID, Quantity: 2,
			UnitPrice: decimal.RequireFromString("2500"), Subtotal: decimal.RequireFromString("5000"),
		}},
		Payments: []entity.Payment{{
			ID: uuid.NewString(), SaleID: saleID, Type: entity.PaymentTypeCash,
			Amount: decimal.RequireFromString("5000"), CreatedAt: now,
		}},
		Subtotal: decimal.RequireFromString("5000"), GrandTotal: decimal.RequireFromString("5000"),
		OrderType: entity.OrderTypeInStore, Status: entity.SaleStatusCompleted,
		CreatedAt: now, UpdatedAt: now,
	}
	runner := postgres.NewTxRunner(pool, 5*time.Second)
	require.NoError(t, runner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Sales.Create(ctx, sale)
	}))

	sales := postgres.NewSaleRepository(pool)
	got, err := sales.GetByID(ctx, saleID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Items, 1)
	assert.Len(t, got.Payments, 1)
	assert.Empty(t, got.CustomerID)

	total, err := sales.SumGrandTotalSince(ctx, storeID, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("5000")))

	require.NoError(t, sales.UpdateStatus(ctx, saleID, entity.SaleStatusCancelled, now))
	assert.ErrorIs(t, sales.UpdateStatus(ctx, uuid.NewString(), entity.SaleStatusCancelled, now), domain.ErrNotFound)
}

func TestCustomerRepo_ContactoDuplicadoYBusqueda(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()
	customers := postgres.NewCustomerRepository(pool)
	now := time.Now().UTC()

	c := &entity.Customer{
		ID: uuid.NewString(), StoreID: storeID, Name: "Ana", Email: "Ana@Example.com",
		Tier: entity.TierStandard, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, customers.Create(ctx, c))

	dup := *c
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, customers.Create(ctx, &dup), domain.ErrDuplicate)

	found, err := customers.FindByContact(ctx, storeID, "ANA@example.com", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID, found.ID)

	found.TotalSpent = decimal.RequireFromString("1200")
	found.LoyaltyPoints = 12
	found.Tier = entity.TierSilver
	require.NoError(t, customers.UpdateLoyalty(ctx, found))

	again, err := customers.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), again.LoyaltyPoints)
	assert.Equal(t, entity.TierSilver, again.Tier)
}

func TestRepos_IDNoUUIDEsInexistente(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()

	sale, err := postgres.NewSaleRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, sale)

	product, err := postgres.NewProductRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, product)

	material, err := postgres.NewRawMaterialRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, material)

	shift, err := postgres.NewShiftRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, shift)

	customer, err := postgres.NewCustomerRepository(pool).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, customer)

	err = postgres.NewSaleRepository(pool).UpdateStatus(ctx, "abc", entity.SaleStatusCancelled, time.Now().UTC())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleRepo_MarcaReembolsoConBloqueo(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	storeID := uuid.NewString()
	p := seedProduct(t, pool, storeID, nil)
	now := time.Now().UTC().Truncate(time.Microsecond)

	saleID := uuid.NewString()
	sale := &entity.Sale{
		ID: saleID, StoreID: storeID, CreatedBy: "cajero-1",
		Items: []entity.SaleItem{{
			ID: uuid.NewString(), SaleID: saleID, ProductID: p.ID, Quantity: 1,
			UnitPrice: decimal.RequireFromString("2500"), Subtotal: decimal.RequireFromString("2500"),
		}},
		Subtotal: decimal.RequireFromString("2500"), GrandTotal: decimal.RequireFromString("2500"),
		OrderType: entity.OrderTypeInStore, Status: entity.SaleStatusPending,
		CreatedAt: now, UpdatedAt: now,
	}
	runner := postgres.NewTxRunner(pool, 5*time.Second)
	require.NoError(t, runner.Run(ctx, func(repos repository.Repositories) error {
		return repos.Sales.Create(ctx, sale)
	}))

	refundedAt := now.Add(time.Minute)
	require.NoError(t, runner.Run(ctx, func(repos repository.Repositories) error {
		locked, err := repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		require.NotNil(t, locked)
		assert.Nil(t, locked.RefundedAt)
		return repos.Sales.MarkRefunded(ctx, saleID, refundedAt)
	}))

	got, err := postgres.NewSaleRepository(pool).GetByID(ctx, saleID)
	require.NoError(t, err)
	require.NotNil(t, got.RefundedAt)
	assert.True(t, got.RefundedAt.Equal(refundedAt))

	err = postgres.NewSaleRepository(pool).MarkRefunded(ctx, uuid.NewString(), refundedAt)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
