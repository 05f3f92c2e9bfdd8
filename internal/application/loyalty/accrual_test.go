package loyalty_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/pos-api/internal/application/loyalty"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedCustomer(t *testing.T, store *memory.Store, points int64) {
	t.Helper()
	require.NoError(t, store.Repositories().Customers.Create(context.Background(), &entity.Customer{
		ID: "c1", StoreID: "st1", Name: "Ana", Email: "ana@example.com",
		TotalSpent: decimal.Zero, LoyaltyPoints: points, Tier: entity.TierStandard,
	}))
}

func TestUpdateTotalSpent_RecalculaNivel(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedCustomer(t, store, 0)
	acc := loyalty.NewAccrual(store, true)

	c, err := acc.UpdateTotalSpent(ctx, "c1", d("1200"))
	require.NoError(t, err)
	assert.Equal(t, entity.TierSilver, c.Tier)

	c, err = acc.UpdateTotalSpent(ctx, "c1", d("4000"))
	require.NoError(t, err)
	assert.Equal(t, entity.TierGold, c.Tier)

	c, err = acc.UpdateTotalSpent(ctx, "c1", d("-5200"))
	require.NoError(t, err)
	assert.Equal(t, entity.TierStandard, c.Tier)

	stored, err := store.Repositories().Customers.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, stored.TotalSpent.IsZero())
	assert.Equal(t, entity.TierStandard, stored.Tier)
}

func TestUpdateLoyaltyPoints_ClampEnCero(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedCustomer(t, store, 5)

	c, err := loyalty.NewAccrual(store, true).UpdateLoyaltyPoints(ctx, "c1", -20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.LoyaltyPoints)
}

func TestUpdateLoyaltyPoints_SinClampPermiteNegativos(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	seedCustomer(t, store, 5)

	c, err := loyalty.NewAccrual(store, false).UpdateLoyaltyPoints(ctx, "c1", -20)
	require.NoError(t, err)
	assert.Equal(t, int64(-15), c.LoyaltyPoints)
}

func TestUpdateTotalSpent_ClienteInexistente(t *testing.T) {
	_, err := loyalty.NewAccrual(memory.New(), true).UpdateTotalSpent(context.Background(), "nope", d("10"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
