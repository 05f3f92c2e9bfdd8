package loyalty

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/loyalty"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta fn con repositorios atados a una transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Accrual acumulado de gasto, puntos y nivel del cliente.
// Los métodos ...InTx se usan desde la venta y el reembolso dentro de su propia transacción.
type Accrual struct {
	txRunner    TxRunner
	clampPoints bool
}

// NewAccrual construye el servicio. clampPoints evita puntos negativos al revertir.
func NewAccrual(txRunner TxRunner, clampPoints bool) *Accrual {
	return &Accrual{txRunner: txRunner, clampPoints: clampPoints}
}

// UpdateTotalSpent suma delta al gasto (negativo en reembolsos) y recalcula el nivel.
func (a *Accrual) UpdateTotalSpent(ctx context.Context, customerID string, delta decimal.Decimal) (*entity.Customer, error) {
	var out *entity.Customer
	err := a.txRunner.Run(ctx, func(repos repository.Repositories) error {
		c, err := a.UpdateTotalSpentInTx(ctx, repos, customerID, delta)
		out = c
		return err
	})
	return out, err
}

// UpdateLoyaltyPoints suma delta a los puntos del cliente.
func (a *Accrual) UpdateLoyaltyPoints(ctx context.Context, customerID string, delta int64) (*entity.Customer, error) {
	var out *entity.Customer
	err := a.txRunner.Run(ctx, func(repos repository.Repositories) error {
		c, err := a.UpdateLoyaltyPointsInTx(ctx, repos, customerID, delta)
		out = c
		return err
	})
	return out, err
}

// UpdateTotalSpentInTx versión transaccional de UpdateTotalSpent.
func (a *Accrual) UpdateTotalSpentInTx(ctx context.Context, repos repository.Repositories, customerID string, delta decimal.Decimal) (*entity.Customer, error) {
	return a.mutate(ctx, repos, customerID, func(c *entity.Customer) {
		loyalty.ApplySpent(c, delta)
	})
}

// UpdateLoyaltyPointsInTx versión transaccional de UpdateLoyaltyPoints.
func (a *Accrual) UpdateLoyaltyPointsInTx(ctx context.Context, repos repository.Repositories, customerID string, delta int64) (*entity.Customer, error) {
	return a.mutate(ctx, repos, customerID, func(c *entity.Customer) {
		loyalty.ApplyPoints(c, delta, a.clampPoints)
	})
}

// AccrueSaleInTx suma el total de la venta y floor(total/100) puntos.
func (a *Accrual) AccrueSaleInTx(ctx context.Context, repos repository.Repositories, customerID string, grandTotal decimal.Decimal) (*entity.Customer, error) {
	points := loyalty.PointsFor(grandTotal)
	return a.mutate(ctx, repos, customerID, func(c *entity.Customer) {
		loyalty.ApplySpent(c, grandTotal)
		loyalty.ApplyPoints(c, points, a.clampPoints)
	})
}

// ReverseSaleInTx revierte lo acumulado por una venta; retorna los puntos descontados.
func (a *Accrual) ReverseSaleInTx(ctx context.Context, repos repository.Repositories, customerID string, grandTotal decimal.Decimal) (int64, error) {
	points := loyalty.PointsFor(grandTotal)
	_, err := a.mutate(ctx, repos, customerID, func(c *entity.Customer) {
		loyalty.ApplySpent(c, grandTotal.Neg())
		loyalty.ApplyPoints(c, -points, a.clampPoints)
	})
	return points, err
}

func (a *Accrual) mutate(ctx context.Context, repos repository.Repositories, customerID string, apply func(c *entity.Customer)) (*entity.Customer, error) {
	c, err := repos.Customers.GetForUpdate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFoundf("cliente %s", customerID)
	}
	apply(c)
	c.UpdatedAt = time.Now().UTC()
	if err := repos.Customers.UpdateLoyalty(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
