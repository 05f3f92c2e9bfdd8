package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Ledger mutaciones de stock por (tienda, ítem). Nunca abre su propia transacción:
// todos los métodos ...InTx operan con los repositorios del caller.
type Ledger struct{}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// DecrementProductInTx bloquea la fila (SELECT FOR UPDATE), verifica StockActual >= qty y resta.
// Una fila inexistente cuenta como cero.
func (l *Ledger) DecrementProductInTx(ctx context.Context, repos repository.Repositories, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return domain.Invalidf("cantidad a descontar debe ser positiva")
	}
	stock, err := repos.ProductStock.GetForUpdate(ctx, storeID, productID)
	if err != nil {
		return err
	}
	if stock.Quantity < qty {
		return &domain.InsufficientStockError{
			Kind:      domain.StockKindProduct,
			ItemID:    productID,
			Requested: decimal.NewFromInt(qty),
			Available: decimal.NewFromInt(stock.Quantity),
		}
	}
	stock.Quantity -= qty
	return repos.ProductStock.Upsert(ctx, stock)
}

// IncrementProductInTx suma qty de forma atómica; crea la fila si no existe.
func (l *Ledger) IncrementProductInTx(ctx context.Context, repos repository.Repositories, storeID, productID string, qty int64) error {
	if qty <= 0 {
		return domain.Invalidf("cantidad a reponer debe ser positiva")
	}
	return repos.ProductStock.AddQuantity(ctx, storeID, productID, qty)
}

// DecrementMaterialInTx igual que DecrementProductInTx sobre materias primas.
func (l *Ledger) DecrementMaterialInTx(ctx context.Context, repos repository.Repositories, storeID, materialID string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.Invalidf("cantidad a descontar debe ser positiva")
	}
	stock, err := repos.MaterialStock.GetForUpdate(ctx, storeID, materialID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(qty) {
		return &domain.InsufficientStockError{
			Kind:      domain.StockKindMaterial,
			ItemID:    materialID,
			Requested: qty,
			Available: stock.Quantity,
		}
	}
	stock.Quantity = stock.Quantity.Sub(qty)
	return repos.MaterialStock.Upsert(ctx, stock)
}

// IncrementMaterialInTx suma qty de forma atómica; crea la fila si no existe.
func (l *Ledger) IncrementMaterialInTx(ctx context.Context, repos repository.Repositories, storeID, materialID string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return domain.Invalidf("cantidad a reponer debe ser positiva")
	}
	return repos.MaterialStock.AddQuantity(ctx, storeID, materialID, qty)
}

// ApplyPlanInTx descuenta un plan completo: primero productos, luego materias primas, en orden de id.
// El primer faltante aborta; el caller hace Rollback de la transacción.
func (l *Ledger) ApplyPlanInTx(ctx context.Context, repos repository.Repositories, storeID string, plan inventory.DeductionPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	for _, p := range plan.Products {
		if err := l.DecrementProductInTx(ctx, repos, storeID, p.ProductID, p.Quantity); err != nil {
			return fmt.Errorf("descontar producto %s: %w", p.ProductID, err)
		}
	}
	for _, m := range plan.Materials {
		if err := l.DecrementMaterialInTx(ctx, repos, storeID, m.MaterialID, m.Quantity); err != nil {
			return fmt.Errorf("descontar materia prima %s: %w", m.MaterialID, err)
		}
	}
	return nil
}
