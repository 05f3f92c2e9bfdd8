package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo auditoría de ajustes de stock y asignaciones de materia prima.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar la tx para que el registro
// quede en la misma unidad atómica que el cambio de stock.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// CreateAdjustment registra un ajuste manual (cantidad con signo).
func (r *AdjustmentRepo) CreateAdjustment(ctx context.Context, a *entity.InventoryAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_adjustments (id, material_id, store_id, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.MaterialID, a.StoreID, a.Quantity, a.Reason, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory adjustment: %w", err)
	}
	return nil
}

// CreateProductAdjustment registra un ajuste de stock de producto simple.
func (r *AdjustmentRepo) CreateProductAdjustment(ctx context.Context, a *entity.ProductAdjustment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_adjustments (id, product_id, store_id, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.ProductID, a.StoreID, a.Quantity, a.Reason, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product adjustment: %w", err)
	}
	return nil
}

// CreateAllocation registra un consumo de materia prima.
func (r *AdjustmentRepo) CreateAllocation(ctx context.Context, a *entity.MaterialAllocation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO material_allocations (id, material_id, store_id, quantity, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.MaterialID, a.StoreID, a.Quantity, a.Reason, a.CreatedBy, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material allocation: %w", err)
	}
	return nil
}
