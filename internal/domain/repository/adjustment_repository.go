package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// AdjustmentRepository registros de auditoría de ajustes de stock y asignaciones de materia prima.
type AdjustmentRepository interface {
	CreateAdjustment(ctx context.Context, adj *entity.InventoryAdjustment) error
	CreateProductAdjustment(ctx context.Context, adj *entity.ProductAdjustment) error
	CreateAllocation(ctx context.Context, alloc *entity.MaterialAllocation) error
}
