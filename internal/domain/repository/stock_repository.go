package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductStockRepository define el puerto para consultar/actualizar stock por tienda+producto.
// Get y GetForUpdate devuelven cantidad cero cuando la fila no existe.
// Usado dentro de transacciones para garantizar consistencia.
type ProductStockRepository interface {
	Get(ctx context.Context, storeID, productID string) (*entity.ProductInventory, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, storeID, productID string) (*entity.ProductInventory, error)
	Upsert(ctx context.Context, inv *entity.ProductInventory) error
	// AddQuantity suma delta de forma atómica; crea la fila con delta si no existe.
	AddQuantity(ctx context.Context, storeID, productID string, delta int64) error
}

// MaterialStockRepository mismo contrato que ProductStockRepository para materias primas.
type MaterialStockRepository interface {
	Get(ctx context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error)
	GetForUpdate(ctx context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error)
	Upsert(ctx context.Context, inv *entity.RawMaterialInventory) error
	AddQuantity(ctx context.Context, storeID, materialID string, delta decimal.Decimal) error
}
