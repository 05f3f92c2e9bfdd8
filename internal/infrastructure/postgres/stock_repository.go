package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductStockRepository  = (*ProductStockRepo)(nil)
	_ repository.MaterialStockRepository = (*MaterialStockRepo)(nil)
)

// ProductStockRepo stock por tienda+producto sobre PostgreSQL (usable con pool o tx).
type ProductStockRepo struct {
	q Querier
}

// NewProductStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewProductStockRepository(q Querier) *ProductStockRepo {
	return &ProductStockRepo{q: q}
}

// Get obtiene el stock actual; cantidad cero si la fila no existe.
func (r *ProductStockRepo) Get(ctx context.Context, storeID, productID string) (*entity.ProductInventory, error) {
	return r.get(ctx, storeID, productID, "")
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe no hay nada que bloquear: el stock es cero y cualquier descuento falla.
func (r *ProductStockRepo) GetForUpdate(ctx context.Context, storeID, productID string) (*entity.ProductInventory, error) {
	return r.get(ctx, storeID, productID, " FOR UPDATE")
}

func (r *ProductStockRepo) get(ctx context.Context, storeID, productID, lock string) (*entity.ProductInventory, error) {
	query := `
		SELECT store_id, product_id, quantity, updated_at
		FROM product_inventory WHERE store_id = $1 AND product_id = $2` + lock
	var s entity.ProductInventory
	err := r.q.QueryRow(ctx, query, storeID, productID).Scan(&s.StoreID, &s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return &entity.ProductInventory{StoreID: storeID, ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get product stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock.
func (r *ProductStockRepo) Upsert(ctx context.Context, inv *entity.ProductInventory) error {
	query := `
		INSERT INTO product_inventory (store_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, inv.StoreID, inv.ProductID, inv.Quantity); err != nil {
		return fmt.Errorf("upsert product stock: %w", err)
	}
	return nil
}

// AddQuantity suma delta en una sola sentencia; crea la fila sembrada con delta si no existe.
func (r *ProductStockRepo) AddQuantity(ctx context.Context, storeID, productID string, delta int64) error {
	query := `
		INSERT INTO product_inventory (store_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, product_id)
		DO UPDATE SET quantity = product_inventory.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, storeID, productID, delta); err != nil {
		return fmt.Errorf("add product stock: %w", err)
	}
	return nil
}

// MaterialStockRepo stock por tienda+materia prima.
type MaterialStockRepo struct {
	q Querier
}

// NewMaterialStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialStockRepository(q Querier) *MaterialStockRepo {
	return &MaterialStockRepo{q: q}
}

// Get obtiene el stock actual; cero si la fila no existe.
func (r *MaterialStockRepo) Get(ctx context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error) {
	return r.get(ctx, storeID, materialID, "")
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
func (r *MaterialStockRepo) GetForUpdate(ctx context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error) {
	return r.get(ctx, storeID, materialID, " FOR UPDATE")
}

func (r *MaterialStockRepo) get(ctx context.Context, storeID, materialID, lock string) (*entity.RawMaterialInventory, error) {
	query := `
		SELECT store_id, material_id, quantity, updated_at
		FROM raw_material_inventory WHERE store_id = $1 AND material_id = $2` + lock
	var s entity.RawMaterialInventory
	err := r.q.QueryRow(ctx, query, storeID, materialID).Scan(&s.StoreID, &s.MaterialID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return &entity.RawMaterialInventory{StoreID: storeID, MaterialID: materialID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get material stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad.
func (r *MaterialStockRepo) Upsert(ctx context.Context, inv *entity.RawMaterialInventory) error {
	query := `
		INSERT INTO raw_material_inventory (store_id, material_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, inv.StoreID, inv.MaterialID, inv.Quantity); err != nil {
		return fmt.Errorf("upsert material stock: %w", err)
	}
	return nil
}

// AddQuantity suma delta en una sola sentencia; crea la fila si no existe.
func (r *MaterialStockRepo) AddQuantity(ctx context.Context, storeID, materialID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO raw_material_inventory (store_id, material_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (store_id, material_id)
		DO UPDATE SET quantity = raw_material_inventory.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, storeID, materialID, delta); err != nil {
		return fmt.Errorf("add material stock: %w", err)
	}
	return nil
}
