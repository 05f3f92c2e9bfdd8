package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/inventory/adjustments.
// Quantity con signo: positivo entrada, negativo salida.
type AdjustInventoryRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
}

// AllocateMaterialRequest body para POST /api/inventory/allocations.
type AllocateMaterialRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
}

// AdjustProductRequest body para POST /api/inventory/product-adjustments.
// Quantity en unidades enteras con signo: positivo entrada (compra), negativo salida.
type AdjustProductRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason"`
}

// InventoryMovementResponse registro de auditoría creado por un ajuste o asignación.
// Lleva MaterialID o ProductID según el ítem afectado.
type InventoryMovementResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"` // adjustment | product_adjustment | allocation
	MaterialID string          `json:"material_id,omitempty"`
	ProductID  string          `json:"product_id,omitempty"`
	StoreID    string          `json:"store_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MaterialStockResponse stock de una materia prima en la tienda.
type MaterialStockResponse struct {
	StoreID    string          `json:"store_id"`
	MaterialID string          `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ProductStockResponse stock de un producto simple en la tienda.
type ProductStockResponse struct {
	StoreID   string `json:"store_id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}
