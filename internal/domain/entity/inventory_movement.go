package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAdjustment registro de auditoría de un ajuste manual de materia prima.
// Siempre se persiste en la misma transacción que la mutación de stock.
type InventoryAdjustment struct {
	ID         string
	MaterialID string
	StoreID    string
	Quantity   decimal.Decimal // con signo: positivo entrada, negativo salida
	Reason     string
	CreatedBy  string
	CreatedAt  time.Time
}

// ProductAdjustment entrada o salida manual de stock de un producto simple (compra, conteo físico).
type ProductAdjustment struct {
	ID        string
	ProductID string
	StoreID   string
	Quantity  int64 // con signo
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// MaterialAllocation consumo de materia prima para un fin distinto a la venta (producción, merma).
type MaterialAllocation struct {
	ID         string
	MaterialID string
	StoreID    string
	Quantity   decimal.Decimal // siempre positivo
	Reason     string
	CreatedBy  string
	CreatedAt  time.Time
}
