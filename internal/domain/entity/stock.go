package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInventory stock de un producto simple en una tienda. Nunca negativo.
type ProductInventory struct {
	StoreID   string
	ProductID string
	Quantity  int64
	UpdatedAt time.Time
}

// RawMaterialInventory stock de una materia prima en una tienda (admite fracciones).
type RawMaterialInventory struct {
	StoreID    string
	MaterialID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
