package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeSimple    = "simple"    // se descuenta de su propio stock (ProductInventory)
	ProductTypeComposite = "composite" // se descuenta de materias primas según su receta
)

// Product representa un producto del catálogo.
// Price es el precio vigente; la venta lo copia en SaleItem.UnitPrice al momento de vender.
type Product struct {
	ID        string
	StoreID   string
	Name      string
	Type      string
	Price     decimal.Decimal
	Recipe    []RecipeLine // solo para productos compuestos, en orden
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComposite indica si el producto consume materias primas.
func (p *Product) IsComposite() bool {
	return p.Type == ProductTypeComposite
}

// RecipeLine cantidad de materia prima requerida por unidad vendida.
type RecipeLine struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// RawMaterial materia prima (harina, leche, empaques...).
type RawMaterial struct {
	ID   string
	Name string
	Unit string // kg, l, und
}
