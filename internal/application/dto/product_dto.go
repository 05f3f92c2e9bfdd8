package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLineDTO una línea de receta: materia prima y cantidad por unidad vendida.
type RecipeLineDTO struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// CreateProductRequest entrada para crear un producto del catálogo.
// Type: simple (stock propio) o composite (descuenta materias primas según Recipe).
type CreateProductRequest struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Price  decimal.Decimal `json:"price"`
	Recipe []RecipeLineDTO `json:"recipe"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	StoreID   string          `json:"store_id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Recipe    []RecipeLineDTO `json:"recipe,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateMaterialRequest entrada para registrar una materia prima.
type CreateMaterialRequest struct {
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// MaterialResponse salida de una materia prima.
type MaterialResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}
