package inventory

import (
	"sort"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Requirement cantidad de una materia prima requerida para vender n unidades de un producto compuesto.
type Requirement struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// ExpandRecipe multiplica cada línea de la receta por la cantidad vendida (servicio de dominio).
// Requerido = CantidadReceta * CantidadVendida. Conserva el orden de la receta.
func ExpandRecipe(recipe []entity.RecipeLine, soldQty int64) []Requirement {
	out := make([]Requirement, 0, len(recipe))
	qty := decimal.NewFromInt(soldQty)
	for _, line := range recipe {
		out = append(out, Requirement{MaterialID: line.MaterialID, Quantity: line.Quantity.Mul(qty)})
	}
	return out
}

// PlanLine línea de venta ya resuelta contra el catálogo.
type PlanLine struct {
	Product  *entity.Product
	Quantity int64
}

// ProductDeduction descuento de stock de un producto simple.
type ProductDeduction struct {
	ProductID string
	Quantity  int64
}

// MaterialDeduction descuento de stock de una materia prima.
type MaterialDeduction struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// DeductionPlan descuentos agregados por ítem, ordenados por id.
// Aplicar siempre productos y luego materias primas en este orden evita interbloqueos
// entre ventas concurrentes que tocan las mismas filas.
type DeductionPlan struct {
	Products  []ProductDeduction
	Materials []MaterialDeduction
}

// IsEmpty indica si no hay nada que descontar.
func (p DeductionPlan) IsEmpty() bool {
	return len(p.Products) == 0 && len(p.Materials) == 0
}

// BuildDeductionPlan agrupa las líneas de una venta en un plan de descuento.
// Productos simples descuentan su propio stock; compuestos, las materias primas de su receta.
func BuildDeductionPlan(lines []PlanLine) DeductionPlan {
	products := map[string]int64{}
	materials := map[string]decimal.Decimal{}
	for _, l := range lines {
		if l.Product == nil || l.Quantity <= 0 {
			continue
		}
		if !l.Product.IsComposite() {
			products[l.Product.ID] += l.Quantity
			continue
		}
		for _, req := range ExpandRecipe(l.Product.Recipe, l.Quantity) {
			materials[req.MaterialID] = materials[req.MaterialID].Add(req.Quantity)
		}
	}

	var plan DeductionPlan
	for id, q := range products {
		plan.Products = append(plan.Products, ProductDeduction{ProductID: id, Quantity: q})
	}
	for id, q := range materials {
		if q.IsZero() {
			continue
		}
		plan.Materials = append(plan.Materials, MaterialDeduction{MaterialID: id, Quantity: q})
	}
	sort.Slice(plan.Products, func(i, j int) bool { return plan.Products[i].ProductID < plan.Products[j].ProductID })
	sort.Slice(plan.Materials, func(i, j int) bool { return plan.Materials[i].MaterialID < plan.Materials[j].MaterialID })
	return plan
}
