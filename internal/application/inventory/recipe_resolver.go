package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// RecipeResolver resuelve productos contra el catálogo y expande recetas de compuestos.
type RecipeResolver struct {
	products repository.ProductRepository
}

// NewRecipeResolver construye el resolver.
func NewRecipeResolver(products repository.ProductRepository) *RecipeResolver {
	return &RecipeResolver{products: products}
}

// Resolve retorna el producto vigente (con receta) o domain.ErrNotFound.
func (r *RecipeResolver) Resolve(ctx context.Context, productID string) (*entity.Product, error) {
	p, err := r.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFoundf("producto %s", productID)
	}
	return p, nil
}
