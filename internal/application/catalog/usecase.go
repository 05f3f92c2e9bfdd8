package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// UseCase alta y consulta del catálogo de productos y materias primas.
// El stock no se toca aquí: entra por ajustes de inventario.
type UseCase struct {
	txRunner TxRunner
	repos    repository.Repositories
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, repos repository.Repositories, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, log: log}
}

// CreateProduct registra un producto de la tienda. Un compuesto necesita receta
// con materias primas existentes y cantidades positivas; un simple no admite receta.
func (uc *UseCase) CreateProduct(ctx context.Context, storeID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalidf("name es obligatorio")
	}
	if in.Type == "" {
		in.Type = entity.ProductTypeSimple
	}
	if in.Type != entity.ProductTypeSimple && in.Type != entity.ProductTypeComposite {
		return nil, domain.Invalidf("type debe ser %s o %s", entity.ProductTypeSimple, entity.ProductTypeComposite)
	}
	if in.Price.IsNegative() {
		return nil, domain.Invalidf("price no puede ser negativo")
	}
	if in.Type == entity.ProductTypeSimple && len(in.Recipe) > 0 {
		return nil, domain.Invalidf("un producto simple no lleva receta")
	}
	if in.Type == entity.ProductTypeComposite && len(in.Recipe) == 0 {
		return nil, domain.Invalidf("un producto compuesto requiere receta")
	}

	recipe := make([]entity.RecipeLine, 0, len(in.Recipe))
	seen := map[string]bool{}
	for _, l := range in.Recipe {
		if strings.TrimSpace(l.MaterialID) == "" {
			return nil, domain.Invalidf("material_id es obligatorio en la receta")
		}
		if !l.Quantity.IsPositive() {
			return nil, domain.Invalidf("cantidad de receta inválida para %s", l.MaterialID)
		}
		if seen[l.MaterialID] {
			return nil, domain.Invalidf("materia prima repetida en la receta: %s", l.MaterialID)
		}
		seen[l.MaterialID] = true
		recipe = append(recipe, entity.RecipeLine{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		Name:      name,
		Type:      in.Type,
		Price:     in.Price,
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		for _, l := range recipe {
			m, err := repos.Materials.GetByID(ctx, l.MaterialID)
			if err != nil {
				return err
			}
			if m == nil {
				return domain.NotFoundf("materia prima %s", l.MaterialID)
			}
		}
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("store_id", storeID).Str("product_id", product.ID).Str("type", product.Type).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetProduct retorna el producto con su receta. Productos de otra tienda se reportan como inexistentes.
func (uc *UseCase) GetProduct(ctx context.Context, storeID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != storeID {
		return nil, domain.NotFoundf("producto %s", id)
	}
	return toProductResponse(p), nil
}

// CreateMaterial registra una materia prima. Unit por defecto "und".
func (uc *UseCase) CreateMaterial(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalidf("name es obligatorio")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "und"
	}
	m := &entity.RawMaterial{ID: uuid.New().String(), Name: name, Unit: unit}
	if err := uc.repos.Materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.MaterialResponse{ID: m.ID, Name: m.Name, Unit: m.Unit}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:        p.ID,
		StoreID:   p.StoreID,
		Name:      p.Name,
		Type:      p.Type,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, l := range p.Recipe {
		out.Recipe = append(out.Recipe, dto.RecipeLineDTO{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return out
}
