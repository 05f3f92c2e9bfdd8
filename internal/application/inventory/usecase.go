package inventory

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
	"github.com/shopspring/decimal"
)

// Tipos de movimiento reportados en InventoryMovementResponse.
const (
	MovementAdjustment        = "adjustment"
	MovementProductAdjustment = "product_adjustment"
	MovementAllocation        = "allocation"
)

// UseCase ajustes manuales de materias primas y productos, asignaciones y consultas de stock.
// El registro de auditoría y la mutación de stock comparten la misma transacción.
type UseCase struct {
	txRunner TxRunner
	ledger   *Ledger
	repos    repository.Repositories // atados al pool, solo lecturas fuera de tx
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, ledger *Ledger, repos repository.Repositories, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, ledger: ledger, repos: repos, log: log}
}

// Adjust aplica un ajuste con signo sobre la materia prima y deja el registro de auditoría.
// Positivo suma (crea la fila si no existe); negativo resta con verificación de stock.
func (uc *UseCase) Adjust(ctx context.Context, storeID, userID string, in dto.AdjustInventoryRequest) (*dto.InventoryMovementResponse, error) {
	if strings.TrimSpace(in.MaterialID) == "" {
		return nil, domain.Invalidf("material_id es obligatorio")
	}
	if in.Quantity.IsZero() {
		return nil, domain.Invalidf("la cantidad del ajuste no puede ser cero")
	}
	now := time.Now().UTC()
	adj := &entity.InventoryAdjustment{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		StoreID:    storeID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		CreatedBy:  userID,
		CreatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := requireMaterial(ctx, repos, in.MaterialID); err != nil {
			return err
		}
		var err error
		if in.Quantity.IsPositive() {
			err = uc.ledger.IncrementMaterialInTx(ctx, repos, storeID, in.MaterialID, in.Quantity)
		} else {
			err = uc.ledger.DecrementMaterialInTx(ctx, repos, storeID, in.MaterialID, in.Quantity.Neg())
		}
		if err != nil {
			return err
		}
		return repos.Adjustments.CreateAdjustment(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("store_id", storeID).Str("material_id", in.MaterialID).
		Str("quantity", in.Quantity.String()).Str("user_id", userID).Msg("ajuste de inventario registrado")

	return &dto.InventoryMovementResponse{
		ID: adj.ID, Kind: MovementAdjustment, MaterialID: adj.MaterialID, StoreID: adj.StoreID,
		Quantity: adj.Quantity, Reason: adj.Reason, CreatedBy: adj.CreatedBy, CreatedAt: adj.CreatedAt,
	}, nil
}

// AdjustProduct entrada o salida manual de stock de un producto simple, con su registro de auditoría.
// Es la vía para cargar stock de productos: positivo suma (crea la fila), negativo resta con verificación.
func (uc *UseCase) AdjustProduct(ctx context.Context, storeID, userID string, in dto.AdjustProductRequest) (*dto.InventoryMovementResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalidf("product_id es obligatorio")
	}
	if in.Quantity == 0 {
		return nil, domain.Invalidf("la cantidad del ajuste no puede ser cero")
	}
	adj := &entity.ProductAdjustment{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		StoreID:   storeID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
	}

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil || (p.StoreID != "" && p.StoreID != storeID) {
			return domain.NotFoundf("producto %s", in.ProductID)
		}
		if p.IsComposite() {
			return domain.Invalidf("el producto %s es compuesto; ajuste sus materias primas", in.ProductID)
		}
		if in.Quantity > 0 {
			err = uc.ledger.IncrementProductInTx(ctx, repos, storeID, in.ProductID, in.Quantity)
		} else {
			err = uc.ledger.DecrementProductInTx(ctx, repos, storeID, in.ProductID, -in.Quantity)
		}
		if err != nil {
			return err
		}
		return repos.Adjustments.CreateProductAdjustment(ctx, adj)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("store_id", storeID).Str("product_id", in.ProductID).
		Int64("quantity", in.Quantity).Str("user_id", userID).Msg("ajuste de stock de producto registrado")

	return &dto.InventoryMovementResponse{
		ID: adj.ID, Kind: MovementProductAdjustment, ProductID: adj.ProductID, StoreID: adj.StoreID,
		Quantity: decimal.NewFromInt(adj.Quantity), Reason: adj.Reason, CreatedBy: adj.CreatedBy, CreatedAt: adj.CreatedAt,
	}, nil
}

// Allocate consume materia prima para un fin distinto a la venta (producción, merma).
func (uc *UseCase) Allocate(ctx context.Context, storeID, userID string, in dto.AllocateMaterialRequest) (*dto.InventoryMovementResponse, error) {
	if strings.TrimSpace(in.MaterialID) == "" {
		return nil, domain.Invalidf("material_id es obligatorio")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Invalidf("la cantidad a asignar debe ser positiva")
	}
	now := time.Now().UTC()
	alloc := &entity.MaterialAllocation{
		ID:         uuid.New().String(),
		MaterialID: in.MaterialID,
		StoreID:    storeID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		CreatedBy:  userID,
		CreatedAt:  now,
	}

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := requireMaterial(ctx, repos, in.MaterialID); err != nil {
			return err
		}
		if err := uc.ledger.DecrementMaterialInTx(ctx, repos, storeID, in.MaterialID, in.Quantity); err != nil {
			return err
		}
		return repos.Adjustments.CreateAllocation(ctx, alloc)
	})
	if err != nil {
		return nil, err
	}

	return &dto.InventoryMovementResponse{
		ID: alloc.ID, Kind: MovementAllocation, MaterialID: alloc.MaterialID, StoreID: alloc.StoreID,
		Quantity: alloc.Quantity, Reason: alloc.Reason, CreatedBy: alloc.CreatedBy, CreatedAt: alloc.CreatedAt,
	}, nil
}

// MaterialStock stock actual de una materia prima (cero si nunca tuvo movimientos).
func (uc *UseCase) MaterialStock(ctx context.Context, storeID, materialID string) (*dto.MaterialStockResponse, error) {
	m, err := uc.repos.Materials.GetByID(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFoundf("materia prima %s", materialID)
	}
	stock, err := uc.repos.MaterialStock.Get(ctx, storeID, materialID)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialStockResponse{
		StoreID: storeID, MaterialID: m.ID, Name: m.Name, Unit: m.Unit, Quantity: stock.Quantity,
	}, nil
}

// ProductStock stock actual de un producto simple.
func (uc *UseCase) ProductStock(ctx context.Context, storeID, productID string) (*dto.ProductStockResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || (p.StoreID != "" && p.StoreID != storeID) {
		return nil, domain.NotFoundf("producto %s", productID)
	}
	if p.IsComposite() {
		return nil, domain.Invalidf("el producto %s es compuesto; su stock está en las materias primas", productID)
	}
	stock, err := uc.repos.ProductStock.Get(ctx, storeID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStockResponse{StoreID: storeID, ProductID: p.ID, Name: p.Name, Quantity: stock.Quantity}, nil
}

func requireMaterial(ctx context.Context, repos repository.Repositories, materialID string) error {
	m, err := repos.Materials.GetByID(ctx, materialID)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.NotFoundf("materia prima %s", materialID)
	}
	return nil
}
