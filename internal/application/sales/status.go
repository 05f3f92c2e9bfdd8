package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// UpdateStatus asigna el estado sin tabla de transiciones (cualquiera -> cualquiera)
// y vuelve a publicar order-update. No toca inventario ni fidelización.
func (s *Service) UpdateStatus(ctx context.Context, saleID, status string) (*dto.SaleResponse, error) {
	if !entity.ValidSaleStatus(status) {
		return nil, domain.Invalidf("estado desconocido: %s", status)
	}
	if err := s.repos.Sales.UpdateStatus(ctx, saleID, status, s.now()); err != nil {
		return nil, err
	}
	sale, err := s.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta %s", saleID)
	}
	resp := toSaleResponse(sale)
	s.publish(ctx, entity.EventOrderUpdate, sale.StoreID, resp)
	return resp, nil
}

// GetSale obtiene la venta con ítems y pagos.
func (s *Service) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.repos.Sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFoundf("venta %s", saleID)
	}
	return toSaleResponse(sale), nil
}
