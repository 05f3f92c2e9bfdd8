package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// RefundSale repone el stock de cada línea vendida y revierte la fidelización del cliente
// en una sola transacción. Con RefundOnce una venta solo puede reembolsarse una vez: la venta
// se lee con bloqueo de fila y refunded_at decide. La reserva del guard solo corta antes
// los reintentos concurrentes.
//
// Los productos compuestos reponen su propio stock, no las materias primas consumidas.
func (s *Service) RefundSale(ctx context.Context, saleID, reason, refundedBy string) (*dto.RefundResponse, error) {
	useGuard := s.opts.RefundOnce && s.guard != nil
	guardKey := "refund:" + saleID
	if useGuard {
		ok, err := s.guard.Acquire(ctx, guardKey, s.opts.RefundGuardTTL)
		if err != nil {
			return nil, fmt.Errorf("reservar reembolso: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: la venta %s ya fue reembolsada", domain.ErrConflict, saleID)
		}
	}

	var (
		sale           *entity.Sale
		pointsReversed int64
	)
	refundedAt := s.now()
	err := s.txRunner.Run(ctx, func(repos repository.Repositories) error {
		sl, err := repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sl == nil {
			return domain.NotFoundf("venta %s", saleID)
		}
		if s.opts.RefundOnce && sl.RefundedAt != nil {
			return fmt.Errorf("%w: la venta %s ya fue reembolsada", domain.ErrConflict, saleID)
		}
		for _, it := range sl.Items {
			if err := s.ledger.IncrementProductInTx(ctx, repos, sl.StoreID, it.ProductID, it.Quantity); err != nil {
				return err
			}
		}
		if sl.CustomerID != "" {
			pts, err := s.accrual.ReverseSaleInTx(ctx, repos, sl.CustomerID, sl.GrandTotal)
			if err != nil {
				return err
			}
			pointsReversed = pts
		}
		if err := repos.Sales.MarkRefunded(ctx, sl.ID, refundedAt); err != nil {
			return err
		}
		sale = sl
		return nil
	})
	if err != nil {
		if useGuard {
			if rerr := s.guard.Release(ctx, guardKey); rerr != nil {
				s.log.Warn().Err(rerr).Str("sale_id", saleID).Msg("no se pudo liberar la reserva de reembolso")
			}
		}
		return nil, err
	}

	resp := &dto.RefundResponse{
		SaleID:         sale.ID,
		Amount:         sale.GrandTotal,
		Reason:         reason,
		RefundedBy:     refundedBy,
		RefundedAt:     refundedAt,
		ItemsRestocked: len(sale.Items),
		PointsReversed: pointsReversed,
	}
	s.log.Info().Str("sale_id", sale.ID).Str("amount", sale.GrandTotal.StringFixed(2)).
		Str("refunded_by", refundedBy).Msg("venta reembolsada")
	return resp, nil
}
