package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/domain/pricing"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProcessTransaction convierte un carrito y sus pagos en una venta persistida.
//
// Precios, descuento y total se calculan con el catálogo vigente. Venta, pagos, ítems,
// descuento de inventario y acumulado de fidelización van en UNA transacción: si falta stock
// de cualquier ítem no queda nada persistido. El evento new-sale se publica tras el Commit.
func (s *Service) ProcessTransaction(ctx context.Context, storeID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleRequest(&in); err != nil {
		return nil, err
	}

	// 1. Resolver productos (y recetas) con el precio vigente
	lines := make([]pricing.Line, len(in.Items))
	planLines := make([]inventory.PlanLine, len(in.Items))
	for i, it := range in.Items {
		p, err := s.resolver.Resolve(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p.StoreID != "" && p.StoreID != storeID {
			return nil, domain.NotFoundf("producto %s", it.ProductID)
		}
		lines[i] = pricing.Line{UnitPrice: p.Price, Quantity: it.Quantity}
		planLines[i] = inventory.PlanLine{Product: p, Quantity: it.Quantity}
	}

	if in.CustomerID != "" {
		c, err := s.repos.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if c == nil || c.StoreID != storeID {
			return nil, domain.NotFoundf("cliente %s", in.CustomerID)
		}
	}

	// 2-5. Subtotal, descuento, impuesto (0) y total
	var discount *entity.Discount
	if in.Discount != nil {
		discount = &entity.Discount{Type: in.Discount.Type, Value: in.Discount.Value}
	}
	totals, err := pricing.Calculate(lines, discount)
	if err != nil {
		return nil, err
	}

	// 6. Exactitud de pagos solo al completar una venta que no es a crédito
	paid := decimal.Zero
	for _, p := range in.Payments {
		paid = paid.Add(p.Amount)
	}
	if in.Status == entity.SaleStatusCompleted && !in.IsGuestOrder && !pricing.PaymentsMatch(paid, totals.GrandTotal) {
		return nil, &domain.PaymentMismatchError{Paid: paid, Total: totals.GrandTotal}
	}

	// 7. Estado por defecto
	status := in.Status
	if status == "" {
		status = entity.SaleStatusPending
		if paid.GreaterThanOrEqual(totals.GrandTotal) {
			status = entity.SaleStatusCompleted
		}
	}

	sale := s.buildSale(storeID, userID, in, status, lines, totals)
	plan := inventory.BuildDeductionPlan(planLines)

	err = s.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		// 9. Descontar inventario salvo venta cancelada
		if sale.Status != entity.SaleStatusCancelled {
			if err := s.ledger.ApplyPlanInTx(ctx, repos, storeID, plan); err != nil {
				return err
			}
		}
		if sale.Status == entity.SaleStatusCompleted && sale.CustomerID != "" {
			if _, err := s.accrual.AccrueSaleInTx(ctx, repos, sale.CustomerID, sale.GrandTotal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toSaleResponse(sale)
	s.log.Info().Str("sale_id", sale.ID).Str("store_id", storeID).Str("status", sale.Status).
		Str("grand_total", sale.GrandTotal.StringFixed(2)).Msg("venta registrada")
	s.publish(ctx, entity.EventNewSale, storeID, resp)
	return resp, nil
}

// GuestCheckout ubica el cliente por email/teléfono (o lo crea) y delega en ProcessTransaction
// como pedido de invitado, exento de la validación de pagos.
func (s *Service) GuestCheckout(ctx context.Context, storeID, userID string, in dto.GuestCheckoutRequest) (*dto.SaleResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Customer.Email))
	phone := strings.TrimSpace(in.Customer.Phone)
	if email == "" && phone == "" {
		return nil, domain.Invalidf("el cliente invitado requiere email o teléfono")
	}

	customer, err := s.repos.Customers.FindByContact(ctx, storeID, email, phone)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		now := s.now()
		customer = &entity.Customer{
			ID:         uuid.New().String(),
			StoreID:    storeID,
			Name:       strings.TrimSpace(in.Customer.Name),
			Email:      email,
			Phone:      phone,
			TotalSpent: decimal.Zero,
			Tier:       entity.TierStandard,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.repos.Customers.Create(ctx, customer); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, fmt.Errorf("%w: email o teléfono ya registrado", domain.ErrConflict)
			}
			return nil, err
		}
	}

	req := in.Sale
	req.CustomerID = customer.ID
	req.IsGuestOrder = true
	return s.ProcessTransaction(ctx, storeID, userID, req)
}

func (s *Service) buildSale(storeID, userID string, in dto.CreateSaleRequest, status string, lines []pricing.Line, totals pricing.Totals) *entity.Sale {
	now := s.now()
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		StoreID:        storeID,
		CustomerID:     in.CustomerID,
		CreatedBy:      userID,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		DiscountValue:  decimal.Zero,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     totals.GrandTotal,
		OrderType:      in.OrderType,
		Status:         status,
		TableNumber:    in.TableNumber,
		IsGuestOrder:   in.IsGuestOrder,
		PaymentTerms:   in.PaymentTerms,
		PaymentDueDate: in.PaymentDueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Discount != nil {
		sale.DiscountType = in.Discount.Type
		sale.DiscountValue = in.Discount.Value
	}
	for i, it := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: lines[i].UnitPrice,
			Subtotal:  totals.LineSubtotals[i],
		})
	}
	for _, p := range in.Payments {
		sale.Payments = append(sale.Payments, entity.Payment{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			Type:      p.Type,
			Amount:    p.Amount,
			CreatedAt: now,
		})
	}
	return sale
}

func validateSaleRequest(in *dto.CreateSaleRequest) error {
	if len(in.Items) == 0 {
		return domain.Invalidf("la venta debe tener al menos un ítem")
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.Invalidf("product_id vacío (ítem %d)", i+1)
		}
		if it.Quantity <= 0 {
			return domain.Invalidf("la cantidad debe ser positiva (ítem %d)", i+1)
		}
	}
	for i, p := range in.Payments {
		if !entity.ValidPaymentType(p.Type) {
			return domain.Invalidf("tipo de pago desconocido: %s (pago %d)", p.Type, i+1)
		}
		if !p.Amount.IsPositive() {
			return domain.Invalidf("el monto del pago debe ser positivo (pago %d)", i+1)
		}
	}
	if in.OrderType == "" {
		in.OrderType = entity.OrderTypeInStore
	}
	if !entity.ValidOrderType(in.OrderType) {
		return domain.Invalidf("tipo de pedido desconocido: %s", in.OrderType)
	}
	if in.Status != "" && !entity.ValidSaleStatus(in.Status) {
		return domain.Invalidf("estado desconocido: %s", in.Status)
	}
	return nil
}
