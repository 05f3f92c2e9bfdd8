package sales

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:             s.ID,
		StoreID:        s.StoreID,
		CustomerID:     s.CustomerID,
		Items:          make([]dto.SaleItemResponse, 0, len(s.Items)),
		Payments:       make([]dto.PaymentResponse, 0, len(s.Payments)),
		Subtotal:       s.Subtotal,
		DiscountType:   s.DiscountType,
		DiscountValue:  s.DiscountValue,
		DiscountAmount: s.DiscountAmount,
		TaxAmount:      s.TaxAmount,
		GrandTotal:     s.GrandTotal,
		TotalPaid:      s.TotalPaid(),
		OrderType:      s.OrderType,
		Status:         s.Status,
		TableNumber:    s.TableNumber,
		IsGuestOrder:   s.IsGuestOrder,
		PaymentTerms:   s.PaymentTerms,
		PaymentDueDate: s.PaymentDueDate,
		RefundedAt:     s.RefundedAt,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Subtotal: it.Subtotal,
		})
	}
	for _, p := range s.Payments {
		resp.Payments = append(resp.Payments, dto.PaymentResponse{ID: p.ID, Type: p.Type, Amount: p.Amount})
	}
	return resp
}
