package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.ProductStockRepository  = (*ProductStockRepo)(nil)
	_ repository.RawMaterialRepository   = (*MaterialRepo)(nil)
	_ repository.MaterialStockRepository = (*MaterialStockRepo)(nil)
	_ repository.SaleRepository          = (*SaleRepo)(nil)
	_ repository.CustomerRepository      = (*CustomerRepo)(nil)
	_ repository.ShiftRepository         = (*ShiftRepo)(nil)
	_ repository.AdjustmentRepository    = (*AdjustmentRepo)(nil)
	_ repository.AnalyticsRepository     = (*AnalyticsRepo)(nil)
)

func copyProduct(p entity.Product) entity.Product {
	p.Recipe = append([]entity.RecipeLine(nil), p.Recipe...)
	return p
}

func copySale(s entity.Sale) entity.Sale {
	s.Items = append([]entity.SaleItem(nil), s.Items...)
	s.Payments = append([]entity.Payment(nil), s.Payments...)
	return s
}

// ProductRepo catálogo de productos.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = copyProduct(*p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := copyProduct(p)
			out = &cp
		}
		return nil
	})
	return out, err
}

// MaterialRepo catálogo de materias primas.
type MaterialRepo struct{ v view }

func (r *MaterialRepo) Create(_ context.Context, m *entity.RawMaterial) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.materials[m.ID]; ok {
			return domain.ErrDuplicate
		}
		st.materials[m.ID] = *m
		return nil
	})
}

func (r *MaterialRepo) GetByID(_ context.Context, id string) (*entity.RawMaterial, error) {
	var out *entity.RawMaterial
	err := r.v.do(func(st *state) error {
		if m, ok := st.materials[id]; ok {
			out = &m
		}
		return nil
	})
	return out, err
}

// ProductStockRepo stock por (tienda, producto). Dentro de Run el mutex del store ya serializa,
// por eso GetForUpdate es igual a Get.
type ProductStockRepo struct{ v view }

func (r *ProductStockRepo) Get(_ context.Context, storeID, productID string) (*entity.ProductInventory, error) {
	var out entity.ProductInventory
	err := r.v.do(func(st *state) error {
		inv, ok := st.productStock[stockKey{storeID, productID}]
		if !ok {
			inv = entity.ProductInventory{StoreID: storeID, ProductID: productID}
		}
		out = inv
		return nil
	})
	return &out, err
}

func (r *ProductStockRepo) GetForUpdate(ctx context.Context, storeID, productID string) (*entity.ProductInventory, error) {
	return r.Get(ctx, storeID, productID)
}

func (r *ProductStockRepo) Upsert(_ context.Context, inv *entity.ProductInventory) error {
	return r.v.do(func(st *state) error {
		cp := *inv
		cp.UpdatedAt = time.Now().UTC()
		st.productStock[stockKey{inv.StoreID, inv.ProductID}] = cp
		return nil
	})
}

func (r *ProductStockRepo) AddQuantity(_ context.Context, storeID, productID string, delta int64) error {
	return r.v.do(func(st *state) error {
		k := stockKey{storeID, productID}
		inv, ok := st.productStock[k]
		if !ok {
			inv = entity.ProductInventory{StoreID: storeID, ProductID: productID}
		}
		inv.Quantity += delta
		inv.UpdatedAt = time.Now().UTC()
		st.productStock[k] = inv
		return nil
	})
}

// MaterialStockRepo stock por (tienda, materia prima).
type MaterialStockRepo struct{ v view }

func (r *MaterialStockRepo) Get(_ context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error) {
	var out entity.RawMaterialInventory
	err := r.v.do(func(st *state) error {
		inv, ok := st.materialStock[stockKey{storeID, materialID}]
		if !ok {
			inv = entity.RawMaterialInventory{StoreID: storeID, MaterialID: materialID, Quantity: decimal.Zero}
		}
		out = inv
		return nil
	})
	return &out, err
}

func (r *MaterialStockRepo) GetForUpdate(ctx context.Context, storeID, materialID string) (*entity.RawMaterialInventory, error) {
	return r.Get(ctx, storeID, materialID)
}

func (r *MaterialStockRepo) Upsert(_ context.Context, inv *entity.RawMaterialInventory) error {
	return r.v.do(func(st *state) error {
		cp := *inv
		cp.UpdatedAt = time.Now().UTC()
		st.materialStock[stockKey{inv.StoreID, inv.MaterialID}] = cp
		return nil
	})
}

func (r *MaterialStockRepo) AddQuantity(_ context.Context, storeID, materialID string, delta decimal.Decimal) error {
	return r.v.do(func(st *state) error {
		k := stockKey{storeID, materialID}
		inv, ok := st.materialStock[k]
		if !ok {
			inv = entity.RawMaterialInventory{StoreID: storeID, MaterialID: materialID, Quantity: decimal.Zero}
		}
		inv.Quantity = inv.Quantity.Add(delta)
		inv.UpdatedAt = time.Now().UTC()
		st.materialStock[k] = inv
		return nil
	})
}

// SaleRepo ventas con ítems y pagos.
type SaleRepo struct{ v view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sales[s.ID] = copySale(*s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.do(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			cp := copySale(s)
			out = &cp
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el Store ya serializa las transacciones.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) MarkRefunded(_ context.Context, id string, at time.Time) error {
	return r.v.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.NotFoundf("venta %s", id)
		}
		refundedAt := at
		s.RefundedAt = &refundedAt
		s.UpdatedAt = at
		st.sales[id] = s
		return nil
	})
}

func (r *SaleRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	return r.v.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return domain.NotFoundf("venta %s", id)
		}
		s.Status = status
		s.UpdatedAt = at
		st.sales[id] = s
		return nil
	})
}

func (r *SaleRepo) SumGrandTotalSince(_ context.Context, storeID string, since time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.do(func(st *state) error {
		for _, s := range st.sales {
			if s.StoreID == storeID && !s.CreatedAt.Before(since) {
				total = total.Add(s.GrandTotal)
			}
		}
		return nil
	})
	return total, err
}

// CustomerRepo clientes por tienda.
type CustomerRepo struct{ v view }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		for _, existing := range st.customers {
			if existing.StoreID != c.StoreID {
				continue
			}
			if (c.Email != "" && strings.EqualFold(existing.Email, c.Email)) || (c.Phone != "" && existing.Phone == c.Phone) {
				return domain.ErrDuplicate
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepo) FindByContact(_ context.Context, storeID, email, phone string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.do(func(st *state) error {
		for _, c := range st.customers {
			if c.StoreID != storeID {
				continue
			}
			if (email != "" && strings.EqualFold(c.Email, email)) || (phone != "" && c.Phone == phone) {
				found := c
				out = &found
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) UpdateLoyalty(_ context.Context, c *entity.Customer) error {
	return r.v.do(func(st *state) error {
		existing, ok := st.customers[c.ID]
		if !ok {
			return domain.NotFoundf("cliente %s", c.ID)
		}
		existing.TotalSpent = c.TotalSpent
		existing.LoyaltyPoints = c.LoyaltyPoints
		existing.Tier = c.Tier
		existing.UpdatedAt = c.UpdatedAt
		st.customers[c.ID] = existing
		return nil
	})
}

// ShiftRepo turnos de caja.
type ShiftRepo struct{ v view }

func (r *ShiftRepo) Create(_ context.Context, s *entity.CashShift) error {
	return r.v.do(func(st *state) error {
		st.shifts[s.ID] = *s
		return nil
	})
}

func (r *ShiftRepo) GetByID(_ context.Context, id string) (*entity.CashShift, error) {
	var out *entity.CashShift
	err := r.v.do(func(st *state) error {
		if s, ok := st.shifts[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashShift, error) {
	return r.GetByID(ctx, id)
}

func (r *ShiftRepo) Close(_ context.Context, s *entity.CashShift) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.shifts[s.ID]; !ok {
			return domain.NotFoundf("turno %s", s.ID)
		}
		st.shifts[s.ID] = *s
		return nil
	})
}

func (r *ShiftRepo) ListOpenStartedBefore(_ context.Context, before time.Time) ([]*entity.CashShift, error) {
	var out []*entity.CashShift
	err := r.v.do(func(st *state) error {
		for _, s := range st.shifts {
			if s.IsOpen() && s.StartTime.Before(before) {
				cp := s
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, err
}

// AdjustmentRepo auditoría de ajustes y asignaciones.
type AdjustmentRepo struct{ v view }

func (r *AdjustmentRepo) CreateAdjustment(_ context.Context, a *entity.InventoryAdjustment) error {
	return r.v.do(func(st *state) error {
		st.adjustments = append(st.adjustments, *a)
		return nil
	})
}

func (r *AdjustmentRepo) CreateProductAdjustment(_ context.Context, a *entity.ProductAdjustment) error {
	return r.v.do(func(st *state) error {
		st.productAdjustments = append(st.productAdjustments, *a)
		return nil
	})
}

func (r *AdjustmentRepo) CreateAllocation(_ context.Context, a *entity.MaterialAllocation) error {
	return r.v.do(func(st *state) error {
		st.allocations = append(st.allocations, *a)
		return nil
	})
}

// AnalyticsRepo agregados diarios calculados sobre el estado en memoria.
type AnalyticsRepo struct{ v view }

func (r *AnalyticsRepo) DailySummary(_ context.Context, storeID string, from, to time.Time) (*entity.DailySummary, error) {
	sum := &entity.DailySummary{StoreID: storeID, Date: from, GrossSales: decimal.Zero, NetVariance: decimal.Zero}
	err := r.v.do(func(st *state) error {
		for _, s := range st.sales {
			if s.StoreID != storeID || s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
				continue
			}
			if s.Status == entity.SaleStatusCancelled {
				sum.CancelledCount++
				continue
			}
			sum.SalesCount++
			sum.GrossSales = sum.GrossSales.Add(s.GrandTotal)
		}
		for _, sh := range st.shifts {
			if sh.StoreID != storeID || sh.EndTime == nil || sh.EndTime.Before(from) || !sh.EndTime.Before(to) {
				continue
			}
			switch sh.Status {
			case entity.ShiftStatusClosed:
				sum.ShiftsClosed++
			case entity.ShiftStatusFlagged:
				sum.ShiftsFlagged++
			}
			if sh.Variance != nil {
				sum.NetVariance = sum.NetVariance.Add(*sh.Variance)
			}
		}
		return nil
	})
	return sum, err
}
