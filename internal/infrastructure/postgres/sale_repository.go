package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas con sus ítems y pagos.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta cabecera, ítems y pagos. Debe ejecutarse dentro de una transacción.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (
			id, store_id, customer_id, created_by, subtotal, discount_type, discount_value,
			discount_amount, tax_amount, grand_total, order_type, status, table_number,
			is_guest_order, payment_terms, payment_due_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StoreID, nullIfEmpty(s.CustomerID), s.CreatedBy, s.Subtotal,
		nullIfEmpty(s.DiscountType), s.DiscountValue, s.DiscountAmount, s.TaxAmount, s.GrandTotal,
		s.OrderType, s.Status, s.TableNumber, s.IsGuestOrder, nullIfEmpty(s.PaymentTerms),
		s.PaymentDueDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	for _, p := range s.Payments {
		_, err := r.q.Exec(ctx, `
			INSERT INTO payments (id, sale_id, type, amount, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, s.ID, p.Type, p.Amount, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
	}
	return nil
}

const selectSale = `
	SELECT id, store_id, customer_id, created_by, subtotal, discount_type, discount_value,
	       discount_amount, tax_amount, grand_total, order_type, status, table_number,
	       is_guest_order, payment_terms, payment_due_date, refunded_at, created_at, updated_at
	FROM sales WHERE id = $1`

// GetByID obtiene la venta con ítems y pagos; nil, nil si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, selectSale, id)
}

// GetForUpdate obtiene la venta bloqueando su fila (SELECT ... FOR UPDATE). Usar dentro de una tx.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.get(ctx, selectSale+" FOR UPDATE", id)
}

func (r *SaleRepo) get(ctx context.Context, query, id string) (*entity.Sale, error) {
	var (
		s                                      entity.Sale
		customerID, discountType, paymentTerms *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StoreID, &customerID, &s.CreatedBy, &s.Subtotal, &discountType, &s.DiscountValue,
		&s.DiscountAmount, &s.TaxAmount, &s.GrandTotal, &s.OrderType, &s.Status, &s.TableNumber,
		&s.IsGuestOrder, &paymentTerms, &s.PaymentDueDate, &s.RefundedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CustomerID = derefString(customerID)
	s.DiscountType = derefString(discountType)
	s.PaymentTerms = derefString(paymentTerms)

	if s.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	if s.Payments, err = r.payments(ctx, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) items(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *SaleRepo) payments(ctx context.Context, saleID string) ([]entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, type, amount, created_at
		FROM payments WHERE sale_id = $1 ORDER BY created_at, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Type, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado; ErrNotFound si la venta no existe.
func (r *SaleRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		if isInvalidText(err) {
			return domain.NotFoundf("venta %s", id)
		}
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("venta %s", id)
	}
	return nil
}

// MarkRefunded fija refunded_at; ErrNotFound si la venta no existe.
func (r *SaleRepo) MarkRefunded(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE sales SET refunded_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		if isInvalidText(err) {
			return domain.NotFoundf("venta %s", id)
		}
		return fmt.Errorf("mark sale refunded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("venta %s", id)
	}
	return nil
}

// SumGrandTotalSince suma el total de todas las ventas de la tienda desde since (inclusive).
func (r *SaleRepo) SumGrandTotalSince(ctx context.Context, storeID string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(grand_total), 0) FROM sales
		WHERE store_id = $1 AND created_at >= $2`, storeID, since).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum sales since: %w", err)
	}
	return total, nil
}
