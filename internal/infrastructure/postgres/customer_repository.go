package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, store_id, name, email, phone, total_spent, loyalty_points, tier, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente. El email se guarda en minúsculas.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.StoreID, customer.Name,
		nullIfEmpty(strings.ToLower(customer.Email)), nullIfEmpty(customer.Phone),
		customer.TotalSpent, customer.LoyaltyPoints, customer.Tier,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetForUpdate obtiene el cliente bloqueando la fila hasta el fin de la transacción.
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

// FindByContact busca por email (sin distinguir mayúsculas) o teléfono dentro de la tienda.
func (r *CustomerRepo) FindByContact(ctx context.Context, storeID, email, phone string) (*entity.Customer, error) {
	if email == "" && phone == "" {
		return nil, nil
	}
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE store_id = $1
		  AND (($2::text IS NOT NULL AND email = lower($2)) OR ($3::text IS NOT NULL AND phone = $3))
		ORDER BY created_at
		LIMIT 1`
	return r.getOne(ctx, query, storeID, nullIfEmpty(email), nullIfEmpty(phone))
}

// UpdateLoyalty persiste el acumulado, los puntos y el nivel.
func (r *CustomerRepo) UpdateLoyalty(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET total_spent = $2, loyalty_points = $3, tier = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		customer.ID, customer.TotalSpent, customer.LoyaltyPoints, customer.Tier, customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer loyalty: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundf("cliente %s", customer.ID)
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Customer, error) {
	var (
		c            entity.Customer
		email, phone *string
	)
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.StoreID, &c.Name, &email, &phone,
		&c.TotalSpent, &c.LoyaltyPoints, &c.Tier, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Email = derefString(email)
	c.Phone = derefString(phone)
	return &c, nil
}
