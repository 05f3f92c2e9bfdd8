package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Create retorna domain.ErrDuplicate si el email o teléfono ya existe en la tienda.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Customer, error)
	// FindByContact busca por email o teléfono dentro de la tienda (campos vacíos se ignoran).
	FindByContact(ctx context.Context, storeID, email, phone string) (*entity.Customer, error)
	// UpdateLoyalty persiste TotalSpent, LoyaltyPoints y Tier.
	UpdateLoyalty(ctx context.Context, customer *entity.Customer) error
}
