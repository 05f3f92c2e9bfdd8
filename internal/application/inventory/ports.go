package inventory

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback de todo lo escrito por los repositorios recibidos.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
