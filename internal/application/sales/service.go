package sales

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/loyalty"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Service motor transaccional de ventas: procesamiento, checkout de invitado, reembolso y estado.
type Service struct {
	txRunner  TxRunner
	repos     repository.Repositories // atados al pool, solo lecturas fuera de tx
	resolver  *inventory.RecipeResolver
	ledger    *inventory.Ledger
	accrual   *loyalty.Accrual
	publisher ports.EventPublisher
	guard     ports.IdempotencyGuard
	opts      Options
	log       zerolog.Logger
	now       func() time.Time
}

// NewService construye el motor de ventas.
func NewService(
	txRunner TxRunner,
	repos repository.Repositories,
	resolver *inventory.RecipeResolver,
	ledger *inventory.Ledger,
	accrual *loyalty.Accrual,
	publisher ports.EventPublisher,
	guard ports.IdempotencyGuard,
	opts Options,
	log zerolog.Logger,
) *Service {
	if opts.RefundGuardTTL <= 0 {
		opts.RefundGuardTTL = 30 * 24 * time.Hour
	}
	return &Service{
		txRunner:  txRunner,
		repos:     repos,
		resolver:  resolver,
		ledger:    ledger,
		accrual:   accrual,
		publisher: publisher,
		guard:     guard,
		opts:      opts,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// publish notificación best effort: un fallo solo deja un warning.
func (s *Service) publish(ctx context.Context, kind, storeID string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, kind, storeID, payload); err != nil {
		s.log.Warn().Err(err).Str("event", kind).Str("store_id", storeID).Msg("no se pudo publicar el evento")
	}
}
