package events

import (
	"context"

	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/rs/zerolog"
)

var _ ports.EventPublisher = (*LogPublisher)(nil)

// LogPublisher registra los eventos en el log cuando no hay brokers configurados.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher construye el publicador de respaldo.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish nunca falla.
func (p *LogPublisher) Publish(_ context.Context, kind, storeID string, payload any) error {
	p.log.Debug().Str("kind", kind).Str("store_id", storeID).Interface("payload", payload).Msg("evento")
	return nil
}
