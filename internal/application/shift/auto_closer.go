package shift

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AutoCloser job periódico que cierra turnos olvidados abiertos.
type AutoCloser struct {
	svc      *Service
	maxOpen  time.Duration
	interval time.Duration
	log      zerolog.Logger
}

// NewAutoCloser construye el job. maxOpen == 0 lo deshabilita.
func NewAutoCloser(svc *Service, maxOpen, interval time.Duration, log zerolog.Logger) *AutoCloser {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AutoCloser{svc: svc, maxOpen: maxOpen, interval: interval, log: log}
}

// Enabled indica si el job tiene algo que hacer.
func (a *AutoCloser) Enabled() bool {
	return a.maxOpen > 0
}

// Run bloquea hasta que ctx se cancele, revisando cada interval.
func (a *AutoCloser) Run(ctx context.Context) {
	if !a.Enabled() {
		return
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

func (a *AutoCloser) tick(ctx context.Context) {
	n, err := a.svc.AutoCloseStale(ctx, a.maxOpen)
	if err != nil {
		a.log.Error().Err(err).Msg("cierre automático de turnos")
		return
	}
	if n > 0 {
		a.log.Info().Int("closed", n).Msg("turnos cerrados automáticamente")
	}
}
