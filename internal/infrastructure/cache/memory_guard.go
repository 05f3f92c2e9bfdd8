package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryGuard reserva de claves en memoria del proceso. Válida para una sola instancia y pruebas;
// con varias réplicas usar RedisGuard.
type MemoryGuard struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryGuard crea la guardia vacía.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{entries: make(map[string]time.Time), now: time.Now}
}

// Acquire retorna true si la clave estaba libre o vencida. Descarta de paso las claves vencidas.
func (g *MemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.entries {
		if !now.Before(exp) {
			delete(g.entries, k)
		}
	}
	if exp, ok := g.entries[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.entries[key] = now.Add(ttl)
	return true, nil
}

// Release libera la clave (p. ej. cuando la operación reservada falló).
func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.entries, key)
	return nil
}

// Len cantidad de claves vigentes o aún no descartadas.
func (g *MemoryGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
