package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

var (
	_ ports.IdempotencyGuard = (*RedisGuard)(nil)
	_ ports.IdempotencyGuard = (*MemoryGuard)(nil)
)

// RedisGuard reserva de claves compartida entre réplicas (SETNX con TTL).
type RedisGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisGuard conecta a Redis y verifica la conexión con PING.
func NewRedisGuard(ctx context.Context, cfg config.RedisConfig) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return NewRedisGuardWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisGuardWithClient usa un cliente existente (pruebas o cliente compartido).
func NewRedisGuardWithClient(client *redis.Client, keyPrefix string) *RedisGuard {
	if keyPrefix == "" {
		keyPrefix = "pos:idempotency:"
	}
	return &RedisGuard{client: client, keyPrefix: keyPrefix}
}

// Acquire SETNX atómico: true si la clave quedó reservada por esta llamada.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reservar clave %s: %w", key, err)
	}
	return ok, nil
}

// Release elimina la reserva.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("liberar clave %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente Redis.
func (g *RedisGuard) Close() error {
	return g.client.Close()
}
