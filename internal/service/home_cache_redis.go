package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"realtor-api/internal/domain"
)

// HomeSearchCache guarda resultados de búsqueda por filtro.
// Get devuelve también la clave vigente al momento de la lectura; Set guarda bajo esa
// clave, de modo que un resultado leído antes de una escritura nunca queda visible después.
// Una clave vacía significa que el cache no está disponible.
type HomeSearchCache interface {
	Get(ctx context.Context, filter domain.HomeFilter) (homes []domain.Home, key string, ok bool)
	Set(ctx context.Context, key string, homes []domain.Home)
	Invalidate(ctx context.Context)
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// redisHomeSearchCache versiona las claves: cualquier escritura incrementa la versión y
// las entradas viejas expiran solas por TTL. Los errores de redis se tratan como miss.
type redisHomeSearchCache struct {
	client redisKV
	ttl    time.Duration
	prefix string
	logger *zap.Logger
}

func NewRedisHomeSearchCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) HomeSearchCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisHomeSearchCache{
		client: client,
		ttl:    ttl,
		prefix: "homes:search:",
		logger: logger,
	}
}

func (c *redisHomeSearchCache) Get(ctx context.Context, filter domain.HomeFilter) ([]domain.Home, string, bool) {
	key, ok := c.key(ctx, filter)
	if !ok {
		return nil, "", false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("home cache get failed", zap.Error(err))
		}
		return nil, key, false
	}
	var homes []domain.Home
	if err := json.Unmarshal(raw, &homes); err != nil {
		return nil, key, false
	}
	return homes, key, true
}

func (c *redisHomeSearchCache) Set(ctx context.Context, key string, homes []domain.Home) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(homes)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("home cache set failed", zap.Error(err))
	}
}

func (c *redisHomeSearchCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, c.prefix+"version").Err(); err != nil {
		c.logger.Warn("home cache invalidate failed", zap.Error(err))
	}
}

func (c *redisHomeSearchCache) key(ctx context.Context, filter domain.HomeFilter) (string, bool) {
	version, err := c.client.Get(ctx, c.prefix+"version").Int64()
	if err != nil && err != redis.Nil {
		c.logger.Debug("home cache version failed", zap.Error(err))
		return "", false
	}
	return c.prefix + "v" + strconv.FormatInt(version, 10) + ":" + filterKey(filter), true
}

// filterKey es estable para filtros equivalentes.
func filterKey(filter domain.HomeFilter) string {
	raw, _ := json.Marshal(filter)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
