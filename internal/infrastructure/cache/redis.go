// Package cache implementa el cache de vistas derivadas (tablero y reportes)
// sobre Redis. El cache es estrictamente opcional: sin Redis la app recalcula
// todo en cada consulta y la semántica no cambia.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/denta-stock-api/internal/application/reports"
	"github.com/jhoicas/denta-stock-api/pkg/config"
	"github.com/jhoicas/denta-stock-api/pkg/logger"
)

var _ reports.ViewCache = (*RedisViewCache)(nil)

// reportPeriods períodos cacheables; InvalidateTeam debe borrarlos todos.
var reportPeriods = []string{"7d", "30d", "90d", "all"}

// RedisViewCache cache de vistas derivadas por equipo. Los errores de Redis
// nunca se propagan: un cache caído degrada a recalcular, no a fallar.
type RedisViewCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisViewCache conecta a Redis; devuelve nil (cache desactivado) si Addr
// está vacío o si Redis no responde al ping.
func NewRedisViewCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *RedisViewCache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible, cache de vistas desactivado")
		_ = client.Close()
		return nil
	}
	return &RedisViewCache{client: client, log: log}
}

// Get devuelve el valor cacheado y true, o false si no hay entrada o Redis falla.
func (c *RedisViewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return raw, true
}

// Set guarda el valor con TTL. Best effort.
func (c *RedisViewCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la vista")
	}
}

// InvalidateTeam borra todas las vistas derivadas del equipo. Las claves son
// deterministas (tablero + un reporte por período), así que no hace falta SCAN.
func (c *RedisViewCache) InvalidateTeam(ctx context.Context, teamID string) {
	keys := make([]string, 0, 1+len(reportPeriods))
	keys = append(keys, "dashboard:"+teamID)
	for _, p := range reportPeriods {
		keys = append(keys, "reports:"+teamID+":"+p)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Str("team_id", teamID).Msg("no se pudo invalidar el cache del equipo")
	}
}

// Close cierra la conexión a Redis.
func (c *RedisViewCache) Close() error {
	return c.client.Close()
}
