package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/courtify/courtify/config"
	"github.com/courtify/courtify/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds the provider catalogs (services + units) so repeated
// availability checks do not refetch them on every request.
type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetCatalog(ctx context.Context) (*domain.Catalog, error) {
	data, err := c.client.Get(ctx, catalogKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var catalog domain.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *RedisCache) SetCatalog(ctx context.Context, catalog *domain.Catalog) error {
	payload, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(), payload, c.catalogTTL).Err()
}

func catalogKey() string {
	return "cache:simplybook:catalog"
}
