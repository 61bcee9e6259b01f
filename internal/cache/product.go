package cache

import (
	"context"
	"encoding/json"
	"errors"
	"petshop-backend/internal/model"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ProductCache 商品详情读缓存
type ProductCache interface {
	Get(ctx context.Context, id int) (*model.Product, error)
	Set(ctx context.Context, product *model.Product) error
	Invalidate(ctx context.Context, id int) error
}

// RedisProductCache 以 JSON 形式缓存商品
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl}
}

// Get 未命中时返回 nil, nil
func (c *RedisProductCache) Get(ctx context.Context, id int) (*model.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *RedisProductCache) Set(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, productKey(product.ID), data, c.ttl).Err()
}

func (c *RedisProductCache) Invalidate(ctx context.Context, id int) error {
	return c.client.Del(ctx, productKey(id)).Err()
}

// NoopProductCache 未配置 Redis 时使用
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, int) (*model.Product, error) { return nil, nil }
func (NoopProductCache) Set(context.Context, *model.Product) error        { return nil }
func (NoopProductCache) Invalidate(context.Context, int) error            { return nil }

func productKey(id int) string {
	return KeyProduct + strconv.Itoa(id)
}
