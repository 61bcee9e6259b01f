package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyTokenBlacklist 已注销令牌，值无意义，TTL 为令牌剩余有效期
	KeyTokenBlacklist = "petshop:token:revoked:"
	// KeyProduct 商品详情缓存
	KeyProduct = "petshop:product:"
)

// NewRedisClient 创建 Redis 客户端并检查连通性
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
