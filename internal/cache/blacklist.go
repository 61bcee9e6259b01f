package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 记录已注销的令牌直到其自然过期
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist 基于 Redis 的令牌黑名单，多实例共享
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, KeyTokenBlacklist+fingerprint(token), 1, ttl).Err()
}

func (b *RedisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, KeyTokenBlacklist+fingerprint(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlacklist 单实例部署时使用的进程内黑名单
type MemoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *MemoryBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	// 顺便清理已过期的条目
	for k, exp := range b.entries {
		if !exp.After(now) {
			delete(b.entries, k)
		}
	}
	b.entries[fingerprint(token)] = now.Add(ttl)
	return nil
}

func (b *MemoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	exp, ok := b.entries[fingerprint(token)]
	return ok && exp.After(b.now()), nil
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
