package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListCache holds the serialized product listing between writes.
//
// Writers call Invalidate after every store mutation, which bumps the
// generation. Readers take Generation before reading the store and pass it
// to SetIfCurrent, so a listing read before a mutation is never stored
// after it.
type ListCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context) (items []map[string]any, ok bool, err error)
	Generation(ctx context.Context) (int64, error)
	// SetIfCurrent stores items only while the generation is still gen.
	SetIfCurrent(ctx context.Context, gen int64, items []map[string]any) (stored bool, err error)
	Invalidate(ctx context.Context) error
}

// RedisListCache stores the listing as JSON under a single key with a TTL
// and keeps a generation counter under key+":gen".
type RedisListCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// NewRedisListCache creates a Redis-backed list cache. Key defaults to
// "products:list"; a non-positive ttl falls back to 30 seconds.
func NewRedisListCache(client *redis.Client, key string, ttl time.Duration) *RedisListCache {
	if key == "" {
		key = "products:list"
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisListCache{client: client, key: key, genKey: key + ":gen", ttl: ttl}
}

func (r *RedisListCache) Get(ctx context.Context) ([]map[string]any, bool, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	items := []map[string]any{}
	if err := json.Unmarshal(b, &items); err != nil {
		// drop the unreadable entry so the next read repopulates it
		_ = r.client.Del(ctx, r.key).Err()
		return nil, false, err
	}
	return items, true, nil
}

// Generation returns the current generation; 0 before the first invalidation.
func (r *RedisListCache) Generation(ctx context.Context) (int64, error) {
	return generation(ctx, r.client, r.genKey)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func generation(ctx context.Context, c getter, key string) (int64, error) {
	gen, err := c.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (r *RedisListCache) SetIfCurrent(ctx context.Context, gen int64, items []map[string]any) (bool, error) {
	if items == nil {
		items = []map[string]any{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return false, err
	}
	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := generation(ctx, tx, r.genKey)
		if err != nil {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, r.key, b, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, r.genKey)
	if errors.Is(err, redis.TxFailedErr) {
		// the generation moved between WATCH and EXEC
		return false, nil
	}
	return stored, err
}

// Invalidate bumps the generation and drops the stored listing.
func (r *RedisListCache) Invalidate(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, r.genKey)
		p.Del(ctx, r.key)
		return nil
	})
	return err
}
