package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"serviceplus/collections"
)

// KeyValueStore is the string-keyed persistence the quote history lives in.
// Get reports ok=false for a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryKV keeps values in process memory. Backs the memory store backend and tests.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// PocketBaseKV stores values as records of the kv_entries collection.
type PocketBaseKV struct {
	app core.App
}

func NewPocketBaseKV(app core.App) *PocketBaseKV {
	return &PocketBaseKV{app: app}
}

func (p *PocketBaseKV) find(key string) (*core.Record, error) {
	rec, err := p.app.FindFirstRecordByFilter(collections.KVEntries, "key = {:key}", map[string]any{"key": key})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("kv: find %q: %w", key, err)
	}
	return rec, nil
}

func (p *PocketBaseKV) Get(_ context.Context, key string) (string, bool, error) {
	rec, err := p.find(key)
	if err != nil || rec == nil {
		return "", false, err
	}
	return rec.GetString("value"), true, nil
}

func (p *PocketBaseKV) Set(_ context.Context, key, value string) error {
	rec, err := p.find(key)
	if err != nil {
		return err
	}
	if rec == nil {
		col, err := p.app.FindCollectionByNameOrId(collections.KVEntries)
		if err != nil {
			return fmt.Errorf("kv: collection %s: %w", collections.KVEntries, err)
		}
		rec = core.NewRecord(col)
		rec.Set("key", key)
	}
	rec.Set("value", value)
	if err := p.app.Save(rec); err != nil {
		return fmt.Errorf("kv: save %q: %w", key, err)
	}
	return nil
}

// RedisKV stores values as plain redis strings under an optional prefix.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

const redisTimeout = 2 * time.Second

func NewRedisKV(addr, prefix string) *RedisKV {
	return &RedisKV{rdb: redis.NewClient(&redis.Options{Addr: addr}), prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	v, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: redis get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv: redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
