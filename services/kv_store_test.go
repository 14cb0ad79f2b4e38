package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"serviceplus/testhelpers"
)

// exerciseKV runs the contract every KeyValueStore must satisfy.
func exerciseKV(t *testing.T, kv KeyValueStore, key string) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, key); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}
	if err := kv.Set(ctx, key, "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if v, ok, err := kv.Get(ctx, key); err != nil || !ok || v != "first" {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}
	if err := kv.Set(ctx, key, "second"); err != nil {
		t.Fatalf("overwrite error = %v", err)
	}
	if v, _, _ := kv.Get(ctx, key); v != "second" {
		t.Errorf("Get() after overwrite = %q", v)
	}
	if err := kv.Set(ctx, key, ""); err != nil {
		t.Fatalf("Set(empty) error = %v", err)
	}
	if v, ok, _ := kv.Get(ctx, key); !ok || v != "" {
		t.Errorf("empty value should still be present, got %q, %v", v, ok)
	}
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV(), QuotesKey)
}

func TestPocketBaseKV(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	exerciseKV(t, NewPocketBaseKV(app), QuotesKey)
}

func TestPocketBaseKV_KeysAreIndependent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateKVEntry(t, app, "other", "untouched")
	kv := NewPocketBaseKV(app)
	ctx := context.Background()

	if err := kv.Set(ctx, QuotesKey, "[]"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := kv.Get(ctx, "other"); !ok || v != "untouched" {
		t.Errorf("Get(other) = %q, %v", v, ok)
	}
}

func TestPocketBaseKV_BacksQuoteStore(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	ctx := context.Background()

	store, err := NewQuoteStore(ctx, NewPocketBaseKV(app))
	if err != nil {
		t.Fatal(err)
	}
	q, err := store.Append(ctx, input("svc"), time.Now())
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	reloaded, err := NewQuoteStore(ctx, NewPocketBaseKV(app))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reloaded.FindByID(q.ID); !ok {
		t.Error("quote not persisted through pocketbase")
	}
}

// Set SERVICEPLUS_TEST_REDIS_ADDR to run against a live redis.
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("SERVICEPLUS_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SERVICEPLUS_TEST_REDIS_ADDR not set")
	}
	kv := NewRedisKV(addr, "serviceplus-test:"+uuid.NewString()+":")
	defer kv.Close()
	if err := kv.Ping(context.Background()); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	exerciseKV(t, kv, QuotesKey)
}
