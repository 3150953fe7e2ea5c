package cacheguard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeRedis 内存版共享层
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	down bool // 模拟共享层不可达
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestExistsMarkForget(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	g := New(r, nil)

	if g.Exists(ctx, "k1") {
		t.Fatal("fresh key should not exist")
	}
	g.MarkExists(ctx, "k1", time.Hour)
	if !g.Exists(ctx, "k1") {
		t.Fatal("marked key should exist")
	}
	g.Forget(ctx, "k1")
	if g.Exists(ctx, "k1") {
		t.Fatal("forgotten key should not exist")
	}
}

func TestSharedHitBackfillsLocal(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	g := New(r, nil)

	// 共享层已有标记（另一个进程写入的场景）
	r.data["k2"] = "1"
	if !g.Exists(ctx, "k2") {
		t.Fatal("shared-tier hit expected")
	}
	// 共享层宕机后本地层仍然命中
	r.down = true
	if !g.Exists(ctx, "k2") {
		t.Fatal("local tier should serve after backfill")
	}
}

func TestSharedFailureDegradesToMiss(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	r.down = true
	g := New(r, nil)

	if g.Exists(ctx, "k3") {
		t.Fatal("unreachable shared tier must degrade to miss")
	}
	// 写失败不允许panic或报错外溢
	g.MarkExists(ctx, "k3", time.Hour)
	g.Forget(ctx, "k3")
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	g := New(r, nil)

	calls := 0
	loader := func() (string, error) {
		calls++
		return "value", nil
	}
	v, err := g.GetOrLoad(ctx, "lk", time.Minute, loader)
	if err != nil || v != "value" {
		t.Fatalf("GetOrLoad: %v %q", err, v)
	}
	// 第二次命中缓存，loader 不再执行
	if _, err := g.GetOrLoad(ctx, "lk", time.Minute, loader); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}
}

func TestGetOrLoadError(t *testing.T) {
	ctx := context.Background()
	g := New(newFakeRedis(), nil)
	wantErr := errors.New("db down")
	if _, err := g.GetOrLoad(ctx, "ek", time.Minute, func() (string, error) { return "", wantErr }); err == nil {
		t.Fatal("loader error must propagate")
	}
}
