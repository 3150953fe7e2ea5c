package notifyd

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// fakeRedis 内存版计数存储
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Expire(_ context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case int64:
		f.data[key] = strconv.FormatInt(v, 10)
	default:
		f.data[key] = "1"
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestBreakerOpensAtThreshold(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(newFakeRedis(), 5, time.Hour, 5*time.Minute, nil)
	const mid, url = uint64(100), "https://merchant.example/notify"

	for i := 1; i < 5; i++ {
		if opened := b.RecordFailure(ctx, mid, url); opened {
			t.Fatalf("breaker opened after %d failures, threshold is 5", i)
		}
		if b.Open(ctx, mid, url) {
			t.Fatalf("breaker open after %d failures", i)
		}
	}
	if opened := b.RecordFailure(ctx, mid, url); !opened {
		t.Fatal("5th consecutive failure must open the breaker")
	}
	if !b.Open(ctx, mid, url) {
		t.Fatal("breaker should be open")
	}
}

func TestBreakerSuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(newFakeRedis(), 5, time.Hour, 5*time.Minute, nil)
	const mid, url = uint64(101), "https://merchant.example/notify"

	for i := 0; i < 4; i++ {
		b.RecordFailure(ctx, mid, url)
	}
	b.RecordSuccess(ctx, mid, url)

	// 清零后需要重新累计满5次
	for i := 1; i < 5; i++ {
		if opened := b.RecordFailure(ctx, mid, url); opened {
			t.Fatalf("breaker opened after %d post-reset failures", i)
		}
	}
	if opened := b.RecordFailure(ctx, mid, url); !opened {
		t.Fatal("5th post-reset failure must open the breaker")
	}
}

func TestBreakerIsolatedByURL(t *testing.T) {
	ctx := context.Background()
	b := NewBreaker(newFakeRedis(), 5, time.Hour, 5*time.Minute, nil)
	const mid = uint64(102)

	for i := 0; i < 5; i++ {
		b.RecordFailure(ctx, mid, "https://old.example/cb")
	}
	if !b.Open(ctx, mid, "https://old.example/cb") {
		t.Fatal("old url should be open")
	}
	// 换通知地址后从零开始
	if b.Open(ctx, mid, "https://new.example/cb") {
		t.Fatal("new url must not inherit the open state")
	}
}
