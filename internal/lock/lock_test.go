package lock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	down bool
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewBoolResult(false, errors.New("connection refused"))
	}
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return redis.NewCmdResult(nil, errors.New("connection refused"))
	}
	// 模拟 compare-and-delete 脚本语义
	if strings.Contains(script, "del") && len(keys) == 1 && len(args) == 1 {
		if f.data[keys[0]] == args[0].(string) {
			delete(f.data, keys[0])
			return redis.NewCmdResult(int64(1), nil)
		}
		return redis.NewCmdResult(int64(0), nil)
	}
	return redis.NewCmdResult(nil, errors.New("unexpected script"))
}

func TestAcquireRelease(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	l := New(r, nil)

	token, ok := l.Acquire(ctx, "lock:order:1", 30*time.Second)
	if !ok || token == "" {
		t.Fatal("first acquire should succeed")
	}
	if _, ok := l.Acquire(ctx, "lock:order:1", 30*time.Second); ok {
		t.Fatal("second acquire on held lock must fail")
	}
	l.Release(ctx, "lock:order:1", token)
	if _, ok := l.Acquire(ctx, "lock:order:1", 30*time.Second); !ok {
		t.Fatal("acquire after release should succeed")
	}
}

func TestReleaseWrongTokenKeepsLock(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	l := New(r, nil)

	token, _ := l.Acquire(ctx, "k", time.Second)
	l.Release(ctx, "k", "not-the-token")
	if _, ok := l.Acquire(ctx, "k", time.Second); ok {
		t.Fatal("lock must survive release with wrong token")
	}
	l.Release(ctx, "k", token)
}

func TestAcquireRedisDown(t *testing.T) {
	ctx := context.Background()
	r := newFakeRedis()
	r.down = true
	l := New(r, nil)
	if _, ok := l.Acquire(ctx, "k", time.Second); ok {
		t.Fatal("unreachable redis must be treated as acquire failure")
	}
}
