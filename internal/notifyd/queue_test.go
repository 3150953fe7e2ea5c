package notifyd

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"fpa-order-api/internal/dto"
	rediskey "fpa-order-api/internal/types/redis-key"
)

// fakeZSet 内存版有序集合
type fakeZSet struct {
	mu   sync.Mutex
	sets map[string]map[string]float64
}

func newFakeZSet() *fakeZSet { return &fakeZSet{sets: map[string]map[string]float64{}} }

func (f *fakeZSet) ZAdd(_ context.Context, key string, members ...*redis.Z) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sets[key] == nil {
		f.sets[key] = map[string]float64{}
	}
	for _, m := range members {
		f.sets[key][m.Member.(string)] = m.Score
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeZSet) ZRangeByScore(_ context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	max, _ := strconv.ParseFloat(opt.Max, 64)
	var out []string
	for member, score := range f.sets[key] {
		if score <= max {
			out = append(out, member)
		}
	}
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeZSet) ZRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range members {
		delete(f.sets[key], m.(string))
	}
	return redis.NewIntResult(int64(len(members)), nil)
}

func (f *fakeZSet) ZRemRangeByScore(_ context.Context, key, _, max string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	bound, _ := strconv.ParseFloat(max, 64)
	var removed int64
	for member, score := range f.sets[key] {
		if score <= bound {
			delete(f.sets[key], member)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestQueueDueAndNotDue(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(newFakeZSet(), nil)
	key := rediskey.NotifyRetryQueue()

	q.PushRetry(ctx, dto.NotifyJob{OrderNo: 1, Attempt: 2}, 0)
	q.PushRetry(ctx, dto.NotifyJob{OrderNo: 2, Attempt: 2}, time.Hour)

	jobs := q.PopDue(ctx, key, time.Now().Add(time.Second), 10)
	if len(jobs) != 1 || jobs[0].OrderNo != 1 || jobs[0].Attempt != 2 {
		t.Fatalf("expected only due job for order 1, got %+v", jobs)
	}

	// 取出即出队，再取为空
	if again := q.PopDue(ctx, key, time.Now().Add(time.Second), 10); len(again) != 0 {
		t.Fatalf("popped job must be removed, got %+v", again)
	}

	// 未到期任务到期后可取
	future := q.PopDue(ctx, key, time.Now().Add(2*time.Hour), 10)
	if len(future) != 1 || future[0].OrderNo != 2 {
		t.Fatalf("expected deferred job for order 2, got %+v", future)
	}
}

func TestQueuePrune(t *testing.T) {
	ctx := context.Background()
	z := newFakeZSet()
	q := NewQueue(z, nil)
	key := rediskey.NotifyDelayedQueue()

	q.PushDelayed(ctx, dto.NotifyJob{OrderNo: 3, Attempt: 1}, -48*time.Hour)
	q.PushDelayed(ctx, dto.NotifyJob{OrderNo: 4, Attempt: 1}, time.Minute)

	q.Prune(ctx, key, time.Now().Add(-24*time.Hour))

	jobs := q.PopDue(ctx, key, time.Now().Add(time.Hour), 10)
	if len(jobs) != 1 || jobs[0].OrderNo != 4 {
		t.Fatalf("stale job should be pruned, got %+v", jobs)
	}
}
