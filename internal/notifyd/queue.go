package notifyd

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/dto"
	rediskey "fpa-order-api/internal/types/redis-key"
)

// QueueRedis 延迟队列所需最小方法集
type QueueRedis interface {
	ZAdd(ctx context.Context, key string, members ...*redis.Z) *redis.IntCmd
	ZRangeByScore(ctx context.Context, key string, opt *redis.ZRangeBy) *redis.StringSliceCmd
	ZRem(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	ZRemRangeByScore(ctx context.Context, key, min, max string) *redis.IntCmd
}

// Queue 通知重试/熔断延迟队列，ZSET 实现，score 为计划执行时间（秒）
type Queue struct {
	rdb QueueRedis
	log *logrus.Logger
}

func NewQueue(rdb QueueRedis, log *logrus.Logger) *Queue {
	return &Queue{rdb: rdb, log: log}
}

func (q *Queue) PushRetry(ctx context.Context, job dto.NotifyJob, delay time.Duration) {
	q.push(ctx, rediskey.NotifyRetryQueue(), job, delay)
}

func (q *Queue) PushDelayed(ctx context.Context, job dto.NotifyJob, delay time.Duration) {
	q.push(ctx, rediskey.NotifyDelayedQueue(), job, delay)
}

func (q *Queue) push(ctx context.Context, key string, job dto.NotifyJob, delay time.Duration) {
	b, _ := json.Marshal(job)
	err := q.rdb.ZAdd(ctx, key, &redis.Z{
		Score:  float64(time.Now().Add(delay).Unix()),
		Member: string(b),
	}).Err()
	if err != nil && q.log != nil {
		q.log.Warnf("[NotifyQueue] push %s failed: %v", key, err)
	}
}

// PopDue 取出到期任务并从队列移除。取和删非原子，
// 订单级通知锁保证重复取出也只会投递一次。
func (q *Queue) PopDue(ctx context.Context, key string, now time.Time, limit int) []dto.NotifyJob {
	members, err := q.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   formatScore(now),
		Count: int64(limit),
	}).Result()
	if err != nil {
		if q.log != nil {
			q.log.Warnf("[NotifyQueue] range %s failed: %v", key, err)
		}
		return nil
	}

	jobs := make([]dto.NotifyJob, 0, len(members))
	for _, m := range members {
		var job dto.NotifyJob
		if err := json.Unmarshal([]byte(m), &job); err != nil {
			q.rdb.ZRem(ctx, key, m)
			continue
		}
		if err := q.rdb.ZRem(ctx, key, m).Err(); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs
}

// Prune 清掉计划时间早于窗口的滞留项，防止队列无界增长
func (q *Queue) Prune(ctx context.Context, key string, olderThan time.Time) {
	if err := q.rdb.ZRemRangeByScore(ctx, key, "-inf", formatScore(olderThan)).Err(); err != nil && q.log != nil {
		q.log.Warnf("[NotifyQueue] prune %s failed: %v", key, err)
	}
}

func formatScore(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
