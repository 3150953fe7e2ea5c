package notifyd

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	rediskey "fpa-order-api/internal/types/redis-key"
)

// BreakerRedis 熔断计数所需最小方法集
type BreakerRedis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Breaker 商户通知熔断器。计数放共享缓存，多实例共用同一份状态；
// 键按通知地址哈希隔离，商户换地址后从零计数。
type Breaker struct {
	rdb       BreakerRedis
	threshold int           // 连续失败阈值
	window    time.Duration // 失败计数TTL
	cooldown  time.Duration // 熔断打开时长
	log       *logrus.Logger
}

func NewBreaker(rdb BreakerRedis, threshold int, window, cooldown time.Duration, log *logrus.Logger) *Breaker {
	return &Breaker{rdb: rdb, threshold: threshold, window: window, cooldown: cooldown, log: log}
}

// URLHash 通知地址稳定哈希
func URLHash(url string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return h.Sum32()
}

// Open 熔断是否打开。redis 异常按未打开处理：宁可多试一次投递
func (b *Breaker) Open(ctx context.Context, mid uint64, url string) bool {
	_, err := b.rdb.Get(ctx, rediskey.NotifyBreakerOpen(mid, URLHash(url))).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && b.log != nil {
			b.log.Warnf("[Breaker] open check failed: %v", err)
		}
		return false
	}
	return true
}

// RecordFailure 失败计数+1；达到阈值时打开熔断并清空计数，返回是否本次打开
func (b *Breaker) RecordFailure(ctx context.Context, mid uint64, url string) bool {
	hash := URLHash(url)
	failKey := rediskey.NotifyFailCount(mid, hash)

	n, err := b.rdb.Incr(ctx, failKey).Result()
	if err != nil {
		if b.log != nil {
			b.log.Warnf("[Breaker] incr failed: %v", err)
		}
		return false
	}
	if n == 1 {
		b.rdb.Expire(ctx, failKey, b.window)
	}
	if int(n) < b.threshold {
		return false
	}

	b.rdb.Set(ctx, rediskey.NotifyBreakerOpen(mid, hash), time.Now().Unix(), b.cooldown)
	b.rdb.Del(ctx, failKey)
	return true
}

// RecordSuccess 任何一次成功立刻清零失败计数
func (b *Breaker) RecordSuccess(ctx context.Context, mid uint64, url string) {
	b.rdb.Del(ctx, rediskey.NotifyFailCount(mid, URLHash(url)))
}
