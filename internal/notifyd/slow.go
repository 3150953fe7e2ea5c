package notifyd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/notify"
	rediskey "fpa-order-api/internal/types/redis-key"
)

// RTRedis 耗时采样所需最小方法集
type RTRedis interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

const (
	rtWindowSize  = 100 // 滚动窗口样本数
	rtMinSamples  = 20  // 样本不足不判慢
	slowAlertOnce = time.Hour
)

// RTTracker 商户通知响应耗时跟踪，窗口均值超阈值触发运营报警
type RTTracker struct {
	rdb       RTRedis
	alerter   *notify.Alerter
	slowAvgMs int64
	log       *logrus.Logger
}

func NewRTTracker(rdb RTRedis, alerter *notify.Alerter, slowAvgMs int, log *logrus.Logger) *RTTracker {
	return &RTTracker{rdb: rdb, alerter: alerter, slowAvgMs: int64(slowAvgMs), log: log}
}

// Observe 记录一次投递耗时并检查窗口均值
func (t *RTTracker) Observe(ctx context.Context, mid uint64, merchantNo string, ms int64) {
	key := rediskey.NotifyRT(mid)
	if err := t.rdb.LPush(ctx, key, ms).Err(); err != nil {
		if t.log != nil {
			t.log.Warnf("[NotifyRT] push failed: %v", err)
		}
		return
	}
	t.rdb.LTrim(ctx, key, 0, rtWindowSize-1)

	samples, err := t.rdb.LRange(ctx, key, 0, rtWindowSize-1).Result()
	if err != nil || len(samples) < rtMinSamples {
		return
	}
	var sum int64
	for _, s := range samples {
		v, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			continue
		}
		sum += v
	}
	avg := sum / int64(len(samples))
	if avg <= t.slowAvgMs {
		return
	}

	if t.log != nil {
		t.log.Warnf("[NotifyRT] merchant %s slow, avg=%dms over %d samples", merchantNo, avg, len(samples))
	}
	if t.alerter != nil {
		t.alerter.Fire("slow_notify", fmt.Sprintf("%d", mid), "商户通知响应过慢", map[string]string{
			"商户":   merchantNo,
			"平均耗时": fmt.Sprintf("%dms", avg),
			"样本数":  strconv.Itoa(len(samples)),
		}, slowAlertOnce)
	}
}
