package cacheguard

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Redis 共享层最小方法集，*redis.Client 直接满足，测试用假实现
type Redis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const existsVal = "1"

// Guard 两级缓存：进程内(go-cache) + 共享(redis)。
// 缓存永远不是事实来源：共享层不可达时一律降级为 miss，
// 幂等正确性由订单表 (m_id, m_order_no) 唯一键兜底——这是有意的激进策略。
type Guard struct {
	local  *gocache.Cache
	shared Redis
	sf     singleflight.Group
	log    *logrus.Logger
}

func New(shared Redis, log *logrus.Logger) *Guard {
	return &Guard{
		// 本地层短TTL，写后的本地脏读窗口是接受的代价
		local:  gocache.New(5*time.Second, time.Minute),
		shared: shared,
		log:    log,
	}
}

// Exists 存在性探测：本地 → 共享，共享命中回填本地；任何异常按 miss 处理
func (g *Guard) Exists(ctx context.Context, key string) bool {
	if _, ok := g.local.Get(key); ok {
		return true
	}
	if g.shared == nil {
		return false
	}
	val, err := g.shared.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && g.log != nil {
			g.log.Warnf("[CacheGuard] shared get %s failed: %v", key, err)
		}
		return false
	}
	if val == "" {
		return false
	}
	g.local.Set(key, existsVal, gocache.DefaultExpiration)
	return true
}

// MarkExists 写入存在性标记，共享层必写，本地层顺带
func (g *Guard) MarkExists(ctx context.Context, key string, ttl time.Duration) {
	g.local.Set(key, existsVal, gocache.DefaultExpiration)
	if g.shared == nil {
		return
	}
	if err := g.shared.Set(ctx, key, existsVal, ttl).Err(); err != nil && g.log != nil {
		g.log.Warnf("[CacheGuard] shared set %s failed: %v", key, err)
	}
}

// Forget 删除两级标记；共享层删除失败只记日志（本地层几秒内自行过期）
func (g *Guard) Forget(ctx context.Context, key string) {
	g.local.Delete(key)
	if g.shared == nil {
		return
	}
	if err := g.shared.Del(ctx, key).Err(); err != nil && g.log != nil {
		g.log.Warnf("[CacheGuard] shared del %s failed: %v", key, err)
	}
}

// GetOrLoad 查询缓存：本地 → 共享 → loader，singleflight 合并并发回源
func (g *Guard) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func() (string, error)) (string, error) {
	if v, ok := g.local.Get(key); ok {
		return v.(string), nil
	}
	if g.shared != nil {
		if val, err := g.shared.Get(ctx, key).Result(); err == nil && val != "" {
			g.local.Set(key, val, gocache.DefaultExpiration)
			return val, nil
		}
	}

	v, err, _ := g.sf.Do(key, func() (interface{}, error) {
		val, err := loader()
		if err != nil {
			return "", err
		}
		g.local.Set(key, val, gocache.DefaultExpiration)
		if g.shared != nil {
			if err := g.shared.Set(ctx, key, val, ttl).Err(); err != nil && g.log != nil {
				g.log.Warnf("[CacheGuard] backfill %s failed: %v", key, err)
			}
		}
		return val, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
