package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Redis 分布式锁所需最小方法集
type Redis interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// 比对持有者令牌再删除，避免释放他人的锁
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// Locker 基于 SETNX+TTL 的互斥锁。TTL 到期即可被下一个获取者接管，
// 持有者崩溃不会卡死系统。
type Locker struct {
	rdb Redis
	log *logrus.Logger
}

func New(rdb Redis, log *logrus.Logger) *Locker {
	return &Locker{rdb: rdb, log: log}
}

// Acquire 尝试加锁，成功返回持有者令牌。redis 不可达按获取失败处理。
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool) {
	token := newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		if l.log != nil {
			l.log.Warnf("[Lock] acquire %s failed: %v", key, err)
		}
		return "", false
	}
	if !ok {
		return "", false
	}
	return token, true
}

// Release 释放锁；令牌不匹配（已被TTL接管）时为空操作
func (l *Locker) Release(ctx context.Context, key, token string) {
	if token == "" {
		return
	}
	if err := l.rdb.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && l.log != nil {
		l.log.Warnf("[Lock] release %s failed: %v", key, err)
	}
}

func newToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
