package rediskey

import (
	"fmt"

	"fpa-order-api/internal/config"
)

// 统一 redis key 生成，避免各处手拼前缀

func prefix() string { return config.C.Project.Name }

// OrderExists 订单幂等存在性标记
func OrderExists(mid uint64, mOrderNo string) string {
	return fmt.Sprintf("%s:order:exists:%d:%s", prefix(), mid, mOrderNo)
}

// OrderLock 订单级互斥锁
func OrderLock(orderNo uint64) string {
	return fmt.Sprintf("%s:lock:order:%d", prefix(), orderNo)
}

// NotifyLock 通知派发互斥锁
func NotifyLock(orderNo uint64) string {
	return fmt.Sprintf("%s:lock:notify:%d", prefix(), orderNo)
}

// NotifyFailCount 商户通知失败计数（按通知地址哈希隔离）
func NotifyFailCount(mid uint64, urlHash uint32) string {
	return fmt.Sprintf("%s:notify:cb:fail:%d:%d", prefix(), mid, urlHash)
}

// NotifyBreakerOpen 商户通知熔断标记
func NotifyBreakerOpen(mid uint64, urlHash uint32) string {
	return fmt.Sprintf("%s:notify:cb:open:%d:%d", prefix(), mid, urlHash)
}

// NotifyRetryQueue 通知重试队列（ZSET，score=计划执行时间）
func NotifyRetryQueue() string {
	return prefix() + ":notify:queue:retry"
}

// NotifyDelayedQueue 熔断延迟队列（ZSET）
func NotifyDelayedQueue() string {
	return prefix() + ":notify:queue:delayed"
}

// NotifyRT 商户通知响应耗时滚动列表
func NotifyRT(mid uint64) string {
	return fmt.Sprintf("%s:notify:rt:%d", prefix(), mid)
}

// AlertOnce 报警限频标记
func AlertOnce(kind string, key string) string {
	return fmt.Sprintf("%s:alert:%s:%s", prefix(), kind, key)
}

// Lookup 主数据查询缓存（商户/产品/通道池）
func Lookup(kind string, key string) string {
	return fmt.Sprintf("%s:lookup:%s:%s", prefix(), kind, key)
}
