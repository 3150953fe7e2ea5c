package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"fpa-order-api/internal/config"
	rediskey "fpa-order-api/internal/types/redis-key"
)

// Alerter 运营报警。限频靠 redis SETNX，同一事件在窗口内只发一次；
// 报警永远不阻塞请求路径。
type Alerter struct {
	rdb *redis.Client
}

func NewAlerter(rdb *redis.Client) *Alerter {
	return &Alerter{rdb: rdb}
}

// Fire 发送报警；window>0 时按 kind+key 限频
func (a *Alerter) Fire(kind, key, title string, lines map[string]string, window time.Duration) {
	if window > 0 && a.rdb != nil {
		ok, err := a.rdb.SetNX(context.Background(), rediskey.AlertOnce(kind, key), 1, window).Result()
		if err == nil && !ok {
			return // 窗口内已报过
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*\n", escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))
	for k, v := range lines {
		if v != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(k), escapeMarkdown(v)))
		}
	}

	SendAsync(config.C.Telegram.ChatID, sb.String())
}

// escapeMarkdown 转义 Telegram Markdown 特殊字符
func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
