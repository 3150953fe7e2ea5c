package middleware

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fpa-order-api/internal/logger"
)

const CtxRequestID = "request_id"

// 审计快照上限，与回调入口的请求体上限一致
const auditBodyLimit = 1 << 20

// snapshotBody 截取请求体审计快照并还原 Body；超限部分不进快照，原样透传给 handler
func snapshotBody(req *http.Request) []byte {
	if req.Body == nil {
		return nil
	}
	rest := req.Body
	snap, _ := io.ReadAll(io.LimitReader(rest, auditBodyLimit))
	req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(snap), rest))
	return snap
}

// RequestAudit 给每个请求分配 request id 并审计请求体。
// id 写回 X-Request-ID 响应头，排障时商户报这个号即可定位日志。
func RequestAudit() gin.HandlerFunc {
	auditLog := logger.NewLogger("audit")

	return func(c *gin.Context) {
		reqID := newRequestID()
		body := snapshotBody(c.Request)

		c.Set(CtxRequestID, reqID)
		c.Writer.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		c.Next()

		auditLog.WithFields(map[string]interface{}{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"body":       string(body),
		}).Info("audit")
	}
}

func newRequestID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
