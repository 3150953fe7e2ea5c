package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fpa-order-api/internal/logger"
	"fpa-order-api/internal/service"
	"fpa-order-api/internal/utils"
)

type CallbackHandler struct {
	svc *service.CallbackService
}

func NewCallbackHandler(svc *service.CallbackService) *CallbackHandler {
	return &CallbackHandler{svc: svc}
}

// Handle POST|GET /api/v1/pay/notify/:supplier。
// 处理成功时按适配器要求的形态原样应答，否则返回非成功让上游重发。
func (h *CallbackHandler) Handle(c *gin.Context) {
	supplierName := c.Param("supplier")

	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	}
	clientIP := utils.GetRealClientIP(c)

	ack, err := h.svc.Handle(c.Request.Context(), supplierName, clientIP, body, c.Request.URL.Query())
	if err != nil {
		logger.Callback.Warnf("[Callback] supplier=%s ip=%s err=%v", supplierName, clientIP, err)
		c.String(http.StatusBadRequest, "fail")
		return
	}
	c.Data(http.StatusOK, ack.ContentType, []byte(ack.Body))
}
