package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/logger"
	mainmodel "fpa-order-api/internal/model/main"
	"fpa-order-api/internal/middleware"
	"fpa-order-api/internal/service"
	"fpa-order-api/internal/utils"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create POST /api/v1/pay/order，请求已由 OrderCreateAuth 校验并放入 context
func (h *OrderHandler) Create(c *gin.Context) {
	req := c.MustGet(middleware.CtxOrderRequest).(dto.CreateOrderReq)
	merchant := c.MustGet(middleware.CtxMerchant).(*mainmodel.Merchant)

	resp, err := h.svc.Create(c.Request.Context(), req, merchant)
	if err != nil {
		writeBizError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Query GET /api/v1/pay/order/:orderNo
func (h *OrderHandler) Query(c *gin.Context) {
	merchant := c.MustGet(middleware.CtxMerchant).(*mainmodel.Merchant)

	resp, err := h.svc.Query(merchant, c.Param("orderNo"))
	if err != nil {
		writeBizError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// writeBizError 业务错误按错误码应答，未归类错误不外泄细节
func writeBizError(c *gin.Context, err error) {
	code := constant.CodeOf(err)
	if code == constant.CodeSystemError {
		logger.Order.Errorf("[Handler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(httpStatusOf(code), utils.Error(code))
}

// httpStatusOf 错误码到 HTTP 状态码：校验/业务错误 4xx，上游和系统错误 5xx
func httpStatusOf(code int) int {
	switch code {
	case constant.CodeSuccess:
		return http.StatusOK
	case constant.CodeOrderNotFound:
		return http.StatusNotFound
	case constant.CodeOrderAlreadyExist, constant.CodeLockConflict:
		return http.StatusConflict
	case constant.CodeUnauthorized, constant.CodeSignatureError,
		constant.CodeMerchantNotFound, constant.CodeMerchantKeyInvalid:
		return http.StatusUnauthorized
	case constant.CodeIPNotWhitelisted, constant.CodeMerchantDisabled, constant.CodeTimestampExpired:
		return http.StatusForbidden
	case constant.CodeChannelExhausted:
		return http.StatusBadGateway
	}
	switch {
	case code >= 1100 && code < 1200: // 参数类
		return http.StatusBadRequest
	case code >= 2000 && code < 3000: // 业务类
		return http.StatusBadRequest
	case code >= 3000 && code < 4000: // 上游类
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
