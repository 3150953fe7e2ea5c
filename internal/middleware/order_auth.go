package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"fpa-order-api/internal/config"
	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dao"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/logger"
	"fpa-order-api/internal/utils"
)

// 中间件通过 context 传给 handler 的键
const (
	CtxOrderRequest = "order_request"
	CtxQueryRequest = "query_request"
	CtxMerchant     = "merchant"
)

// OrderCreateAuth 下单请求鉴权：参数绑定 → 时间戳窗口 → 商户状态 → 验签。
// 通过后把解析好的请求和商户放进 context。
func OrderCreateAuth(main *dao.MainDao) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || !strings.HasPrefix(c.ContentType(), "application/json") {
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
			c.Abort()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInternalError))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		var req dto.CreateOrderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			var ve validator.ValidationErrors
			if errors.As(err, &ve) {
				errFields := make([]map[string]string, 0, len(ve))
				for _, fe := range ve {
					errFields = append(errFields, map[string]string{
						"field": fe.Field(),
						"error": utils.ValidationMsg(fe),
					})
				}
				c.JSON(http.StatusBadRequest, gin.H{
					"code":   constant.CodeInvalidParams,
					"msg":    "参数校验失败",
					"errors": errFields,
				})
				c.Abort()
				return
			}
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeInvalidParams))
			c.Abort()
			return
		}

		// 格式前置校验必须先于验签：畸形金额/订单号/IP 按各自的错误码拒绝，
		// 不落进签名错误里
		if ferr := checkCreateFormat(req); ferr != nil {
			c.JSON(http.StatusBadRequest, utils.Error(ferr.Code()))
			c.Abort()
			return
		}

		if !timestampOK(req.Timestamp) {
			logger.Order.Warnf("[Auth] stale timestamp %q from %s", req.Timestamp, c.ClientIP())
			c.JSON(http.StatusForbidden, utils.Error(constant.CodeTimestampExpired))
			c.Abort()
			return
		}

		merchant, err := main.GetMerchantByNo(req.MerchantNo)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeMerchantNotFound))
			c.Abort()
			return
		}
		if !merchant.Usable() {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeMerchantDisabled))
			c.Abort()
			return
		}

		// debug 模式仅在非生产环境放行免签
		if !(req.Debug && config.C.Server.Mode != "release") {
			params := map[string]string{
				"merchant_key":      req.MerchantNo,
				"merchant_order_no": req.MOrderNo,
				"order_amount":      req.Amount,
				"product_code":      req.ProductCode,
				"notify_url":        req.NotifyURL,
				"terminal_ip":       req.TerminalIP,
				"timestamp":         req.Timestamp,
				"return_url":        req.ReturnURL,
				"extra_data":        req.ExtraData,
				"sign":              req.Sign,
			}
			if !utils.VerifySign(params, merchant.ApiSecret) {
				logger.Order.Warnf("[Auth] bad signature: merchant=%s m_order_no=%s", req.MerchantNo, req.MOrderNo)
				c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeSignatureError))
				c.Abort()
				return
			}
		}

		c.Set(CtxOrderRequest, req)
		c.Set(CtxMerchant, merchant)
		c.Next()
	}
}

// OrderQueryAuth 查询请求鉴权：query 参数 + 路径里的商户订单号一起参与验签
func OrderQueryAuth(main *dao.MainDao) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.QueryOrderReq
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, utils.Error(constant.CodeMissingParams))
			c.Abort()
			return
		}
		if !timestampOK(req.Timestamp) {
			c.JSON(http.StatusForbidden, utils.Error(constant.CodeTimestampExpired))
			c.Abort()
			return
		}

		merchant, err := main.GetMerchantByNo(req.MerchantNo)
		if err != nil {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeMerchantNotFound))
			c.Abort()
			return
		}
		if !merchant.Usable() {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeMerchantDisabled))
			c.Abort()
			return
		}

		params := map[string]string{
			"merchant_key":      req.MerchantNo,
			"merchant_order_no": c.Param("orderNo"),
			"timestamp":         req.Timestamp,
			"sign":              req.Sign,
		}
		if !utils.VerifySign(params, merchant.ApiSecret) {
			c.JSON(http.StatusUnauthorized, utils.Error(constant.CodeSignatureError))
			c.Abort()
			return
		}

		c.Set(CtxQueryRequest, req)
		c.Set(CtxMerchant, merchant)
		c.Next()
	}
}

// checkCreateFormat 下单字段格式校验：商户订单号、金额、终端IP
func checkCreateFormat(req dto.CreateOrderReq) constant.Error {
	if !utils.ValidMerchantOrderNo(req.MOrderNo) {
		return constant.NewErrorf(constant.CodeParamsFormatError, "merchant_order_no %q", req.MOrderNo)
	}
	if _, err := utils.ParseAmount(req.Amount); err != nil {
		if ce, ok := err.(constant.Error); ok {
			return ce
		}
		return constant.NewError(constant.CodeOrderAmountInvalid)
	}
	if !utils.ValidIP(req.TerminalIP) {
		return constant.NewErrorf(constant.CodeParamsFormatError, "terminal_ip %q", req.TerminalIP)
	}
	return nil
}

// timestampOK 时间戳为空跳过校验（兼容旧接入方），给了就必须在窗口内
func timestampOK(ts string) bool {
	if ts == "" {
		return true
	}
	t, err := utils.ParseTimestamp(ts)
	if err != nil {
		return false
	}
	window := time.Duration(config.C.Order.TimestampWindowS) * time.Second
	return utils.IsTimestampValid(t, window)
}
