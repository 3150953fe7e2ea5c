package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Cache error"},
	CodeInternalError:      {"内部服务错误", "Internal error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Request timeout"},
	CodeLockConflict:       {"订单正在处理中", "Order is being processed"},

	// 参数错误
	CodeInvalidParams:     {"参数格式错误", "Invalid parameters"},
	CodeMissingParams:     {"缺少必要参数", "Missing required parameters"},
	CodeParamsFormatError: {"参数格式错误", "Parameter format error"},
	CodeParamsRangeError:  {"参数范围错误", "Parameter out of range"},
	CodeTimestampExpired:  {"请求时间戳已过期", "Request timestamp expired"},

	// 认证授权
	CodeUnauthorized:     {"未授权访问", "Unauthorized"},
	CodeSignatureError:   {"签名验证失败", "Signature verification failed"},
	CodeIPNotWhitelisted: {"IP不在白名单内", "IP not whitelisted"},
	CodeMerchantDisabled: {"商户账号已被禁用", "Merchant disabled"},

	// 商户相关
	CodeMerchantNotFound:   {"商户不存在", "Merchant not found"},
	CodeMerchantKeyInvalid: {"商户密钥无效", "Merchant key invalid"},

	// 订单相关
	CodeOrderNotFound:      {"订单不存在", "Order not found"},
	CodeOrderAlreadyExist:  {"订单已存在", "Order already exists"},
	CodeOrderStatusInvalid: {"订单状态无效", "Order status invalid"},
	CodeOrderAmountInvalid: {"订单金额无效", "Order amount invalid"},
	CodeOrderClosed:        {"订单已关闭", "Order closed"},

	// 通道相关
	CodeChannelNotFound:    {"支付通道不存在", "Channel not found"},
	CodeChannelDisabled:    {"支付通道已禁用", "Channel disabled"},
	CodeChannelPoolEmpty:   {"无可用支付通道", "No available channel"},
	CodeChannelExhausted:   {"通道池全部失败", "All channels exhausted"},
	CodeChannelAmountRange: {"交易金额超出通道限额", "Amount out of channel range"},

	// 供应商相关
	CodeSupplierNotFound: {"供应商不存在", "Supplier not found"},
	CodeSupplierDisabled: {"供应商已禁用", "Supplier disabled"},

	// 通知相关
	CodeNotifyFailed:  {"通知发送失败", "Notify failed"},
	CodeNotifyTimeout: {"通知超时", "Notify timeout"},
	CodeNotifyRepeat:  {"重复通知", "Duplicate notify"},

	// 上游相关
	CodeUpstreamError:           {"上游通道错误", "Upstream channel error"},
	CodeUpstreamTimeout:         {"上游通道请求超时", "Upstream timeout"},
	CodeUpstreamRejected:        {"上游通道拒绝交易", "Upstream rejected"},
	CodeUpstreamNetworkError:    {"上游通道网络异常", "Upstream network error"},
	CodeUpstreamDataFormatError: {"上游回调数据格式错误", "Upstream data format error"},
	CodeUpstreamCircuitOpen:     {"上游通道熔断中", "Upstream circuit open"},
}
