package constant

// 业务级错误码 (2xxx)

// 商户相关错误码
const (
	CodeMerchantNotFound   = 2000 // 商户不存在，请检查商户编号是否正确
	CodeMerchantKeyInvalid = 2004 // 商户密钥无效，请重新生成API密钥
)

// 订单相关错误码
const (
	CodeOrderNotFound      = 2100 // 订单不存在，请检查订单号是否正确
	CodeOrderAlreadyExist  = 2101 // 订单已存在，请勿重复创建订单
	CodeOrderStatusInvalid = 2102 // 订单状态无效，无法进行当前操作
	CodeOrderAmountInvalid = 2103 // 订单金额无效，请检查金额格式和范围
	CodeOrderClosed        = 2107 // 订单已关闭，无法进行任何操作
)

// 支付通道相关错误码
const (
	CodeChannelNotFound    = 2200 // 支付通道不存在，请检查产品编码是否正确
	CodeChannelDisabled    = 2201 // 支付通道已禁用，暂时无法使用该通道
	CodeChannelPoolEmpty   = 2202 // 无可用支付通道，产品通道池为空或金额不符
	CodeChannelExhausted   = 2206 // 通道池全部失败，订单已置为失败
	CodeChannelAmountRange = 2207 // 交易金额超出通道限额范围
)

// 供应商相关错误码
const (
	CodeSupplierNotFound = 2300 // 供应商不存在
	CodeSupplierDisabled = 2301 // 供应商已禁用
)

// 通知相关错误码
const (
	CodeNotifyFailed  = 2700 // 通知发送失败
	CodeNotifyTimeout = 2701 // 通知超时
	CodeNotifyRepeat  = 2704 // 重复通知，已处理过该通知
)
