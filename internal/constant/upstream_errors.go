package constant

// 上游供应商错误码 (3xxx)

const (
	CodeUpstreamError           = 3000 // 上游通道通用错误
	CodeUpstreamTimeout         = 3001 // 上游通道请求超时
	CodeUpstreamRejected        = 3002 // 上游通道拒绝交易
	CodeUpstreamNetworkError    = 3005 // 上游通道网络异常
	CodeUpstreamDataFormatError = 3006 // 上游回调数据格式错误
	CodeUpstreamCircuitOpen     = 3007 // 上游通道熔断中，跳过本次调用
)
