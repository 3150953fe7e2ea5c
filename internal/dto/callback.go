package dto

// CallbackResult 供应商回调解析后的归一化结果
type CallbackResult struct {
	OrderNo uint64 // 平台订单号
	UpTxnID string // 上游交易号
	Amount  int64  // 金额（分）
	Paid    bool   // 上游侧是否支付成功
	Raw     string // 原始报文，落库留痕
}

// Ack 供应商回调应答，按供应商要求原样返回
type Ack struct {
	ContentType string
	Body        string
}
