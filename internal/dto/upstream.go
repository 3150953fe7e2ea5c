package dto

// PaymentRequest 上游下单请求（适配器入参）
type PaymentRequest struct {
	OrderNo     uint64
	Amount      int64 // 分
	ProductCode string
	NotifyURL   string
	ReturnURL   string
	ClientIP    string
}

// PaymentResult 上游下单结果
type PaymentResult struct {
	PayURL  string // 收银台/支付链接
	UpTxnID string // 上游受理流水号（可空）
	Raw     string
}
