package dto

// NotifyJob 通知任务（MQ/重试队列成员）
type NotifyJob struct {
	OrderNo uint64 `json:"order_no"`
	Attempt int    `json:"attempt"`
}

// MerchantNotifyPayload 商户异步通知报文
type MerchantNotifyPayload struct {
	OrderNo    string `json:"order_no"`
	MOrderNo   string `json:"merchant_order_no"`
	MerchantNo string `json:"merchant_key"`
	Amount     string `json:"order_amount"` // 固定两位小数
	Status     string `json:"status"`
	StatusText string `json:"status_text"`
	PaidTime   string `json:"paid_time"`
	ExtraData  string `json:"extra_data,omitempty"`
	Sign       string `json:"sign"`
}
