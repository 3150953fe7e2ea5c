package dto

// CreateOrderReq 商户下单请求
type CreateOrderReq struct {
	MerchantNo  string `json:"merchant_key" binding:"required"`
	MOrderNo    string `json:"merchant_order_no" binding:"required,max=64"`
	Amount      string `json:"order_amount" binding:"required"` // 元为单位的小数字符串
	ProductCode string `json:"product_code" binding:"required"`
	NotifyURL   string `json:"notify_url" binding:"required,url"`
	TerminalIP  string `json:"terminal_ip" binding:"required"`
	Sign        string `json:"sign"`
	Timestamp   string `json:"timestamp"`  // 毫秒时间戳，可选
	ReturnURL   string `json:"return_url"` // 可选
	ExtraData   string `json:"extra_data"` // 可选，原样回传
	Debug       bool   `json:"debug"`      // 非生产环境跳过验签
}

// CreateOrderResp 下单响应
type CreateOrderResp struct {
	OrderNo  string `json:"order_no"`
	MOrderNo string `json:"merchant_order_no"`
	Amount   string `json:"order_amount"`
	PayURL   string `json:"pay_url"`
	TraceID  string `json:"trace_id,omitempty"`
}

// QueryOrderReq 订单查询请求
type QueryOrderReq struct {
	MerchantNo string `form:"merchant_key" binding:"required"`
	Sign       string `form:"sign"`
	Timestamp  string `form:"timestamp"`
}

// QueryOrderResp 订单查询响应
type QueryOrderResp struct {
	OrderNo    string `json:"order_no"`
	MOrderNo   string `json:"merchant_order_no"`
	Amount     string `json:"order_amount"`
	Status     int8   `json:"status"`
	StatusText string `json:"status_text"`
	PaidTime   string `json:"paid_time,omitempty"`
	UpTxnID    string `json:"transaction_id,omitempty"`
}
