package ordermodel

import "time"

// 订单状态机：PENDING→PAYING→{SUCCESS,FAILED}；{PENDING,PAYING}→CLOSED（超时）；
// SUCCESS→REFUNDED（后台操作）。终态之间不允许再迁移。
const (
	StatusPending  int8 = 1
	StatusPaying   int8 = 2
	StatusSuccess  int8 = 3
	StatusFailed   int8 = 4
	StatusRefunded int8 = 5
	StatusClosed   int8 = 6
)

// 通知状态
const (
	NotifyPending int8 = 0
	NotifySuccess int8 = 1
	NotifyFailed  int8 = 2
)

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to int8) bool {
	switch from {
	case StatusPending:
		return to == StatusPaying || to == StatusSuccess || to == StatusFailed || to == StatusClosed
	case StatusPaying:
		return to == StatusSuccess || to == StatusFailed || to == StatusClosed
	case StatusSuccess:
		return to == StatusRefunded
	default:
		// FAILED / REFUNDED / CLOSED 均为终态
		return false
	}
}

// IsTerminal 是否终态
func IsTerminal(status int8) bool {
	switch status {
	case StatusSuccess, StatusFailed, StatusRefunded, StatusClosed:
		return true
	}
	return false
}

// StatusText 商户通知用状态文案
func StatusText(status int8) string {
	switch status {
	case StatusPending:
		return "PENDING"
	case StatusPaying:
		return "PAYING"
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailed:
		return "FAILED"
	case StatusRefunded:
		return "REFUNDED"
	case StatusClosed:
		return "CLOSED"
	}
	return "UNKNOWN"
}

// Order 平台订单表
type Order struct {
	OrderNo      uint64     `gorm:"column:order_no;primaryKey" json:"orderNo"`                                                 // 平台订单号（雪花ID）
	MID          uint64     `gorm:"column:m_id;not null;uniqueIndex:uk_merchant_order" json:"mId"`                             // 商户ID
	MOrderNo     string     `gorm:"column:m_order_no;type:varchar(64);not null;uniqueIndex:uk_merchant_order" json:"mOrderNo"` // 商户订单号
	TraceID      string     `gorm:"column:trace_id;type:varchar(64)" json:"traceId"`
	ProductID    uint64     `gorm:"column:product_id;not null" json:"productId"`
	ChannelID    uint64     `gorm:"column:channel_id" json:"channelId"` // 胜出通道
	SupplierID   uint64     `gorm:"column:supplier_id" json:"supplierId"`
	Amount       int64      `gorm:"column:amount;not null" json:"amount"` // 金额（分）
	Status       int8       `gorm:"column:status;type:tinyint(1);not null;index" json:"status"`
	NotifyStatus int8       `gorm:"column:notify_status;type:tinyint(1);not null" json:"notifyStatus"`
	NotifyCount  int        `gorm:"column:notify_count;not null" json:"notifyCount"`
	NotifyURL    string     `gorm:"column:notify_url;type:varchar(255);not null" json:"notifyUrl"`
	ClientIP     string     `gorm:"column:client_ip;type:varchar(45)" json:"clientIp"`
	ExpireTime   time.Time  `gorm:"column:expire_time;not null" json:"expireTime"`
	PaidTime     *time.Time `gorm:"column:paid_time" json:"paidTime"` // 成功时写入，仅一次
	UpTxnID      string     `gorm:"column:up_txn_id;type:varchar(64)" json:"upTxnId"` // 上游交易号
	UpRaw        string     `gorm:"column:up_raw;type:text" json:"upRaw"`             // 上游原始回调
	CreateTime   time.Time  `gorm:"column:create_time;autoCreateTime;index" json:"createTime"`
	UpdateTime   time.Time  `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (Order) TableName() string { return "p_order" }
