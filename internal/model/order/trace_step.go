package ordermodel

import "time"

// 链路步骤名
const (
	StepCreated         = "created"
	StepValidated       = "validated"
	StepChannelSelected = "channel_selected"
	StepPaymentInit     = "payment_initiated"
	StepCallbackRecv    = "callback_received"
	StepCallbackOK      = "callback_success"
	StepCallbackFail    = "callback_failed"
	StepNotifySent      = "notify_sent"
	StepNotifyOK        = "notify_success"
	StepNotifyFail      = "notify_failed"
	StepClosed          = "closed"
	StepTimeout         = "timeout"
)

// 步骤状态
const (
	StepStatusSuccess = "success"
	StepStatusFailed  = "failed"
	StepStatusPending = "pending"
)

// TraceStep 生命周期链路记录，只追加不更新
type TraceStep struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TraceID    string    `gorm:"column:trace_id;type:varchar(64);index" json:"traceId"`
	OrderNo    uint64    `gorm:"column:order_no;index" json:"orderNo"`
	MID        uint64    `gorm:"column:m_id" json:"mId"`
	Step       string    `gorm:"column:step;type:varchar(32);not null" json:"step"`
	Status     string    `gorm:"column:status;type:varchar(16);not null" json:"status"`
	Payload    string    `gorm:"column:payload;type:text" json:"payload"`
	DurationMs int64     `gorm:"column:duration_ms" json:"durationMs"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
}

func (TraceStep) TableName() string { return "p_trace_step" }
