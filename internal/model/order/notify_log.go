package ordermodel

import "time"

// NotifyLog 商户通知日志：一次逻辑投递一行，重试原地更新
type NotifyLog struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNo    uint64    `gorm:"column:order_no;not null;uniqueIndex" json:"orderNo"`
	MID        uint64    `gorm:"column:m_id;not null" json:"mId"`
	NotifyURL  string    `gorm:"column:notify_url;type:varchar(255);not null" json:"notifyUrl"`
	Payload    string    `gorm:"column:payload;type:text" json:"payload"`
	RespCode   int       `gorm:"column:resp_code" json:"respCode"`
	RespBody   string    `gorm:"column:resp_body;type:text" json:"respBody"`
	Success    int8      `gorm:"column:success;type:tinyint(1)" json:"success"`
	RetryCount int       `gorm:"column:retry_count;not null" json:"retryCount"`
	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`
}

func (NotifyLog) TableName() string { return "p_notify_log" }
