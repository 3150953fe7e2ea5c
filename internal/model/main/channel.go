package mainmodel

// Channel 供应商通道（池成员）
type Channel struct {
	ChannelID  uint64 `gorm:"column:channel_id;primaryKey" json:"channelId"`
	SupplierID uint64 `gorm:"column:supplier_id;not null;index" json:"supplierId"`
	Title      string `gorm:"column:title;type:varchar(64)" json:"title"`
	Weight     int    `gorm:"column:weight;not null" json:"weight"`
	MinAmount  int64  `gorm:"column:min_amount;not null" json:"minAmount"` // 最小金额（分）
	MaxAmount  int64  `gorm:"column:max_amount;not null" json:"maxAmount"` // 最大金额（分）
	Status     int8   `gorm:"column:status;type:tinyint(1)" json:"status"`
	ParamsJSON string `gorm:"column:params_json;type:json" json:"paramsJson"` // 通道连接参数
}

func (Channel) TableName() string { return "p_channel" }

// AmountEligible 金额是否落在通道限额内（闭区间）
func (c *Channel) AmountEligible(amount int64) bool {
	return amount >= c.MinAmount && amount <= c.MaxAmount
}
