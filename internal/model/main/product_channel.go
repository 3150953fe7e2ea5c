package mainmodel

// ProductChannel 产品-通道分配（多对多，带启用标记）
// 未启用的分配记录等同于该通道对产品不可见
type ProductChannel struct {
	ID        uint64 `gorm:"column:id;primaryKey" json:"id"`
	ProductID uint64 `gorm:"column:product_id;not null;index:idx_product_channel" json:"productId"`
	ChannelID uint64 `gorm:"column:channel_id;not null;index:idx_product_channel" json:"channelId"`
	Status    int8   `gorm:"column:status;type:tinyint(1)" json:"status"`
}

func (ProductChannel) TableName() string { return "p_product_channel" }
