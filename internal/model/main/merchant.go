package mainmodel

// Merchant 商户表
type Merchant struct {
	MerchantID uint64 `gorm:"column:merchant_id;primaryKey" json:"merchantId"`
	MerchantNo string `gorm:"column:merchant_no;type:varchar(32);uniqueIndex" json:"merchantNo"` // 对外商户编号
	Name       string `gorm:"column:name;type:varchar(64)" json:"name"`
	Status     int8   `gorm:"column:status;type:tinyint(1)" json:"status"` // 1:启用 0:禁用
	Deleted    int8   `gorm:"column:deleted;type:tinyint(1)" json:"deleted"`
	ApiSecret  string `gorm:"column:api_secret;type:varchar(64)" json:"-"` // 签名密钥
	TgChatID   string `gorm:"column:tg_chat_id;type:varchar(32)" json:"tgChatId"`
}

func (Merchant) TableName() string { return "p_merchant" }

func (m *Merchant) Usable() bool {
	return m != nil && m.Status == 1 && m.Deleted == 0
}
