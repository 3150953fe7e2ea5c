package mainmodel

// Supplier 上游供应商表
type Supplier struct {
	SupplierID  uint64 `gorm:"column:supplier_id;primaryKey" json:"supplierId"`
	Name        string `gorm:"column:name;type:varchar(32);uniqueIndex" json:"name"` // 回调路由名
	Code        string `gorm:"column:code;type:varchar(32)" json:"code"`             // 适配器编码
	Title       string `gorm:"column:title;type:varchar(64)" json:"title"`
	Status      int8   `gorm:"column:status;type:tinyint(1)" json:"status"`
	ApiURL      string `gorm:"column:api_url;type:varchar(255)" json:"apiUrl"`
	Account     string `gorm:"column:account;type:varchar(64)" json:"account"` // 上游商户号
	ApiKey      string `gorm:"column:api_key;type:varchar(64)" json:"-"`
	IPWhitelist string `gorm:"column:ip_whitelist;type:varchar(512)" json:"ipWhitelist"` // 逗号分隔：IP/CIDR/通配符
}

func (Supplier) TableName() string { return "p_supplier" }
