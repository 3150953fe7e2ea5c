package mainmodel

// Product 支付产品
type Product struct {
	ProductID uint64 `gorm:"column:product_id;primaryKey" json:"productId"`
	Code      string `gorm:"column:code;type:varchar(32);uniqueIndex" json:"code"`
	Title     string `gorm:"column:title;type:varchar(64)" json:"title"`
	Status    int8   `gorm:"column:status;type:tinyint(1)" json:"status"`
}

func (Product) TableName() string { return "p_product" }
