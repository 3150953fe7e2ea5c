package dao

import (
	"errors"

	"gorm.io/gorm"

	"fpa-order-api/internal/constant"
	mainmodel "fpa-order-api/internal/model/main"
)

// MainDao 主库读取：商户/供应商/产品/通道池
type MainDao struct {
	db *gorm.DB
}

func NewMainDao(db *gorm.DB) *MainDao {
	return &MainDao{db: db}
}

func (r *MainDao) GetMerchantByNo(merchantNo string) (*mainmodel.Merchant, error) {
	var m mainmodel.Merchant
	if err := r.db.Where("merchant_no = ?", merchantNo).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeMerchantNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MainDao) GetMerchantByID(mid uint64) (*mainmodel.Merchant, error) {
	var m mainmodel.Merchant
	if err := r.db.Where("merchant_id = ?", mid).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeMerchantNotFound)
		}
		return nil, err
	}
	return &m, nil
}

func (r *MainDao) GetSupplierByName(name string) (*mainmodel.Supplier, error) {
	var s mainmodel.Supplier
	if err := r.db.Where("name = ?", name).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeSupplierNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *MainDao) GetSupplierByID(id uint64) (*mainmodel.Supplier, error) {
	var s mainmodel.Supplier
	if err := r.db.Where("supplier_id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeSupplierNotFound)
		}
		return nil, err
	}
	return &s, nil
}

func (r *MainDao) GetProductByCode(code string) (*mainmodel.Product, error) {
	var p mainmodel.Product
	if err := r.db.Where("code = ? AND status = 1", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeChannelNotFound)
		}
		return nil, err
	}
	return &p, nil
}

// GetPoolChannels 产品通道池：只取启用的分配记录，通道自身状态由选择器再过滤
func (r *MainDao) GetPoolChannels(productID uint64) ([]mainmodel.Channel, error) {
	var chs []mainmodel.Channel
	err := r.db.Table("p_channel AS c").
		Select("c.*").
		Joins("JOIN p_product_channel AS pc ON pc.channel_id = c.channel_id").
		Where("pc.product_id = ?", productID).
		Where("pc.status = ?", 1).
		Find(&chs).Error
	if err != nil {
		return nil, err
	}
	return chs, nil
}
