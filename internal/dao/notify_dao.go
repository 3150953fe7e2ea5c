package dao

import (
	"errors"

	"gorm.io/gorm"

	ordermodel "fpa-order-api/internal/model/order"
)

// NotifyLogDao 通知日志：一次逻辑投递一行，重试原地更新
type NotifyLogDao struct {
	db *gorm.DB
}

func NewNotifyLogDao(db *gorm.DB) *NotifyLogDao {
	return &NotifyLogDao{db: db}
}

func (r *NotifyLogDao) GetByOrderNo(orderNo uint64) (*ordermodel.NotifyLog, error) {
	var l ordermodel.NotifyLog
	if err := r.db.Where("order_no = ?", orderNo).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *NotifyLogDao) Create(l *ordermodel.NotifyLog) error {
	return r.db.Create(l).Error
}

// UpdateAttempt 重试结果覆盖写回，retry_count 反映总尝试次数
func (r *NotifyLogDao) UpdateAttempt(id uint64, respCode int, respBody string, success int8, retryCount int) error {
	return r.db.Model(&ordermodel.NotifyLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resp_code":   respCode,
			"resp_body":   respBody,
			"success":     success,
			"retry_count": retryCount,
		}).Error
}
