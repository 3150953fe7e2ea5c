package dao

import (
	"gorm.io/gorm"

	ordermodel "fpa-order-api/internal/model/order"
)

// TraceDao 链路日志追加写
type TraceDao struct {
	db *gorm.DB
}

func NewTraceDao(db *gorm.DB) *TraceDao {
	return &TraceDao{db: db}
}

func (r *TraceDao) Append(step *ordermodel.TraceStep) error {
	return r.db.Create(step).Error
}
