package dao

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"fpa-order-api/internal/constant"
	ordermodel "fpa-order-api/internal/model/order"
)

// OrderDao 订单库读写
type OrderDao struct {
	db *gorm.DB
}

func NewOrderDao(db *gorm.DB) *OrderDao {
	return &OrderDao{db: db}
}

// Insert 新建订单。(m_id, m_order_no) 唯一键冲突归一化为订单已存在错误，
// 幂等兜底在这里，不在缓存层。
func (r *OrderDao) Insert(o *ordermodel.Order) error {
	if err := r.db.Create(o).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return constant.NewError(constant.CodeOrderAlreadyExist)
		}
		return err
	}
	return nil
}

func (r *OrderDao) GetByOrderNo(orderNo uint64) (*ordermodel.Order, error) {
	var o ordermodel.Order
	if err := r.db.Where("order_no = ?", orderNo).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeOrderNotFound)
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderDao) GetByMerchantOrderNo(mid uint64, mOrderNo string) (*ordermodel.Order, error) {
	var o ordermodel.Order
	if err := r.db.Where("m_id = ? AND m_order_no = ?", mid, mOrderNo).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.NewError(constant.CodeOrderNotFound)
		}
		return nil, err
	}
	return &o, nil
}

// TransitionStatus 条件状态迁移：WHERE 带上前置状态集合，保证不覆盖并发写入的终态。
// 返回是否真正更新了行。
func (r *OrderDao) TransitionStatus(orderNo uint64, from []int8, updates map[string]interface{}) (bool, error) {
	res := r.db.Model(&ordermodel.Order{}).
		Where("order_no = ? AND status IN ?", orderNo, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkPaying 通道受理后 PENDING → PAYING，记录胜出通道
func (r *OrderDao) MarkPaying(orderNo uint64, channelID, supplierID uint64, upTxnID string) (bool, error) {
	return r.TransitionStatus(orderNo, []int8{ordermodel.StatusPending}, map[string]interface{}{
		"status":      ordermodel.StatusPaying,
		"channel_id":  channelID,
		"supplier_id": supplierID,
		"up_txn_id":   upTxnID,
	})
}

// MarkPaid 回调成功 PENDING/PAYING → SUCCESS，paid_time 仅在此处写入。
// supplier_id 一并写入，补上 MarkPaying 写失败时留下的空值。
func (r *OrderDao) MarkPaid(orderNo, supplierID uint64, paidAt time.Time, upTxnID, upRaw string) (bool, error) {
	return r.TransitionStatus(orderNo, []int8{ordermodel.StatusPending, ordermodel.StatusPaying}, map[string]interface{}{
		"status":        ordermodel.StatusSuccess,
		"paid_time":     paidAt,
		"supplier_id":   supplierID,
		"up_txn_id":     upTxnID,
		"up_raw":        upRaw,
		"notify_status": ordermodel.NotifyPending,
	})
}

// MarkFailed PENDING/PAYING → FAILED
func (r *OrderDao) MarkFailed(orderNo uint64, upRaw string) (bool, error) {
	return r.TransitionStatus(orderNo, []int8{ordermodel.StatusPending, ordermodel.StatusPaying}, map[string]interface{}{
		"status": ordermodel.StatusFailed,
		"up_raw": upRaw,
	})
}

// ListExpired 超时未支付订单号（扫描用）
func (r *OrderDao) ListExpired(before time.Time, limit int) ([]uint64, error) {
	var nos []uint64
	err := r.db.Model(&ordermodel.Order{}).
		Where("status IN ? AND paid_time IS NULL AND create_time < ?",
			[]int8{ordermodel.StatusPending, ordermodel.StatusPaying}, before).
		Limit(limit).
		Pluck("order_no", &nos).Error
	return nos, err
}

// CloseOrders 按订单号批量关单，只关 ListExpired 列出过的单，保证日志与实际关单一致。
// UPDATE 自带状态守卫，与并发回调之间以行锁定序：回调先到则本次更新不命中该行，
// 订单保持 SUCCESS。
func (r *OrderDao) CloseOrders(nos []uint64) (int64, error) {
	if len(nos) == 0 {
		return 0, nil
	}
	res := r.db.Model(&ordermodel.Order{}).
		Where("order_no IN ? AND status IN ? AND paid_time IS NULL",
			nos, []int8{ordermodel.StatusPending, ordermodel.StatusPaying}).
		Update("status", ordermodel.StatusClosed)
	return res.RowsAffected, res.Error
}

// UpdateNotifyState 通知结果回写
func (r *OrderDao) UpdateNotifyState(orderNo uint64, status int8, count int) error {
	return r.db.Model(&ordermodel.Order{}).
		Where("order_no = ?", orderNo).
		Updates(map[string]interface{}{
			"notify_status": status,
			"notify_count":  count,
		}).Error
}
