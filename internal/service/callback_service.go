package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dao"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/lock"
	ordermodel "fpa-order-api/internal/model/order"
	"fpa-order-api/internal/mq"
	"fpa-order-api/internal/trace"
	rediskey "fpa-order-api/internal/types/redis-key"
	"fpa-order-api/internal/upstream"
	"fpa-order-api/internal/utils"
)

const callbackLockTTL = 30 * time.Second

// CallbackService 供应商回调处理：白名单 → 解析 → 订单锁 → 状态迁移 → 触发通知。
// 应答成功形态由对应适配器决定，这里只负责决定"该不该应答成功"。
type CallbackService struct {
	main     *dao.MainDao
	orders   *dao.OrderDao
	registry *upstream.Registry
	locker   *lock.Locker
	tracer   *trace.Recorder
	log      *logrus.Logger
}

func NewCallbackService(
	main *dao.MainDao,
	orders *dao.OrderDao,
	registry *upstream.Registry,
	locker *lock.Locker,
	tracer *trace.Recorder,
	log *logrus.Logger,
) *CallbackService {
	return &CallbackService{
		main: main, orders: orders, registry: registry,
		locker: locker, tracer: tracer, log: log,
	}
}

// Handle 处理一次回调。返回的 Ack 仅在 err == nil 时有效；
// err 非空时 handler 返回非成功应答，上游会按自己的策略重发。
func (s *CallbackService) Handle(ctx context.Context, supplierName, clientIP string, body []byte, query url.Values) (dto.Ack, error) {
	var ack dto.Ack
	started := time.Now()

	supplier, err := s.main.GetSupplierByName(supplierName)
	if err != nil {
		return ack, err
	}
	if supplier.Status != 1 {
		return ack, constant.NewError(constant.CodeSupplierDisabled)
	}
	if !ipAllowed(clientIP, supplier.IPWhitelist) {
		s.log.Warnf("[Callback] ip %s rejected for supplier %s", clientIP, supplierName)
		return ack, constant.NewErrorf(constant.CodeIPNotWhitelisted, "ip %s", clientIP)
	}

	adapter, err := s.registry.Get(supplier.Code)
	if err != nil {
		return ack, err
	}
	result, err := adapter.ParseCallback(body, query)
	if err != nil {
		s.log.Warnf("[Callback] parse failed for supplier %s: %v", supplierName, err)
		return ack, err
	}

	// 订单级互斥：拿不到锁说明同一单的另一个回调正在处理，
	// 本次按重复回调幂等应答，不再推进状态
	lockKey := rediskey.OrderLock(result.OrderNo)
	token, ok := s.locker.Acquire(ctx, lockKey, callbackLockTTL)
	if !ok {
		s.log.Infof("[Callback] order %d locked by another worker, ack as duplicate", result.OrderNo)
		return adapter.SuccessAck(), nil
	}
	defer s.locker.Release(ctx, lockKey, token)

	order, err := s.orders.GetByOrderNo(result.OrderNo)
	if err != nil {
		return ack, err
	}
	if !supplierMatches(order.SupplierID, supplier.SupplierID) {
		s.log.Warnf("[Callback] supplier mismatch: order=%d expect=%d got=%d",
			order.OrderNo, order.SupplierID, supplier.SupplierID)
		return ack, constant.NewError(constant.CodeOrderStatusInvalid)
	}

	s.tracer.Record(order.TraceID, order.OrderNo, order.MID,
		ordermodel.StepCallbackRecv, ordermodel.StepStatusPending,
		map[string]interface{}{"supplier": supplierName, "paid": result.Paid, "amount": result.Amount}, started)

	// 重复成功回调：幂等应答，不再迁移状态
	if order.Status == ordermodel.StatusSuccess {
		return adapter.SuccessAck(), nil
	}
	if ordermodel.IsTerminal(order.Status) {
		// 已失败/已关闭订单的迟到回调，不应答成功，留给对账
		s.log.Warnf("[Callback] late callback on terminal order %d status=%d", order.OrderNo, order.Status)
		return ack, constant.NewError(constant.CodeOrderClosed)
	}

	if result.Amount != order.Amount {
		s.log.Errorf("[Callback] amount mismatch: order=%d expect=%d got=%d", order.OrderNo, order.Amount, result.Amount)
		return ack, constant.NewError(constant.CodeOrderAmountInvalid)
	}

	if !result.Paid {
		if _, err := s.orders.MarkFailed(order.OrderNo, result.Raw); err != nil {
			return ack, err
		}
		s.tracer.Record(order.TraceID, order.OrderNo, order.MID,
			ordermodel.StepCallbackFail, ordermodel.StepStatusFailed,
			map[string]interface{}{"up_txn_id": result.UpTxnID}, started)
		return adapter.SuccessAck(), nil
	}

	updated, err := s.orders.MarkPaid(order.OrderNo, supplier.SupplierID, time.Now(), result.UpTxnID, result.Raw)
	if err != nil {
		return ack, err
	}
	if !updated {
		// 状态守卫没命中：锁窗口之外的并发迁移抢先了，按当前状态重新裁决
		cur, err := s.orders.GetByOrderNo(order.OrderNo)
		if err != nil {
			return ack, err
		}
		if cur.Status == ordermodel.StatusSuccess {
			return adapter.SuccessAck(), nil
		}
		return ack, constant.NewError(constant.CodeOrderStatusInvalid)
	}

	s.tracer.Record(order.TraceID, order.OrderNo, order.MID,
		ordermodel.StepCallbackOK, ordermodel.StepStatusSuccess,
		map[string]interface{}{"up_txn_id": result.UpTxnID}, started)
	s.log.Infof("[Callback] order %d paid, up_txn_id=%s", order.OrderNo, result.UpTxnID)

	if err := mq.PublishNotifyJob(order.OrderNo); err != nil {
		// 通知发不出去不影响回调应答，靠查询接口和人工补发兜底
		s.log.Errorf("[Callback] publish notify job for order %d failed: %v", order.OrderNo, err)
	}
	return adapter.SuccessAck(), nil
}

// supplierMatches 订单上记录的供应商与回调方是否一致。
// MarkPaying 写失败时 supplier_id 为空（订单停在 PENDING），此时放行，
// supplier_id 由 MarkPaid 回填。
func supplierMatches(orderSupplierID, callbackSupplierID uint64) bool {
	return orderSupplierID == 0 || orderSupplierID == callbackSupplierID
}

// ipAllowed 白名单为空不限制；规则支持单IP/CIDR/前缀通配符，逗号分隔
func ipAllowed(ip, whitelist string) bool {
	rules := strings.Split(whitelist, ",")
	hasRule := false
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		hasRule = true
		if utils.MatchIPRule(ip, rule) {
			return true
		}
	}
	return !hasRule
}
