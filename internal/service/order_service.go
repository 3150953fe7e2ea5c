package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/cacheguard"
	"fpa-order-api/internal/channel"
	"fpa-order-api/internal/config"
	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dao"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/idgen"
	mainmodel "fpa-order-api/internal/model/main"
	ordermodel "fpa-order-api/internal/model/order"
	"fpa-order-api/internal/notify"
	"fpa-order-api/internal/trace"
	rediskey "fpa-order-api/internal/types/redis-key"
	"fpa-order-api/internal/upstream"
	"fpa-order-api/internal/utils"
)

const (
	// 幂等标记保留时长，订单本身的有效期短于它
	existsMarkTTL = time.Hour
	// 产品通道池查询缓存
	poolCacheTTL = time.Minute
)

// OrderService 下单主流程：校验 → 幂等 → 选通道 → 落库 → 顺序故障转移
type OrderService struct {
	main     *dao.MainDao
	orders   *dao.OrderDao
	guard    *cacheguard.Guard
	registry *upstream.Registry
	alerter  *notify.Alerter
	tracer   *trace.Recorder
	log      *logrus.Logger
}

func NewOrderService(
	main *dao.MainDao,
	orders *dao.OrderDao,
	guard *cacheguard.Guard,
	registry *upstream.Registry,
	alerter *notify.Alerter,
	tracer *trace.Recorder,
	log *logrus.Logger,
) *OrderService {
	return &OrderService{
		main: main, orders: orders, guard: guard,
		registry: registry, alerter: alerter, tracer: tracer, log: log,
	}
}

// Create 处理商户下单。merchant 由鉴权中间件加载并验签通过。
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderReq, merchant *mainmodel.Merchant) (dto.CreateOrderResp, error) {
	var resp dto.CreateOrderResp
	started := time.Now()
	traceID := newTraceID()

	if !utils.ValidMerchantOrderNo(req.MOrderNo) {
		return resp, constant.NewErrorf(constant.CodeParamsFormatError, "merchant_order_no %q", req.MOrderNo)
	}
	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		return resp, err
	}
	if !utils.ValidIP(req.TerminalIP) {
		return resp, constant.NewErrorf(constant.CodeParamsFormatError, "terminal_ip %q", req.TerminalIP)
	}

	// 幂等短路：两级缓存命中直接拒绝；缓存 miss 不代表不存在，
	// 唯一键冲突在 Insert 里兜底
	existsKey := rediskey.OrderExists(merchant.MerchantID, req.MOrderNo)
	if s.guard.Exists(ctx, existsKey) {
		return resp, constant.NewError(constant.CodeOrderAlreadyExist)
	}

	productID, pool, err := s.loadPool(ctx, req.ProductCode)
	if err != nil {
		return resp, err
	}
	selected := channel.Select(pool, amount)
	if len(selected) == 0 {
		s.log.Warnf("[Order] no eligible channel: merchant=%s product=%s amount=%d pool=%d",
			merchant.MerchantNo, req.ProductCode, amount, len(pool))
		return resp, constant.NewError(constant.CodeChannelPoolEmpty)
	}

	orderNo := idgen.New()
	now := time.Now()
	order := &ordermodel.Order{
		OrderNo:      orderNo,
		MID:          merchant.MerchantID,
		MOrderNo:     req.MOrderNo,
		TraceID:      traceID,
		ProductID:    productID,
		Amount:       amount,
		Status:       ordermodel.StatusPending,
		NotifyStatus: ordermodel.NotifyPending,
		NotifyURL:    req.NotifyURL,
		ClientIP:     req.TerminalIP,
		ExpireTime:   now.Add(time.Duration(config.C.Order.ValidityMinutes) * time.Minute),
	}
	if err := s.orders.Insert(order); err != nil {
		return resp, err
	}
	s.guard.MarkExists(ctx, existsKey, existsMarkTTL)

	s.tracer.Record(traceID, orderNo, merchant.MerchantID,
		ordermodel.StepCreated, ordermodel.StepStatusSuccess,
		map[string]interface{}{"m_order_no": req.MOrderNo, "amount": amount, "product": req.ProductCode}, started)
	s.tracer.Record(traceID, orderNo, merchant.MerchantID,
		ordermodel.StepChannelSelected, ordermodel.StepStatusSuccess,
		map[string]interface{}{"candidates": len(selected)}, started)

	payURL, err := s.failover(ctx, order, req, selected, merchant)
	if err != nil {
		return resp, err
	}

	resp.OrderNo = strconv.FormatUint(orderNo, 10)
	resp.MOrderNo = req.MOrderNo
	resp.Amount = utils.FormatMinor(amount)
	resp.PayURL = payURL
	resp.TraceID = traceID
	return resp, nil
}

type poolCacheEntry struct {
	ProductID uint64              `json:"product_id"`
	Channels  []mainmodel.Channel `json:"channels"`
}

// loadPool 产品通道池查询，两级缓存承接高频下单，singleflight 合并并发回源
func (s *OrderService) loadPool(ctx context.Context, productCode string) (uint64, []mainmodel.Channel, error) {
	raw, err := s.guard.GetOrLoad(ctx, rediskey.Lookup("pool", productCode), poolCacheTTL, func() (string, error) {
		product, err := s.main.GetProductByCode(productCode)
		if err != nil {
			return "", err
		}
		pool, err := s.main.GetPoolChannels(product.ProductID)
		if err != nil {
			return "", err
		}
		b, err := json.Marshal(poolCacheEntry{ProductID: product.ProductID, Channels: pool})
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
	if err != nil {
		return 0, nil, err
	}
	var entry poolCacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return 0, nil, err
	}
	return entry.ProductID, entry.Channels, nil
}

// failover 按权重顺序逐通道尝试上游下单，首个受理者胜出。
// 全部失败时订单置为 FAILED 并触发运营报警。
func (s *OrderService) failover(ctx context.Context, order *ordermodel.Order, req dto.CreateOrderReq, candidates []mainmodel.Channel, merchant *mainmodel.Merchant) (string, error) {
	payReq := dto.PaymentRequest{
		OrderNo:     order.OrderNo,
		Amount:      order.Amount,
		ProductCode: req.ProductCode,
		NotifyURL:   req.NotifyURL,
		ReturnURL:   req.ReturnURL,
		ClientIP:    req.TerminalIP,
	}

	failures := make(map[string]string, len(candidates))
	for _, ch := range candidates {
		started := time.Now()

		supplier, err := s.main.GetSupplierByID(ch.SupplierID)
		if err != nil {
			failures[strconv.FormatUint(ch.SupplierID, 10)] = err.Error()
			continue
		}
		if supplier.Status != 1 {
			failures[supplier.Name] = "supplier disabled"
			continue
		}
		adapter, err := s.registry.Get(supplier.Code)
		if err != nil {
			failures[supplier.Name] = err.Error()
			continue
		}

		result, err := adapter.InitiatePayment(ctx, payReq, supplier, &ch)
		if err != nil {
			failures[supplier.Name] = err.Error()
			s.log.Warnf("[Order] initiate failed: order=%d supplier=%s channel=%d err=%v",
				order.OrderNo, supplier.Name, ch.ChannelID, err)
			s.tracer.Record(order.TraceID, order.OrderNo, order.MID,
				ordermodel.StepPaymentInit, ordermodel.StepStatusFailed,
				map[string]interface{}{"supplier": supplier.Name, "channel": ch.ChannelID, "error": err.Error()}, started)
			continue
		}

		if _, err := s.orders.MarkPaying(order.OrderNo, ch.ChannelID, supplier.SupplierID, result.UpTxnID); err != nil {
			s.log.Errorf("[Order] mark paying failed: order=%d err=%v", order.OrderNo, err)
		}
		s.tracer.Record(order.TraceID, order.OrderNo, order.MID,
			ordermodel.StepPaymentInit, ordermodel.StepStatusSuccess,
			map[string]interface{}{"supplier": supplier.Name, "channel": ch.ChannelID}, started)
		s.log.Infof("[Order] order=%d accepted by supplier=%s channel=%d", order.OrderNo, supplier.Name, ch.ChannelID)
		return result.PayURL, nil
	}

	// 通道池打穿
	if _, err := s.orders.MarkFailed(order.OrderNo, utils.MapToJSON(failures)); err != nil {
		s.log.Errorf("[Order] mark failed err: order=%d err=%v", order.OrderNo, err)
	}
	s.log.Errorf("[Order] all channels exhausted: order=%d failures=%v", order.OrderNo, failures)
	if s.alerter != nil {
		lines := map[string]string{
			"商户":  merchant.MerchantNo,
			"订单号": strconv.FormatUint(order.OrderNo, 10),
		}
		for name, reason := range failures {
			lines[name] = reason
		}
		s.alerter.Fire("channel_exhausted", req.ProductCode, "通道池全部失败", lines, 10*time.Minute)
	}
	return "", constant.NewError(constant.CodeChannelExhausted)
}

// Query 商户订单查询
func (s *OrderService) Query(merchant *mainmodel.Merchant, mOrderNo string) (dto.QueryOrderResp, error) {
	var resp dto.QueryOrderResp

	order, err := s.orders.GetByMerchantOrderNo(merchant.MerchantID, mOrderNo)
	if err != nil {
		return resp, err
	}

	// 同名字段批量拷贝，类型不同的字段单独赋值
	_ = copier.Copy(&resp, order)
	resp.OrderNo = strconv.FormatUint(order.OrderNo, 10)
	resp.Amount = utils.FormatMinor(order.Amount)
	resp.StatusText = ordermodel.StatusText(order.Status)
	if order.PaidTime != nil {
		resp.PaidTime = order.PaidTime.Format("2006-01-02 15:04:05")
	}
	return resp, nil
}

func newTraceID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
