package notifyd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/config"
	"fpa-order-api/internal/dao"
	"fpa-order-api/internal/dto"
	"fpa-order-api/internal/lock"
	ordermodel "fpa-order-api/internal/model/order"
	"fpa-order-api/internal/notify"
	"fpa-order-api/internal/trace"
	rediskey "fpa-order-api/internal/types/redis-key"
	"fpa-order-api/internal/utils"
)

// HTTPDoer 外呼客户端抽象，测试替换用
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// 重试间隔：第n次失败后等 retryBackoff[n-1] 再试
var retryBackoff = []time.Duration{time.Second, 3 * time.Second, 5 * time.Second}

const (
	notifyLockTTL  = 30 * time.Second
	drainBatchSize = 64
	queueStaleAge  = 24 * time.Hour
)

// Dispatcher 商户异步通知派发器。消费 MQ 初投与 ZSET 重试/延迟队列，
// 订单级锁去重，熔断打开时整体延后。
type Dispatcher struct {
	orders  *dao.OrderDao
	logs    *dao.NotifyLogDao
	main    *dao.MainDao
	locker  *lock.Locker
	breaker *Breaker
	queue   *Queue
	rt      *RTTracker
	client  HTTPDoer
	alerter *notify.Alerter
	tracer  *trace.Recorder
	log     *logrus.Logger
}

func NewDispatcher(
	orders *dao.OrderDao,
	logs *dao.NotifyLogDao,
	main *dao.MainDao,
	locker *lock.Locker,
	breaker *Breaker,
	queue *Queue,
	rt *RTTracker,
	client HTTPDoer,
	alerter *notify.Alerter,
	tracer *trace.Recorder,
	log *logrus.Logger,
) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: time.Duration(config.C.Notify.TimeoutSec) * time.Second}
	}
	return &Dispatcher{
		orders: orders, logs: logs, main: main, locker: locker,
		breaker: breaker, queue: queue, rt: rt, client: client,
		alerter: alerter, tracer: tracer, log: log,
	}
}

// Dispatch 执行一次通知投递。job.Attempt 为本次是第几次尝试（首投为1）。
func (d *Dispatcher) Dispatch(ctx context.Context, job dto.NotifyJob) {
	started := time.Now()

	order, err := d.orders.GetByOrderNo(job.OrderNo)
	if err != nil {
		d.log.Warnf("[Notify] load order %d failed: %v", job.OrderNo, err)
		return
	}
	// 只通知支付成功且尚未通知成功的订单；回调乱序或手工补发都走这条判定
	if order.Status != ordermodel.StatusSuccess || order.NotifyStatus == ordermodel.NotifySuccess {
		return
	}

	lockKey := rediskey.NotifyLock(order.OrderNo)
	token, ok := d.locker.Acquire(ctx, lockKey, notifyLockTTL)
	if !ok {
		// 别的实例正在投这单
		return
	}
	defer d.locker.Release(ctx, lockKey, token)

	merchant, err := d.main.GetMerchantByID(order.MID)
	if err != nil {
		d.log.Warnf("[Notify] load merchant %d for order %d failed: %v", order.MID, order.OrderNo, err)
		return
	}

	if d.breaker.Open(ctx, order.MID, order.NotifyURL) {
		delay := time.Duration(config.C.Notify.DeferDelaySec) * time.Second
		d.queue.PushDelayed(ctx, job, delay)
		d.log.Infof("[Notify] breaker open for merchant %s, order %d deferred %s", merchant.MerchantNo, order.OrderNo, delay)
		return
	}

	payload := d.buildPayload(order, merchant.MerchantNo, merchant.ApiSecret)
	body, _ := json.Marshal(payload)

	d.tracer.Record(order.TraceID, order.OrderNo, order.MID,
		ordermodel.StepNotifySent, ordermodel.StepStatusPending,
		map[string]interface{}{"attempt": job.Attempt, "url": order.NotifyURL}, started)

	respCode, respBody, doErr := d.post(ctx, order.NotifyURL, body)
	elapsed := time.Since(started)
	if d.rt != nil {
		d.rt.Observe(ctx, order.MID, merchant.MerchantNo, elapsed.Milliseconds())
	}

	succeeded := doErr == nil && deliverySucceeded(respCode, respBody)
	d.recordLog(order, string(body), respCode, respBody, succeeded, job.Attempt)

	if succeeded {
		d.breaker.RecordSuccess(ctx, order.MID, order.NotifyURL)
		if err := d.orders.UpdateNotifyState(order.OrderNo, ordermodel.NotifySuccess, job.Attempt); err != nil {
			d.log.Warnf("[Notify] update order %d notify state failed: %v", order.OrderNo, err)
		}
		d.tracer.Record(order.TraceID, order.OrderNo, order.MID,
			ordermodel.StepNotifyOK, ordermodel.StepStatusSuccess,
			map[string]interface{}{"attempt": job.Attempt, "cost_ms": elapsed.Milliseconds()}, started)
		d.log.Infof("[Notify] order %d notified on attempt %d (%s)", order.OrderNo, job.Attempt, elapsed)
		return
	}

	if doErr != nil {
		d.log.Warnf("[Notify] order %d attempt %d failed: %v", order.OrderNo, job.Attempt, doErr)
	} else {
		d.log.Warnf("[Notify] order %d attempt %d rejected: code=%d body=%.128s", order.OrderNo, job.Attempt, respCode, respBody)
	}

	if opened := d.breaker.RecordFailure(ctx, order.MID, order.NotifyURL); opened && d.alerter != nil {
		d.alerter.Fire("notify_breaker", strconv.FormatUint(order.MID, 10), "商户通知熔断", map[string]string{
			"商户":   merchant.MerchantNo,
			"通知地址": order.NotifyURL,
			"冷却":   fmt.Sprintf("%ds", config.C.Notify.BreakerCooldownSec),
		}, 0)
	}

	if delay, more := nextDelay(job.Attempt, config.C.Notify.MaxRetry); more {
		d.queue.PushRetry(ctx, dto.NotifyJob{OrderNo: job.OrderNo, Attempt: job.Attempt + 1}, delay)
		if err := d.orders.UpdateNotifyState(order.OrderNo, ordermodel.NotifyPending, job.Attempt); err != nil {
			d.log.Warnf("[Notify] update order %d notify state failed: %v", order.OrderNo, err)
		}
		return
	}

	// 重试耗尽
	if err := d.orders.UpdateNotifyState(order.OrderNo, ordermodel.NotifyFailed, job.Attempt); err != nil {
		d.log.Warnf("[Notify] update order %d notify state failed: %v", order.OrderNo, err)
	}
	d.tracer.Record(order.TraceID, order.OrderNo, order.MID,
		ordermodel.StepNotifyFail, ordermodel.StepStatusFailed,
		map[string]interface{}{"attempt": job.Attempt}, started)
	if d.alerter != nil {
		d.alerter.Fire("notify_exhausted", strconv.FormatUint(order.OrderNo, 10), "商户通知重试耗尽", map[string]string{
			"商户":  merchant.MerchantNo,
			"订单号": strconv.FormatUint(order.OrderNo, 10),
			"尝试":  strconv.Itoa(job.Attempt),
		}, 0)
	}
}

// nextDelay 第 attempt 次失败后的重试间隔；超过上限返回 false
func nextDelay(attempt, maxRetry int) (time.Duration, bool) {
	if attempt > maxRetry || attempt < 1 {
		return 0, false
	}
	if attempt > len(retryBackoff) {
		return retryBackoff[len(retryBackoff)-1], true
	}
	return retryBackoff[attempt-1], true
}

// deliverySucceeded 商户应答是否算收到：HTTP 200 且 body 为 success 文本
// 或 JSON 中 code==200 / status、result 为 success
func deliverySucceeded(status int, body string) bool {
	if status != http.StatusOK {
		return false
	}
	trimmed := strings.TrimSpace(body)
	if strings.EqualFold(trimmed, "success") {
		return true
	}
	var shape struct {
		Code   json.Number `json:"code"`
		Status string      `json:"status"`
		Result string      `json:"result"`
	}
	if err := json.Unmarshal([]byte(trimmed), &shape); err != nil {
		return false
	}
	if n, err := shape.Code.Int64(); err == nil && n == 200 {
		return true
	}
	return strings.EqualFold(shape.Status, "success") || strings.EqualFold(shape.Result, "success")
}

func (d *Dispatcher) buildPayload(order *ordermodel.Order, merchantNo, secret string) dto.MerchantNotifyPayload {
	paidTime := ""
	if order.PaidTime != nil {
		paidTime = order.PaidTime.Format("2006-01-02 15:04:05")
	}
	p := dto.MerchantNotifyPayload{
		OrderNo:    strconv.FormatUint(order.OrderNo, 10),
		MOrderNo:   order.MOrderNo,
		MerchantNo: merchantNo,
		Amount:     utils.FormatMinor(order.Amount),
		Status:     strconv.Itoa(int(order.Status)),
		StatusText: ordermodel.StatusText(order.Status),
		PaidTime:   paidTime,
	}
	p.Sign = utils.GenerateSign(map[string]string{
		"order_no":          p.OrderNo,
		"merchant_order_no": p.MOrderNo,
		"merchant_key":      p.MerchantNo,
		"order_amount":      p.Amount,
		"status":            p.Status,
		"paid_time":         p.PaidTime,
	}, secret)
	return p
}

func (d *Dispatcher) post(ctx context.Context, url string, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, string(respBody), nil
}

// recordLog 投递日志一单一行，重试覆盖写回
func (d *Dispatcher) recordLog(order *ordermodel.Order, payload string, respCode int, respBody string, succeeded bool, attempt int) {
	var success int8
	if succeeded {
		success = 1
	}
	existing, err := d.logs.GetByOrderNo(order.OrderNo)
	if err != nil {
		d.log.Warnf("[Notify] load notify log for order %d failed: %v", order.OrderNo, err)
		return
	}
	if existing == nil {
		err = d.logs.Create(&ordermodel.NotifyLog{
			OrderNo:    order.OrderNo,
			MID:        order.MID,
			NotifyURL:  order.NotifyURL,
			Payload:    payload,
			RespCode:   respCode,
			RespBody:   respBody,
			Success:    success,
			RetryCount: attempt,
		})
	} else {
		err = d.logs.UpdateAttempt(existing.ID, respCode, respBody, success, attempt)
	}
	if err != nil {
		d.log.Warnf("[Notify] record notify log for order %d failed: %v", order.OrderNo, err)
	}
}

// Run 周期性排空重试/延迟队列，直到 ctx 取消
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	pruneTicker := time.NewTicker(10 * time.Minute)
	defer pruneTicker.Stop()

	d.log.Info("[Notify] dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.log.Info("[Notify] dispatcher stopped")
			return
		case <-pruneTicker.C:
			stale := time.Now().Add(-queueStaleAge)
			d.queue.Prune(ctx, rediskey.NotifyRetryQueue(), stale)
			d.queue.Prune(ctx, rediskey.NotifyDelayedQueue(), stale)
		case now := <-ticker.C:
			for _, key := range []string{rediskey.NotifyRetryQueue(), rediskey.NotifyDelayedQueue()} {
				for _, job := range d.queue.PopDue(ctx, key, now, drainBatchSize) {
					d.Dispatch(ctx, job)
				}
			}
		}
	}
}
