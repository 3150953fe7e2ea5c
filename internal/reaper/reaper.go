package reaper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const listBatchSize = 500

// orderStore 由 dao.OrderDao 实现，测试用内存实现替换
type orderStore interface {
	ListExpired(before time.Time, limit int) ([]uint64, error)
	CloseOrders(nos []uint64) (int64, error)
}

// Reaper 超时关单扫描。到期未支付的 PENDING/PAYING 订单批量置 CLOSED，
// UPDATE 自带状态守卫，与并发回调竞争时回调赢者保持 SUCCESS。
type Reaper struct {
	orders   orderStore
	interval time.Duration
	validity time.Duration
	log      *logrus.Logger
}

func New(orders orderStore, interval, validity time.Duration, log *logrus.Logger) *Reaper {
	return &Reaper{orders: orders, interval: interval, validity: validity, log: log}
}

// Run 周期扫描直到 ctx 取消
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Infof("[Reaper] started, interval=%s validity=%s", r.interval, r.validity)
	for {
		select {
		case <-ctx.Done():
			r.log.Info("[Reaper] stopped")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

// sweep 分批扫描直到没有到期订单。每批先取订单号再按号关单，
// 日志里的订单号列表就是本批 UPDATE 的命中范围；两步之间支付成功的
// 订单被状态守卫挡掉，计入 closed 与 candidates 的差值。
func (r *Reaper) sweep() {
	cutoff := time.Now().Add(-r.validity)

	for {
		nos, err := r.orders.ListExpired(cutoff, listBatchSize)
		if err != nil {
			r.log.Errorf("[Reaper] list expired failed: %v", err)
			return
		}
		if len(nos) == 0 {
			return
		}

		closed, err := r.orders.CloseOrders(nos)
		if err != nil {
			r.log.Errorf("[Reaper] close orders failed: %v", err)
			return
		}
		r.log.Infof("[Reaper] closed %d/%d expired orders: %v", closed, len(nos), nos)

		// 整批都被并发迁移抢先时留到下一轮，避免空转
		if closed == 0 || len(nos) < listBatchSize {
			return
		}
	}
}
