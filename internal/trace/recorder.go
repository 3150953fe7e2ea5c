package trace

import (
	"time"

	"github.com/sirupsen/logrus"

	"fpa-order-api/internal/dao"
	ordermodel "fpa-order-api/internal/model/order"
	"fpa-order-api/internal/utils"
)

// Recorder 生命周期链路记录器。只追加，不在订单处理热路径上读取；
// 写失败只记日志，绝不中断被记录的操作。
type Recorder struct {
	dao *dao.TraceDao
	log *logrus.Logger
}

func New(d *dao.TraceDao, log *logrus.Logger) *Recorder {
	return &Recorder{dao: d, log: log}
}

// Record 异步落一条链路记录，payload 序列化为 JSON
func (r *Recorder) Record(traceID string, orderNo, mid uint64, step, status string, payload any, startedAt time.Time) {
	if r == nil || r.dao == nil {
		return
	}
	entry := &ordermodel.TraceStep{
		TraceID:    traceID,
		OrderNo:    orderNo,
		MID:        mid,
		Step:       step,
		Status:     status,
		Payload:    utils.MapToJSON(payload),
		DurationMs: time.Since(startedAt).Milliseconds(),
	}
	go func() {
		defer func() {
			if rec := recover(); rec != nil && r.log != nil {
				r.log.Warnf("[Trace] append panic: %v", rec)
			}
		}()
		if err := r.dao.Append(entry); err != nil && r.log != nil {
			r.log.Warnf("[Trace] append %s/%s failed: %v", entry.Step, entry.TraceID, err)
		}
	}()
}
