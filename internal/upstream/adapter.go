package upstream

import (
	"context"
	"net/url"
	"sync"

	"fpa-order-api/internal/constant"
	"fpa-order-api/internal/dto"
	mainmodel "fpa-order-api/internal/model/main"
)

// Adapter 供应商对接能力。每个上游一个实现，启动时注册，
// 回调应答形态由适配器自己定义并原样返回给上游。
type Adapter interface {
	Code() string
	InitiatePayment(ctx context.Context, req dto.PaymentRequest, sup *mainmodel.Supplier, ch *mainmodel.Channel) (dto.PaymentResult, error)
	ParseCallback(body []byte, query url.Values) (dto.CallbackResult, error)
	SuccessAck() dto.Ack
}

// Registry 供应商编码 → 适配器
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Code()] = a
}

func (r *Registry) Get(code string) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[code]
	if !ok {
		return nil, constant.NewErrorf(constant.CodeSupplierNotFound, "no adapter for supplier code %s", code)
	}
	return a, nil
}
