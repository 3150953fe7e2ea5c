package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"fpa-order-api/internal/constant"
)

// Client 上游HTTP客户端，按供应商维度熔断。
// 已知不健康的供应商直接快速失败，让故障转移尽快推进到下一个通道。
type Client struct {
	http *http.Client
	log  *logrus.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewClient(log *logrus.Logger) *Client {
	return &Client{
		http:     &http.Client{Timeout: 10 * time.Second},
		log:      log,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (c *Client) breaker(supplier string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cb, ok := c.breakers[supplier]; ok {
		return cb
	}
	st := gobreaker.Settings{
		Name:        supplier,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if c.log != nil {
				c.log.Warnf("[Upstream] breaker[%s] %s -> %s", name, from, to)
			}
		},
	}
	cb := gobreaker.NewCircuitBreaker(st)
	c.breakers[supplier] = cb
	return cb
}

// PostJSON 上游下单请求，JSON进JSON出，经熔断器执行
func (c *Client) PostJSON(ctx context.Context, supplier, apiURL string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal upstream request: %w", err)
	}

	res, err := c.breaker(supplier).Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, constant.NewErrorf(constant.CodeUpstreamNetworkError, "post %s: %v", apiURL, err)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, constant.NewErrorf(constant.CodeUpstreamNetworkError, "read %s: %v", apiURL, err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, constant.NewErrorf(constant.CodeUpstreamError, "bad status %d from %s: %s", resp.StatusCode, apiURL, string(raw))
		}
		return raw, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, constant.NewErrorf(constant.CodeUpstreamCircuitOpen, "supplier %s circuit open", supplier)
		}
		return nil, err
	}
	return res.([]byte), nil
}
