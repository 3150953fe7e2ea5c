package notifyd

import (
	"testing"
	"time"
)

func TestDeliverySucceeded(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"plain success", 200, "success", true},
		{"uppercase", 200, "SUCCESS", true},
		{"whitespace", 200, "  success\n", true},
		{"json code", 200, `{"code":200}`, true},
		{"json status", 200, `{"status":"success"}`, true},
		{"json result", 200, `{"result":"SUCCESS"}`, true},
		{"json reject", 200, `{"code":500,"status":"fail"}`, false},
		{"other text", 200, "ok", false},
		{"empty body", 200, "", false},
		{"http 500", 500, "success", false},
		{"http 404", 404, `{"code":200}`, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := deliverySucceeded(c.status, c.body); got != c.want {
				t.Errorf("deliverySucceeded(%d, %q) = %v, want %v", c.status, c.body, got, c.want)
			}
		})
	}
}

func TestNextDelay(t *testing.T) {
	const maxRetry = 3
	cases := []struct {
		attempt int
		delay   time.Duration
		more    bool
	}{
		{1, time.Second, true},
		{2, 3 * time.Second, true},
		{3, 5 * time.Second, true},
		{4, 0, false}, // 第4次失败后不再重试
		{0, 0, false},
	}
	for _, c := range cases {
		delay, more := nextDelay(c.attempt, maxRetry)
		if more != c.more || delay != c.delay {
			t.Errorf("nextDelay(%d) = (%v, %v), want (%v, %v)", c.attempt, delay, more, c.delay, c.more)
		}
	}
}
