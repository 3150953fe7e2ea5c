package utils

import (
	"strconv"
	"testing"
	"time"
)

func TestValidMerchantOrderNo(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"ORD_20260901_001", true},
		{"A1", true},
		{"", false},
		{"ord_001", false}, // 小写不允许
		{"ORD-001", false},
		{"ORD 001", false},
	}
	for _, c := range cases {
		if got := ValidMerchantOrderNo(c.in); got != c.want {
			t.Errorf("ValidMerchantOrderNo(%q)=%v, want %v", c.in, got, c.want)
		}
	}
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'A'
	}
	if ValidMerchantOrderNo(string(long)) {
		t.Error("order no over 64 chars must be rejected")
	}
}

func TestTimestampWindow(t *testing.T) {
	now := strconv.FormatInt(GetTimestampMs(), 10)
	ts, err := ParseTimestamp(now)
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if !IsTimestampValid(ts, 300*time.Second) {
		t.Error("fresh timestamp should be valid")
	}

	stale := strconv.FormatInt(GetTimestampMs()-400_000, 10)
	ts, _ = ParseTimestamp(stale)
	if IsTimestampValid(ts, 300*time.Second) {
		t.Error("stale timestamp should be invalid")
	}
}

func TestMatchIPRule(t *testing.T) {
	cases := []struct {
		ip, rule string
		want     bool
	}{
		{"10.0.0.1", "10.0.0.1", true},
		{"10.0.0.2", "10.0.0.1", false},
		{"172.16.5.9", "172.16.5.*", true},
		{"172.16.6.9", "172.16.5.*", false},
		{"192.168.1.7", "192.168.1.0/24", true},
		{"192.168.2.7", "192.168.1.0/24", false},
	}
	for _, c := range cases {
		if got := MatchIPRule(c.ip, c.rule); got != c.want {
			t.Errorf("MatchIPRule(%q,%q)=%v, want %v", c.ip, c.rule, got, c.want)
		}
	}
}
