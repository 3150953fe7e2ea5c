package utils

import (
	"net"
	"regexp"
	"strconv"
	"time"
)

var mOrderNoPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// ValidMerchantOrderNo 商户订单号格式：大写字母/数字/下划线，不超过64位
func ValidMerchantOrderNo(no string) bool {
	return no != "" && len(no) <= 64 && mOrderNoPattern.MatchString(no)
}

// ValidIP 是否合法 IPv4/IPv6
func ValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

// ParseTimestamp 毫秒时间戳字符串转 time.Time
func ParseTimestamp(tsStr string) (time.Time, error) {
	ms, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	sec := ms / 1000
	nsec := (ms % 1000) * 1e6
	return time.Unix(sec, nsec), nil
}

// IsTimestampValid 当前时间与请求时间差在合法窗口内
func IsTimestampValid(ts time.Time, window time.Duration) bool {
	now := time.Now()
	diff := now.Sub(ts)
	return diff >= 0 && diff <= window
}

func GetTimestampMs() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
