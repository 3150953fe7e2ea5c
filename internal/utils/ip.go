package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealClientIP 获取客户端真实 IP
func GetRealClientIP(c *gin.Context) string {
	ipHeaders := []string{
		"CF-Connecting-IP",
		"X-Real-IP",
		"X-Forwarded-For",
		"X-Client-IP",
	}

	for _, header := range ipHeaders {
		ipList := c.Request.Header.Get(header)
		if ipList == "" {
			continue
		}
		// X-Forwarded-For 可能包含多个IP，取第一个合法IP
		for _, ip := range strings.Split(ipList, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" && ValidIP(ip) {
				return ip
			}
		}
	}

	ip, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err == nil && ValidIP(ip) {
		return ip
	}
	return ""
}

// MatchIPRule 单 IP / CIDR / 前缀通配符
func MatchIPRule(ip, rule string) bool {
	if rule == ip {
		return true
	}

	// 前缀通配符 172.16.5.*
	if strings.HasSuffix(rule, "*") {
		prefix := strings.TrimSuffix(rule, "*")
		return strings.HasPrefix(ip, prefix)
	}

	// CIDR
	if _, cidr, err := net.ParseCIDR(rule); err == nil {
		return cidr.Contains(net.ParseIP(ip))
	}

	return false
}
