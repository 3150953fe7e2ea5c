package utils

import (
	"github.com/shopspring/decimal"

	"fpa-order-api/internal/constant"
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.RequireFromString("999999.99")
)

// ParseAmount 解析元为单位的小数字符串，返回以分为单位的整数金额。
// 允许范围 0.01 ~ 999999.99，超过两位小数视为非法。
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, constant.NewError(constant.CodeOrderAmountInvalid)
	}
	if d.Exponent() < -2 {
		return 0, constant.NewError(constant.CodeOrderAmountInvalid)
	}
	if d.Cmp(minAmount) < 0 || d.Cmp(maxAmount) > 0 {
		return 0, constant.NewError(constant.CodeParamsRangeError)
	}
	return d.Shift(2).IntPart(), nil
}

// FormatMinor 将分转为固定两位小数的元字符串
func FormatMinor(minor int64) string {
	return decimal.NewFromInt(minor).Shift(-2).StringFixed(2)
}
