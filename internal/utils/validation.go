package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationMsg 字段校验错误转提示文案
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必填参数缺失"
	case "url":
		return "必须是合法的URL"
	case "max":
		return fmt.Sprintf("长度不能超过%s", fe.Param())
	case "min":
		return fmt.Sprintf("长度不能小于%s", fe.Param())
	}
	return fmt.Sprintf("不满足校验规则 %s", fe.Tag())
}
