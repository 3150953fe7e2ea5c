package utils

import "encoding/json"

// MapToJSON 任意值序列化为 json 字符串，失败返回空串
func MapToJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
