package schema

import (
	"encoding/json"
	"strings"
)

// extractJSONValue 从模型输出中截取第一个完整的 JSON 对象或数组。
// guided 模式下输出通常已经是纯 JSON，但模型偶尔会在前后夹杂说明文字。
func extractJSONValue(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return raw
	}

	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return raw
	}
	closer := "}"
	if raw[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(raw, closer)
	if end <= start {
		return raw
	}
	candidate := raw[start : end+1]

	// 确认截取结果确实以一个 JSON 值开头，否则退回原始文本
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return raw
	}
	if d, ok := tok.(json.Delim); !ok || (d != '{' && d != '[') {
		return raw
	}
	return candidate
}
