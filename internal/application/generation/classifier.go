package generation

import (
	"errors"
	"strings"

	"z-ondevice-ai/internal/domain/task"
)

// 面向用户的错误提示
const (
	MsgModelUnavailable = "The on-device model is not available right now. Please try again later."
	MsgSafety           = "The content may have triggered safety filters. Please try rephrasing your request."
	MsgInappropriate    = "The content appears to be inappropriate. Please try a different input."
	MsgPolicy           = "The request doesn't meet content policy requirements."
	MsgRateLimit        = "Too many requests. Please wait a moment and try again."
	MsgSchemaMismatch   = "The model returned an unexpected response format. Please try again."
	MsgTimeout          = "The request took too long to complete. Please try again."
	MsgGeneric          = "An error occurred while processing your request. Please try again with different content."
)

// Classify 把底层失败映射为用户可操作的提示文本。
//
// 优先对闭合的类型变体做穷举匹配；只有来源不明的错误才退回
// 对错误文本的有序子串匹配（先命中先赢）。对所有非 nil 错误全覆盖。
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var (
		unavailable *task.UnavailableError
		safety      *task.SafetyRejectedError
		mismatch    *task.SchemaMismatchError
		timeout     *task.TimeoutError
	)
	switch {
	case errors.As(err, &unavailable):
		return MsgModelUnavailable
	case errors.As(err, &safety):
		return MsgSafety
	case errors.As(err, &mismatch):
		return MsgSchemaMismatch
	case errors.As(err, &timeout):
		return MsgTimeout
	}

	// 不透明错误：按固定顺序做小写子串匹配。
	// 该顺序即优先级：同时包含 "safety" 与 "policy" 的文本归为 safety。
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "safety") || strings.Contains(msg, "guardrail"):
		return MsgSafety
	case strings.Contains(msg, "inappropriate"):
		return MsgInappropriate
	case strings.Contains(msg, "policy"):
		return MsgPolicy
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return MsgRateLimit
	default:
		return MsgGeneric
	}
}
