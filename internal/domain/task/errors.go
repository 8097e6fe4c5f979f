package task

import (
	"errors"
	"fmt"
)

// 错误分类采用闭合的类型变体，而不是在错误文本上做模式匹配。
// 模型层负责把底层失败归入这四类；解码层产出 SchemaMismatchError。

// UnavailableError 模型能力缺失，发送提示词之前即被短路
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return "model unavailable"
	}
	return fmt.Sprintf("model unavailable: %s", e.Reason)
}

// SafetyRejectedError 安全护栏拒绝生成
type SafetyRejectedError struct {
	Detail string
}

func (e *SafetyRejectedError) Error() string {
	if e.Detail == "" {
		return "generation rejected by safety guardrail"
	}
	return fmt.Sprintf("generation rejected by safety guardrail: %s", e.Detail)
}

// TimeoutError 模型调用超时
type TimeoutError struct {
	Cause error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model call timed out: %v", e.Cause)
}

func (e *TimeoutError) Unwrap() error { return e.Cause }

// GenerationError 生成期间的其它底层失败
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// SchemaMismatchError 结构化输出不符合预期形状
// 与生成失败区分：它意味着模型与 schema 的契约被破坏，而不是瞬时错误
type SchemaMismatchError struct {
	Schema string
	Cause  error
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("output does not match schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaMismatchError) Unwrap() error { return e.Cause }

// IsUnavailable 检查是否为模型不可用错误
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}

// IsSchemaMismatch 检查是否为 schema 不匹配错误
func IsSchemaMismatch(err error) bool {
	var se *SchemaMismatchError
	return errors.As(err, &se)
}
