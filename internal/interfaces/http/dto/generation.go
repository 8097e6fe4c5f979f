package dto

import (
	"z-ondevice-ai/internal/domain/task"
)

// GenerationRequest 生成任务请求体
type GenerationRequest struct {
	Task           string `json:"task" binding:"required"`
	Input          string `json:"input"`
	CreativeType   string `json:"creative_type,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
}

// ToDomain 转换为领域请求
func (r *GenerationRequest) ToDomain() *task.GenerationRequest {
	return &task.GenerationRequest{
		Kind:           task.Kind(r.Task),
		RawInput:       r.Input,
		CreativeType:   task.CreativeType(r.CreativeType),
		TargetLanguage: r.TargetLanguage,
	}
}

// GenerationResponse 生成任务响应体
type GenerationResponse struct {
	Type           string                      `json:"type"`
	Text           string                      `json:"text,omitempty"`
	Suggestions    []task.Suggestion           `json:"suggestions,omitempty"`
	Entities       *task.ExtractedEntities     `json:"entities,omitempty"`
	Classification *task.ContentClassification `json:"classification,omitempty"`
	DurationMs     int64                       `json:"duration_ms"`
}

// FromOutput 由领域结果构造响应体
func FromOutput(out *task.Output, durationMs int64) GenerationResponse {
	return GenerationResponse{
		Type:           string(out.Type),
		Text:           out.Text,
		Suggestions:    out.Suggestions,
		Entities:       out.Entities,
		Classification: out.Classification,
		DurationMs:     durationMs,
	}
}

// GenerationState 编排器可观测状态
type GenerationState struct {
	IsProcessing bool   `json:"is_processing"`
	LastError    string `json:"last_error,omitempty"`
}

// LanguageDetectionRequest 语言检测请求体
type LanguageDetectionRequest struct {
	Text string `json:"text" binding:"required"`
}

// LanguageDetectionResponse 语言检测响应体
type LanguageDetectionResponse struct {
	Language string `json:"language"`
}
