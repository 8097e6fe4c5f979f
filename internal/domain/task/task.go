// Package task 定义生成任务领域模型
package task

import "fmt"

// Kind 任务类型
type Kind string

const (
	KindTextGeneration        Kind = "text_generation"
	KindSummarization         Kind = "summarization"
	KindTaskSuggestion        Kind = "task_suggestion"
	KindEntityExtraction      Kind = "entity_extraction"
	KindContentClassification Kind = "content_classification"
	KindCategorization        Kind = "categorization"
	KindCreativeContent       Kind = "creative_content"
	KindTranslation           Kind = "translation"
)

// Kinds 返回全部任务类型（闭合枚举）
func Kinds() []Kind {
	return []Kind{
		KindTextGeneration,
		KindSummarization,
		KindTaskSuggestion,
		KindEntityExtraction,
		KindContentClassification,
		KindCategorization,
		KindCreativeContent,
		KindTranslation,
	}
}

// Valid 检查任务类型是否合法
func (k Kind) Valid() bool {
	switch k {
	case KindTextGeneration, KindSummarization, KindTaskSuggestion,
		KindEntityExtraction, KindContentClassification,
		KindCategorization, KindCreativeContent, KindTranslation:
		return true
	}
	return false
}

// Structured 该任务类型是否产出结构化结果（guided 模式）
func (k Kind) Structured() bool {
	switch k {
	case KindTaskSuggestion, KindEntityExtraction, KindContentClassification:
		return true
	}
	return false
}

// CreativeType 创意内容子类型，仅 KindCreativeContent 使用
type CreativeType string

const (
	CreativeStory       CreativeType = "story"
	CreativePoem        CreativeType = "poem"
	CreativeDialogue    CreativeType = "dialogue"
	CreativeDescription CreativeType = "description"
)

// Valid 检查创意子类型是否合法
func (c CreativeType) Valid() bool {
	switch c {
	case CreativeStory, CreativePoem, CreativeDialogue, CreativeDescription:
		return true
	}
	return false
}

// GenerationRequest 一次生成请求，按调用构造，不持久化
type GenerationRequest struct {
	Kind           Kind
	RawInput       string
	CreativeType   CreativeType // 仅 KindCreativeContent
	TargetLanguage string       // 仅 KindTranslation
}

// Validate 校验请求参数
func (r *GenerationRequest) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("unknown task kind: %s", r.Kind)
	}
	if r.Kind == KindCreativeContent && r.CreativeType != "" && !r.CreativeType.Valid() {
		return fmt.Errorf("unknown creative type: %s", r.CreativeType)
	}
	if r.Kind == KindTranslation && r.TargetLanguage == "" {
		return fmt.Errorf("target language required for translation")
	}
	return nil
}
