// Package prompt 提供任务提示词模板注册表
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"z-ondevice-ai/internal/domain/task"
)

//go:embed templates/*.txt
var templatesFS embed.FS

// ID 模板标识
type ID string

const (
	PromptTextGenerationV1        ID = "text_generation_v1"
	PromptSummarizationV1         ID = "summarization_v1"
	PromptTaskSuggestionV1        ID = "task_suggestion_v1"
	PromptEntityExtractionV1      ID = "entity_extraction_v1"
	PromptContentClassificationV1 ID = "content_classification_v1"
	PromptCategorizationV1        ID = "categorization_v1"
	PromptCreativeStoryV1         ID = "creative_story_v1"
	PromptCreativePoemV1          ID = "creative_poem_v1"
	PromptCreativeDialogueV1      ID = "creative_dialogue_v1"
	PromptCreativeDescriptionV1   ID = "creative_description_v1"
	PromptTranslationV1           ID = "translation_v1"
)

// Input 模板渲染参数
type Input struct {
	Input          string
	TargetLanguage string
}

// ForRequest 解析任务类型（及创意子类型）对应的模板 ID
// 对所有合法的 Kind 值全覆盖；未指定创意子类型时默认 story
func ForRequest(kind task.Kind, creative task.CreativeType) (ID, error) {
	switch kind {
	case task.KindTextGeneration:
		return PromptTextGenerationV1, nil
	case task.KindSummarization:
		return PromptSummarizationV1, nil
	case task.KindTaskSuggestion:
		return PromptTaskSuggestionV1, nil
	case task.KindEntityExtraction:
		return PromptEntityExtractionV1, nil
	case task.KindContentClassification:
		return PromptContentClassificationV1, nil
	case task.KindCategorization:
		return PromptCategorizationV1, nil
	case task.KindTranslation:
		return PromptTranslationV1, nil
	case task.KindCreativeContent:
		switch creative {
		case task.CreativePoem:
			return PromptCreativePoemV1, nil
		case task.CreativeDialogue:
			return PromptCreativeDialogueV1, nil
		case task.CreativeDescription:
			return PromptCreativeDescriptionV1, nil
		default:
			return PromptCreativeStoryV1, nil
		}
	default:
		return "", fmt.Errorf("unknown task kind: %s", kind)
	}
}

// Registry 模板注册表，懒加载并缓存解析结果
type Registry struct {
	mu    sync.RWMutex
	cache map[ID]*template.Template
}

// NewRegistry 创建模板注册表
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[ID]*template.Template),
	}
}

// Render 渲染指定模板
func (r *Registry) Render(id ID, in Input) (string, error) {
	tpl, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, in); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", id, err)
	}
	return sb.String(), nil
}

func (r *Registry) lookup(id ID) (*template.Template, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	text, err := readEmbeddedText(fmt.Sprintf("templates/%s.txt", id))
	if err != nil {
		return nil, fmt.Errorf("unknown prompt id %s: %w", id, err)
	}
	tpl, err := template.New(string(id)).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt %s: %w", id, err)
	}
	r.cache[id] = tpl
	return tpl, nil
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
