package schema

import (
	"encoding/json"
	"fmt"

	"z-ondevice-ai/internal/domain/task"
)

// Decode 把模型的结构化输出解码为类型化结果。
// guided 模式下输出预期已符合 schema，这里是一次通过式校验：
// 任何不匹配都归为 SchemaMismatchError，与生成失败分开呈现。
func Decode(id ID, raw string) (*task.Output, error) {
	jsonText := extractJSONValue(raw)
	if jsonText == "" {
		return nil, &task.SchemaMismatchError{Schema: string(id), Cause: fmt.Errorf("empty structured output")}
	}

	var value any
	if err := json.Unmarshal([]byte(jsonText), &value); err != nil {
		return nil, &task.SchemaMismatchError{Schema: string(id), Cause: fmt.Errorf("invalid json: %w", err)}
	}

	sch, ok := compiled[id]
	if !ok {
		return nil, &task.SchemaMismatchError{Schema: string(id), Cause: fmt.Errorf("unknown schema id")}
	}
	if err := sch.Validate(value); err != nil {
		return nil, &task.SchemaMismatchError{Schema: string(id), Cause: err}
	}

	switch id {
	case TaskSuggestionsV1:
		var payload struct {
			Tasks []task.Suggestion `json:"tasks"`
		}
		if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
			return nil, &task.SchemaMismatchError{Schema: string(id), Cause: err}
		}
		return &task.Output{Type: task.OutputSuggestions, Suggestions: payload.Tasks}, nil

	case ExtractedEntitiesV1:
		var entities task.ExtractedEntities
		if err := json.Unmarshal([]byte(jsonText), &entities); err != nil {
			return nil, &task.SchemaMismatchError{Schema: string(id), Cause: err}
		}
		return &task.Output{Type: task.OutputEntities, Entities: &entities}, nil

	case ContentClassificationV1:
		var cls task.ContentClassification
		if err := json.Unmarshal([]byte(jsonText), &cls); err != nil {
			return nil, &task.SchemaMismatchError{Schema: string(id), Cause: err}
		}
		// schema 已限制范围与条数，这里保底截断 topics
		if len(cls.Topics) > 5 {
			cls.Topics = cls.Topics[:5]
		}
		return &task.Output{Type: task.OutputClassification, Classification: &cls}, nil

	default:
		return nil, &task.SchemaMismatchError{Schema: string(id), Cause: fmt.Errorf("unknown schema id")}
	}
}
