// Package schema 定义结构化输出的 JSON Schema 及解码逻辑
//
// 结构化任务以 guided 模式调用模型：schema 同时作为 Generate 的 format
// 约束与解码时的校验依据。
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"z-ondevice-ai/internal/domain/task"
)

// ID 结构化输出 schema 标识
type ID string

const (
	TaskSuggestionsV1       ID = "task_suggestions_v1"
	ExtractedEntitiesV1     ID = "extracted_entities_v1"
	ContentClassificationV1 ID = "content_classification_v1"
)

const taskSuggestionsSchema = `{
  "type": "object",
  "properties": {
    "tasks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "priority": {"type": "string"}
        },
        "required": ["title", "description", "category", "priority"]
      }
    }
  },
  "required": ["tasks"]
}`

const extractedEntitiesSchema = `{
  "type": "object",
  "properties": {
    "people": {"type": "array", "items": {"type": "string"}},
    "places": {"type": "array", "items": {"type": "string"}},
    "organizations": {"type": "array", "items": {"type": "string"}},
    "events": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["people", "places", "organizations", "events"]
}`

const contentClassificationSchema = `{
  "type": "object",
  "properties": {
    "category": {"type": "string"},
    "sentiment": {"type": "string"},
    "topics": {"type": "array", "items": {"type": "string"}, "maxItems": 5},
    "confidence": {"type": "number", "minimum": 0.0, "maximum": 1.0}
  },
  "required": ["category", "sentiment", "topics", "confidence"]
}`

var rawSchemas = map[ID]string{
	TaskSuggestionsV1:       taskSuggestionsSchema,
	ExtractedEntitiesV1:     extractedEntitiesSchema,
	ContentClassificationV1: contentClassificationSchema,
}

var compiled = func() map[ID]*jsonschema.Schema {
	out := make(map[ID]*jsonschema.Schema, len(rawSchemas))
	for id, raw := range rawSchemas {
		c := jsonschema.NewCompiler()
		name := fmt.Sprintf("%s.json", id)
		if err := c.AddResource(name, strings.NewReader(raw)); err != nil {
			panic(fmt.Sprintf("schema %s: %v", id, err))
		}
		sch, err := c.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("schema %s: %v", id, err))
		}
		out[id] = sch
	}
	return out
}()

// ForKind 返回任务类型对应的 schema，非结构化任务返回 false
func ForKind(kind task.Kind) (ID, bool) {
	switch kind {
	case task.KindTaskSuggestion:
		return TaskSuggestionsV1, true
	case task.KindEntityExtraction:
		return ExtractedEntitiesV1, true
	case task.KindContentClassification:
		return ContentClassificationV1, true
	}
	return "", false
}

// Format 返回传给模型 guided 模式的原始 schema
func Format(id ID) json.RawMessage {
	return json.RawMessage(rawSchemas[id])
}
