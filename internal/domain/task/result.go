package task

// OutputType 结果类型标签
type OutputType string

const (
	OutputText           OutputType = "text"
	OutputSuggestions    OutputType = "suggestions"
	OutputEntities       OutputType = "entities"
	OutputClassification OutputType = "classification"
)

// Suggestion 单条任务建议
// Priority 约定取值 low/medium/high，但由模型生成，不做闭合校验
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// ExtractedEntities 实体抽取结果，各序列保序，允许为空
type ExtractedEntities struct {
	People        []string `json:"people"`
	Places        []string `json:"places"`
	Organizations []string `json:"organizations"`
	Events        []string `json:"events"`
}

// ContentClassification 内容分类结果
type ContentClassification struct {
	Category   string   `json:"category"`
	Sentiment  string   `json:"sentiment"`
	Topics     []string `json:"topics"`     // 最多 5 项
	Confidence float64  `json:"confidence"` // [0.0, 1.0]
}

// Output 生成结果，按 Type 恰好填充一个分支；返回后不可变
type Output struct {
	Type           OutputType             `json:"type"`
	Text           string                 `json:"text,omitempty"`
	Suggestions    []Suggestion           `json:"suggestions,omitempty"`
	Entities       *ExtractedEntities     `json:"entities,omitempty"`
	Classification *ContentClassification `json:"classification,omitempty"`
}

// TextOutput 构造纯文本结果
func TextOutput(text string) *Output {
	return &Output{Type: OutputText, Text: text}
}
