package generation

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageUnknown 检测失败时的哨兵语言代码
const LanguageUnknown = "unknown"

// 默认候选语言集合；检测只在候选集内进行
var defaultCandidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
	lingua.Russian,
	lingua.Arabic,
	lingua.Hindi,
}

var isoToLanguage = map[string]lingua.Language{
	"en": lingua.English,
	"es": lingua.Spanish,
	"fr": lingua.French,
	"de": lingua.German,
	"it": lingua.Italian,
	"pt": lingua.Portuguese,
	"zh": lingua.Chinese,
	"ja": lingua.Japanese,
	"ko": lingua.Korean,
	"ru": lingua.Russian,
	"ar": lingua.Arabic,
	"hi": lingua.Hindi,
	"nl": lingua.Dutch,
	"sv": lingua.Swedish,
	"tr": lingua.Turkish,
	"vi": lingua.Vietnamese,
}

// LanguageDetector 离线语言检测器，用于翻译任务的 UI 预填提示。
// 完全独立于模型会话，检测失败返回哨兵值而非错误。
type LanguageDetector struct {
	detector lingua.LanguageDetector
}

// NewLanguageDetector 创建语言检测器
// codes 为 ISO 639-1 候选集；为空或不足两种语言时使用默认集合
func NewLanguageDetector(codes []string) *LanguageDetector {
	var langs []lingua.Language
	for _, code := range codes {
		if lang, ok := isoToLanguage[strings.ToLower(strings.TrimSpace(code))]; ok {
			langs = append(langs, lang)
		}
	}
	if len(langs) < 2 {
		langs = defaultCandidates
	}

	return &LanguageDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build(),
	}
}

// Detect 返回文本语言的 ISO 639-1 小写代码，无法判定时返回 "unknown"
func (d *LanguageDetector) Detect(text string) string {
	if d == nil || strings.TrimSpace(text) == "" {
		return LanguageUnknown
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return LanguageUnknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
