// Package generation 实现生成任务的编排：输入净化、提示词构建、
// 模型调用、结构化解码与错误归类。
package generation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"z-ondevice-ai/pkg/metrics"
)

const (
	// maxInputRunes 净化后输入的最大长度（字符数）
	maxInputRunes = 2000
	// shortInputRunes 低于该长度且词数 ≤3 的输入会被包装为教育化提问
	shortInputRunes = 15
	// fallbackInput 所有规则执行完后仍为空时的兜底输入
	fallbackInput = "Please provide a valid input for processing."
)

var (
	creativeRequestRe   = regexp.MustCompile(`(?i)\bwrite\b[\s\S]*\b(story|poem)\b`)
	informationalRe     = regexp.MustCompile(`(?i)^(tell me about|write me)\s+`)
	repeatedExclamRe    = regexp.MustCompile(`!{3,}`)
	repeatedQuestionRe  = regexp.MustCompile(`\?{3,}`)
	repeatedPeriodRe    = regexp.MustCompile(`\.{3,}`)
	allCapsWordRe       = regexp.MustCompile(`\b[A-Z]{5,}\b`)
	promotionalWordRe   = regexp.MustCompile(`(?i)\b(click|buy|free|win|prize|offer|deal|discount|sale|limited|urgent)\b`)
	// 词处理器粘贴的文本常带弯引号 U+2019
	promotionalPhraseRe = regexp.MustCompile(`(?i)(act now|don['’]t miss)`)
	multiSpaceRe        = regexp.MustCompile(`[ \t]{2,}`)
)

// 话题提取时丢弃的请求性词汇
var requestStopwords = map[string]bool{
	"write": true, "compose": true, "create": true, "tell": true,
	"me": true, "us": true, "a": true, "an": true, "the": true,
	"about": true, "short": true, "story": true, "poem": true,
	"please": true, "can": true, "could": true, "you": true,
}

// Sanitize 在输入抵达模型前进行归一化与重写。
//
// 这是一条纵深防御式的启发式流水线，不是正确性攸关的解析器：
// 过度重写（误伤用户意图）是可接受的；契约是"绝不发送空输入或
// 容易触发安全过滤器的输入"。规则按固定顺序执行，绝不失败。
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)

	// 1. 启发式重写为更中性的教育化表述
	switch {
	case creativeRequestRe.MatchString(s):
		// 创意请求整体替换为围绕同一话题的教育化指令。
		// 这会丢弃用户原始的创意诉求，行为沿袭自源设计，待商榷。
		s = educationalFraming(s)
		metrics.SanitizerRewritesTotal.WithLabelValues("creative").Inc()
	case informationalRe.MatchString(s):
		topic := informationalRe.ReplaceAllString(s, "")
		s = fmt.Sprintf("Provide educational information about %s.", strings.TrimRight(strings.TrimSpace(topic), "."))
		metrics.SanitizerRewritesTotal.WithLabelValues("informational").Inc()
	case s != "" && utf8.RuneCountInString(s) < shortInputRunes && len(strings.Fields(s)) <= 3:
		s = fmt.Sprintf("Provide educational information about %s.", strings.TrimRight(s, "."))
		metrics.SanitizerRewritesTotal.WithLabelValues("short").Inc()
	}

	// 2. 固定规则去噪
	cleaned := repeatedExclamRe.ReplaceAllString(s, "")
	cleaned = repeatedQuestionRe.ReplaceAllString(cleaned, "")
	cleaned = repeatedPeriodRe.ReplaceAllString(cleaned, "...")
	cleaned = allCapsWordRe.ReplaceAllString(cleaned, "")
	cleaned = promotionalWordRe.ReplaceAllString(cleaned, "")
	cleaned = promotionalPhraseRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(multiSpaceRe.ReplaceAllString(cleaned, " "))
	if cleaned != s {
		metrics.SanitizerRewritesTotal.WithLabelValues("noise").Inc()
	}
	s = cleaned

	// 3. 截断到长度上限
	if utf8.RuneCountInString(s) > maxInputRunes {
		s = truncateByRunes(s, maxInputRunes) + "..."
		metrics.SanitizerRewritesTotal.WithLabelValues("truncate").Inc()
	}

	// 4. 兜底：绝不返回空输入
	if strings.TrimSpace(s) == "" {
		metrics.SanitizerRewritesTotal.WithLabelValues("fallback").Inc()
		return fallbackInput
	}
	return s
}

// educationalFraming 提取创意请求中的话题并包装为教育化指令
func educationalFraming(s string) string {
	var topic []string
	for _, w := range strings.Fields(s) {
		word := strings.ToLower(strings.Trim(w, ".,!?;:\"'"))
		if word == "" || requestStopwords[word] {
			continue
		}
		topic = append(topic, strings.Trim(w, ".,!?;:\"'"))
	}
	if len(topic) == 0 {
		return "Provide educational information about creative writing."
	}
	return fmt.Sprintf("Provide educational information about %s.", strings.Join(topic, " "))
}

// truncateByRunes 按字符数截断，不切断多字节字符
func truncateByRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i]
		}
		n++
	}
	return s
}
