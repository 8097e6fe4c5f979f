package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEmptyInputFallsBack(t *testing.T) {
	assert.Equal(t, fallbackInput, Sanitize(""))
	assert.Equal(t, fallbackInput, Sanitize("   "))
	assert.Equal(t, fallbackInput, Sanitize("\n\t  \n"))
}

func TestSanitizeShortInputIsWrapped(t *testing.T) {
	// 短输入（<15 字符且 ≤3 词）必须被包装，输出与原输入不同
	cases := []string{"hi", "cats", "Good morning!", "ok then", "a b c"}
	for _, in := range cases {
		out := Sanitize(in)
		assert.NotEqual(t, in, out, "input %q should be rewritten", in)
		assert.Contains(t, out, "educational information")
	}
}

func TestSanitizeCreativeRequestIsReframed(t *testing.T) {
	out := Sanitize("Write me a story about dragons")
	assert.Equal(t, "Provide educational information about dragons.", out)

	out = Sanitize("please write a short poem about the moon and stars")
	assert.NotContains(t, strings.ToLower(out), "poem")
	assert.Contains(t, out, "moon")
}

func TestSanitizeInformationalPrefixStripped(t *testing.T) {
	out := Sanitize("tell me about cats")
	assert.Equal(t, "Provide educational information about cats.", out)
}

func TestSanitizeStripsNoise(t *testing.T) {
	out := Sanitize("Click here to buy now, this FREEBIE is a real DISCOUNT prize!!!")
	lower := strings.ToLower(out)
	for _, banned := range []string{"click", "buy", "prize", "discount", "!!!"} {
		assert.NotContains(t, lower, banned)
	}
	// ALL-CAPS 词（长度 ≥5）被移除
	assert.NotContains(t, out, "FREEBIE")
}

func TestSanitizeStripsPromotionalPhrases(t *testing.T) {
	// 直引号与弯引号（U+2019）都要命中
	for _, in := range []string{
		"Act now, don't miss this chance to see the northern lights",
		"Act now, don’t miss this chance to see the northern lights",
	} {
		out := Sanitize(in)
		lower := strings.ToLower(out)
		assert.NotContains(t, lower, "act now", "input %q", in)
		assert.NotContains(t, lower, "miss", "input %q", in)
		assert.Contains(t, out, "northern lights", "input %q", in)
	}
}

func TestSanitizeCollapsesRepeatedPeriods(t *testing.T) {
	out := Sanitize("I was waiting......... and nothing happened at all")
	assert.Contains(t, out, "waiting...")
	assert.NotContains(t, out, "....")
}

func TestSanitizeTruncatesLongInput(t *testing.T) {
	in := strings.Repeat("word ", 1000) // 5000 字符
	out := Sanitize(in)
	require.LessOrEqual(t, utf8.RuneCountInString(out), maxInputRunes+3)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestSanitizeLengthBoundIncludesEllipsis(t *testing.T) {
	out := Sanitize(strings.Repeat("a", 3000))
	assert.Equal(t, maxInputRunes+3, utf8.RuneCountInString(out))
}

func TestSanitizeNotIdempotent(t *testing.T) {
	// 设计不保证单遍幂等：去噪可能把长输入缩成短输入，
	// 第二遍会再次触发短输入包装。
	in := "HELLO cat!!!!!!!!!!"
	once := Sanitize(in)
	twice := Sanitize(once)
	assert.Equal(t, "cat", once)
	assert.NotEqual(t, once, twice)
}

func TestSanitizeAllNoiseFallsBack(t *testing.T) {
	// 全部内容都被去噪规则吃掉时仍不返回空
	out := Sanitize("WOWOW!!!!!!!!!!!!")
	assert.Equal(t, fallbackInput, out)
}
