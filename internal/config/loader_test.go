package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvWithDefault(t *testing.T) {
	t.Setenv("CFG_TEST_SET", "from-env")

	cases := []struct {
		in   string
		want string
	}{
		{"${CFG_TEST_SET:fallback}", "from-env"},
		{"${CFG_TEST_UNSET:fallback}", "fallback"},
		{"${CFG_TEST_UNSET:}", ""},
		// 无默认值且未定义时原样保留
		{"${CFG_TEST_UNSET}", "${CFG_TEST_UNSET}"},
		{"host: ${CFG_TEST_SET:x}:8080", "host: from-env:8080"},
		{"plain text", "plain text"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, expandEnv(tc.in), "input %q", tc.in)
	}
}

func TestExpandEnvEmptyValueBeatsDefault(t *testing.T) {
	// 显式设置为空串的变量优先于默认值
	t.Setenv("CFG_TEST_EMPTY", "")
	assert.Equal(t, "", expandEnv("${CFG_TEST_EMPTY:fallback}"))
}
