package generation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"z-ondevice-ai/internal/domain/task"
)

func TestClassifyTypedVariants(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unavailable", &task.UnavailableError{Reason: "ollama not reachable"}, MsgModelUnavailable},
		{"safety", &task.SafetyRejectedError{Detail: "blocked"}, MsgSafety},
		{"schema", &task.SchemaMismatchError{Schema: "content_classification_v1", Cause: errors.New("missing confidence")}, MsgSchemaMismatch},
		{"timeout", &task.TimeoutError{Cause: errors.New("deadline exceeded")}, MsgTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestClassifyTypedVariantsWrapped(t *testing.T) {
	// 包装后的类型变体仍然按类型匹配
	err := fmt.Errorf("pipeline: %w", &task.UnavailableError{})
	assert.Equal(t, MsgModelUnavailable, Classify(err))
}

func TestClassifyOpaqueSubstringOrder(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"safety", errors.New("request blocked by safety system"), MsgSafety},
		{"guardrail", errors.New("model guardrail triggered"), MsgSafety},
		{"inappropriate", errors.New("inappropriate content detected"), MsgInappropriate},
		{"policy", errors.New("violates content policy"), MsgPolicy},
		{"rate limit", errors.New("rate limit exceeded"), MsgRateLimit},
		{"quota", errors.New("quota exhausted for today"), MsgRateLimit},
		{"default", errors.New("something went sideways"), MsgGeneric},
		// 先命中先赢：同时包含 safety 与 policy 时归为 safety
		{"safety beats policy", errors.New("safety check failed: policy violation"), MsgSafety},
		{"inappropriate beats policy", errors.New("inappropriate per policy"), MsgInappropriate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.NotEmpty(t, Classify(errors.New("")))
	assert.NotEmpty(t, Classify(errors.New("x")))
}
