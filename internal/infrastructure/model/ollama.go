// Package model 提供本地模型会话的 Ollama 实现
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"

	"z-ondevice-ai/internal/config"
	"z-ondevice-ai/internal/domain/task"
	"z-ondevice-ai/pkg/logger"
	"z-ondevice-ai/pkg/metrics"
)

// OllamaSession 包装一个本地 Ollama 实例作为生成模型会话。
//
// 单个已加载的模型上下文不适合并发请求，Generate 调用经由权重为 1
// 的信号量串行化：后到的提交排队等待而不是交错执行。可用性按请求
// 重新检查（Heartbeat + 模型存在性），不做进程级缓存。
type OllamaSession struct {
	client *api.Client
	cfg    config.ModelConfig
	sem    *semaphore.Weighted
}

// NewOllamaSession 创建 Ollama 会话
func NewOllamaSession(cfg config.ModelConfig) (*OllamaSession, error) {
	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid model host %q: %w", cfg.Host, err)
	}

	return &OllamaSession{
		client: api.NewClient(base, http.DefaultClient),
		cfg:    cfg,
		sem:    semaphore.NewWeighted(1),
	}, nil
}

// Available 检查本地实例可达且目标模型已安装
func (s *OllamaSession) Available(ctx context.Context) error {
	if err := s.client.Heartbeat(ctx); err != nil {
		metrics.ModelAvailable.Set(0)
		return &task.UnavailableError{Reason: fmt.Sprintf("ollama not reachable at %s", s.cfg.Host)}
	}
	if _, err := s.client.Show(ctx, &api.ShowRequest{Model: s.cfg.Name}); err != nil {
		metrics.ModelAvailable.Set(0)
		return &task.UnavailableError{Reason: fmt.Sprintf("model %s not installed", s.cfg.Name)}
	}
	metrics.ModelAvailable.Set(1)
	return nil
}

// Respond 发送提示词并聚合完整输出。
// format 非空时以 guided 模式生成（JSON Schema 约束）。
func (s *OllamaSession) Respond(ctx context.Context, prompt string, format json.RawMessage) (string, error) {
	// 串行化访问底层模型上下文；等待本身也受 ctx 约束
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return "", classifyCallError(err)
	}
	defer s.sem.Release(1)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  s.cfg.Name,
		Prompt: prompt,
		Stream: &stream,
		Format: format,
		Options: map[string]any{
			"temperature": s.cfg.Temperature,
			"num_predict": s.cfg.MaxTokens,
		},
	}
	if s.cfg.KeepAlive > 0 {
		req.KeepAlive = &api.Duration{Duration: s.cfg.KeepAlive}
	}

	start := time.Now()
	var sb strings.Builder
	err := s.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		if resp.Done {
			metrics.ModelTokensUsed.WithLabelValues(s.cfg.Name, "prompt").Add(float64(resp.PromptEvalCount))
			metrics.ModelTokensUsed.WithLabelValues(s.cfg.Name, "completion").Add(float64(resp.EvalCount))
		}
		return nil
	})
	metrics.ModelCallDuration.WithLabelValues(s.cfg.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ModelCallTotal.WithLabelValues(s.cfg.Name, "error").Inc()
		logger.Error(ctx, "model call failed", err, "model", s.cfg.Name)
		return "", classifyCallError(err)
	}

	metrics.ModelCallTotal.WithLabelValues(s.cfg.Name, "success").Inc()
	return sb.String(), nil
}

// classifyCallError 把底层调用错误归入闭合的类型变体
func classifyCallError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &task.TimeoutError{Cause: err}
	case isSafetyRejection(err):
		return &task.SafetyRejectedError{Detail: err.Error()}
	default:
		return &task.GenerationError{Cause: err}
	}
}

// isSafetyRejection 识别安全护栏拒绝。
// Ollama 不提供独立的错误类型，只能依赖错误文本，这是已知的脆弱点。
func isSafetyRejection(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "safety") || strings.Contains(msg, "guardrail")
}
