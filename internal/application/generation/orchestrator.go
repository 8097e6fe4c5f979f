package generation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"z-ondevice-ai/internal/domain/task"
	"z-ondevice-ai/internal/workflow/prompt"
	"z-ondevice-ai/internal/workflow/schema"
	"z-ondevice-ai/pkg/logger"
	"z-ondevice-ai/pkg/metrics"
	"z-ondevice-ai/pkg/tracer"
)

// Outcome 一次提交的终态。每次 Submit 恰好投递一个 Outcome，
// 成功时 Output 非空，失败时携带归类后的用户提示。
type Outcome struct {
	Output      *task.Output
	UserMessage string
	Err         error // 底层错误，仅用于日志/调试，不直接暴露给调用方
	Duration    time.Duration
}

// Failed 该结果是否为失败终态
func (o Outcome) Failed() bool { return o.Err != nil }

// Orchestrator 生成任务编排器。
//
// 状态机 Idle -> Processing -> Idle：IsProcessing 在"接受请求"到
// "投递终态"的区间内为真（重叠提交按在途计数处理），LastError 在
// 每次提交开始时清空、仅在失败路径上写入。状态读写由内部锁保护，
// 调用方无需额外同步。
type Orchestrator struct {
	session ModelSession
	prompts *prompt.Registry

	mu        sync.Mutex
	inFlight  int
	lastError string
}

// NewOrchestrator 创建编排器；session 为共享的本地模型会话句柄
func NewOrchestrator(session ModelSession, prompts *prompt.Registry) *Orchestrator {
	return &Orchestrator{
		session: session,
		prompts: prompts,
	}
}

// Submit 接受一次生成请求并异步执行流水线：
// 净化 -> 提示词构建 -> 模型调用 -> （结构化任务）解码。
//
// 返回的通道缓冲为 1，恰好投递一次终态后关闭；成功与失败路径都
// 保证投递，不存在静默丢弃。不支持中途取消；ctx 的截止时间由底层
// 模型调用尊重。重叠提交会被接受并可能并发执行，完成顺序不保证
// 与提交顺序一致。
func (o *Orchestrator) Submit(ctx context.Context, req *task.GenerationRequest) <-chan Outcome {
	ch := make(chan Outcome, 1)
	o.begin()

	submissionID := uuid.New().String()
	ctx = logger.WithContext(ctx, logger.RequestIDKey, submissionID)
	if req != nil {
		ctx = logger.WithContext(ctx, logger.TaskKindKey, string(req.Kind))
	}

	go func() {
		defer close(ch)
		start := time.Now()

		out, err := o.process(ctx, req)
		elapsed := time.Since(start)

		if err != nil {
			msg := Classify(err)
			o.finish(msg)
			if req != nil {
				metrics.GenerationTotal.WithLabelValues(string(req.Kind), "error").Inc()
			}
			logger.Error(ctx, "generation failed", err, "duration_ms", elapsed.Milliseconds())
			ch <- Outcome{UserMessage: msg, Err: err, Duration: elapsed}
			return
		}

		o.finish("")
		metrics.GenerationTotal.WithLabelValues(string(req.Kind), "success").Inc()
		metrics.GenerationDuration.WithLabelValues(string(req.Kind)).Observe(elapsed.Seconds())
		logger.Info(ctx, "generation completed", "duration_ms", elapsed.Milliseconds())
		ch <- Outcome{Output: out, Duration: elapsed}
	}()

	return ch
}

// process 执行单次生成流水线，所有失败以类型变体返回
func (o *Orchestrator) process(ctx context.Context, req *task.GenerationRequest) (*task.Output, error) {
	ctx, span := tracer.Start(ctx, "generation.process")
	defer span.End()

	if req == nil {
		return nil, &task.GenerationError{Cause: errors.New("request is nil")}
	}
	if err := req.Validate(); err != nil {
		return nil, &task.GenerationError{Cause: err}
	}

	// 可用性按请求检查，不发送任何提示词给不可用的模型
	if err := o.session.Available(ctx); err != nil {
		var ue *task.UnavailableError
		if errors.As(err, &ue) {
			return nil, err
		}
		return nil, &task.UnavailableError{Reason: err.Error()}
	}

	clean := Sanitize(req.RawInput)
	if clean != strings.TrimSpace(req.RawInput) {
		// 重写会丢弃部分用户意图，至少让它可观测
		logger.Warn(ctx, "sanitizer rewrote input")
	}

	id, err := prompt.ForRequest(req.Kind, req.CreativeType)
	if err != nil {
		return nil, &task.GenerationError{Cause: err}
	}
	p, err := o.prompts.Render(id, prompt.Input{
		Input:          clean,
		TargetLanguage: req.TargetLanguage,
	})
	if err != nil {
		return nil, &task.GenerationError{Cause: err}
	}

	schemaID, structured := schema.ForKind(req.Kind)
	var format []byte
	if structured {
		format = schema.Format(schemaID)
	}

	raw, err := o.session.Respond(ctx, p, format)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if structured {
		return schema.Decode(schemaID, raw)
	}
	return task.TextOutput(strings.TrimSpace(raw)), nil
}

// IsProcessing 是否有在途请求
func (o *Orchestrator) IsProcessing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight > 0
}

// LastError 最近一次失败的用户提示，空串表示无错误
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// begin 接受请求：清空上次错误并抬高在途计数
func (o *Orchestrator) begin() {
	o.mu.Lock()
	o.inFlight++
	o.lastError = ""
	o.mu.Unlock()
	metrics.GenerationInFlight.Inc()
}

// finish 投递终态前收尾；msg 非空表示失败
func (o *Orchestrator) finish(msg string) {
	o.mu.Lock()
	o.inFlight--
	if msg != "" {
		o.lastError = msg
	}
	o.mu.Unlock()
	metrics.GenerationInFlight.Dec()
}
