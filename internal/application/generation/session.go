package generation

import (
	"context"
	"encoding/json"
)

// ModelSession 定义编排层对本地生成模型的最小依赖（port）。
// 由基础设施层提供具体实现（例如 Ollama 会话）。
type ModelSession interface {
	// Available 报告模型当前是否可用。
	// 可用性必须按请求重新检查，不允许进程级缓存：
	// 本地模型可能因资源压力等原因在进程生命周期内变得不可用。
	Available(ctx context.Context) error

	// Respond 发送提示词并返回完整输出。
	// format 非空时以 guided 模式调用（JSON Schema 约束输出）。
	// 失败以 task 包的类型变体返回：TimeoutError、SafetyRejectedError
	// 或 GenerationError。
	Respond(ctx context.Context, prompt string, format json.RawMessage) (string, error)
}
