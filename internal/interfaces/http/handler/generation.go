// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"

	"z-ondevice-ai/internal/application/generation"
	"z-ondevice-ai/internal/domain/task"
	"z-ondevice-ai/internal/interfaces/http/dto"
	apperrors "z-ondevice-ai/pkg/errors"

	"github.com/gin-gonic/gin"
)

// GenerationHandler 生成任务处理器
type GenerationHandler struct {
	orchestrator *generation.Orchestrator
}

// NewGenerationHandler 创建生成任务处理器
func NewGenerationHandler(orchestrator *generation.Orchestrator) *GenerationHandler {
	return &GenerationHandler{
		orchestrator: orchestrator,
	}
}

// Generate 执行一次生成任务
// @Summary 执行生成任务
// @Description 同步执行净化、提示词构建、模型调用与解码，返回文本或结构化结果
// @Tags Generations
// @Accept json
// @Produce json
// @Param request body dto.GenerationRequest true "生成请求"
// @Success 200 {object} dto.Response[dto.GenerationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 504 {object} dto.ErrorResponse
// @Router /v1/generations [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	domainReq := req.ToDomain()
	if err := domainReq.Validate(); err != nil {
		dto.BadRequest(c, err.Error())
		return
	}

	// Submit 保证恰好投递一次终态，这里同步等待
	outcome := <-h.orchestrator.Submit(c.Request.Context(), domainReq)

	if outcome.Failed() {
		dto.Fail(c, appErrorFor(outcome.Err, outcome.UserMessage))
		return
	}

	dto.Success(c, dto.FromOutput(outcome.Output, outcome.Duration.Milliseconds()))
}

// appErrorFor 把生成失败映射为带错误码的应用错误，
// HTTP 状态由错误码决定：模型不可用 503、超时 504、其余 422
func appErrorFor(err error, userMessage string) *apperrors.AppError {
	code := apperrors.CodeGenerationFailed

	var (
		unavailable *task.UnavailableError
		safety      *task.SafetyRejectedError
		timeout     *task.TimeoutError
		mismatch    *task.SchemaMismatchError
	)
	switch {
	case errors.As(err, &unavailable):
		code = apperrors.CodeModelUnavailable
	case errors.As(err, &safety):
		code = apperrors.CodeSafetyRejected
	case errors.As(err, &timeout):
		code = apperrors.CodeGenerationTimeout
	case errors.As(err, &mismatch):
		code = apperrors.CodeSchemaMismatch
	}

	return apperrors.Wrap(err, code, userMessage)
}

// State 返回编排器可观测状态
// @Summary 查询编排器状态
// @Tags Generations
// @Produce json
// @Success 200 {object} dto.Response[dto.GenerationState]
// @Router /v1/generations/state [get]
func (h *GenerationHandler) State(c *gin.Context) {
	dto.Success(c, dto.GenerationState{
		IsProcessing: h.orchestrator.IsProcessing(),
		LastError:    h.orchestrator.LastError(),
	})
}
