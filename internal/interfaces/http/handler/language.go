package handler

import (
	"z-ondevice-ai/internal/application/generation"
	"z-ondevice-ai/internal/interfaces/http/dto"

	"github.com/gin-gonic/gin"
)

// LanguageHandler 语言检测处理器
type LanguageHandler struct {
	detector *generation.LanguageDetector
}

// NewLanguageHandler 创建语言检测处理器
func NewLanguageHandler(detector *generation.LanguageDetector) *LanguageHandler {
	return &LanguageHandler{
		detector: detector,
	}
}

// Detect 检测文本语言
// @Summary 检测文本语言
// @Description 离线检测，无法判定时返回 "unknown" 而非错误
// @Tags Language
// @Accept json
// @Produce json
// @Param request body dto.LanguageDetectionRequest true "检测请求"
// @Success 200 {object} dto.Response[dto.LanguageDetectionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/language/detections [post]
func (h *LanguageHandler) Detect(c *gin.Context) {
	var req dto.LanguageDetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto.Success(c, dto.LanguageDetectionResponse{
		Language: h.detector.Detect(req.Text),
	})
}
