package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"z-ondevice-ai/internal/application/generation"
	"z-ondevice-ai/internal/domain/task"
	"z-ondevice-ai/internal/interfaces/http/dto"
	"z-ondevice-ai/internal/workflow/prompt"
)

// stubSession 可注入失败的模型会话测试替身
type stubSession struct {
	availableErr error
	response     string
	respondErr   error
}

func (s *stubSession) Available(ctx context.Context) error { return s.availableErr }

func (s *stubSession) Respond(ctx context.Context, p string, format json.RawMessage) (string, error) {
	if s.respondErr != nil {
		return "", s.respondErr
	}
	return s.response, nil
}

func newGenerationEngine(s *stubSession) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewGenerationHandler(generation.NewOrchestrator(s, prompt.NewRegistry()))
	engine := gin.New()
	engine.POST("/v1/generations", h.Generate)
	engine.GET("/v1/generations/state", h.State)
	return engine
}

func postGeneration(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/generations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGenerateSuccess(t *testing.T) {
	engine := newGenerationEngine(&stubSession{response: "Le renard brun saute."})

	w := postGeneration(t, engine, `{"task": "translation", "input": "The quick brown fox jumps", "target_language": "French"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Code int                    `json:"code"`
		Data dto.GenerationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "text", resp.Data.Type)
	assert.Equal(t, "Le renard brun saute.", resp.Data.Text)
}

func TestGenerateModelUnavailableMapsTo503(t *testing.T) {
	engine := newGenerationEngine(&stubSession{
		availableErr: &task.UnavailableError{Reason: "ollama not reachable"},
	})

	w := postGeneration(t, engine, `{"task": "text_generation", "input": "Describe the weather in the mountains today"}`)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeErrorBody(t, w)
	assert.Equal(t, "5001", resp.ErrorCode)
	assert.Equal(t, generation.MsgModelUnavailable, resp.Message)
}

func TestGenerateTimeoutMapsTo504(t *testing.T) {
	engine := newGenerationEngine(&stubSession{
		respondErr: &task.TimeoutError{Cause: context.DeadlineExceeded},
	})

	w := postGeneration(t, engine, `{"task": "text_generation", "input": "Describe the weather in the mountains today"}`)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
	resp := decodeErrorBody(t, w)
	assert.Equal(t, "4004", resp.ErrorCode)
	assert.Equal(t, generation.MsgTimeout, resp.Message)
}

func TestGenerateSafetyRejectionMapsTo422(t *testing.T) {
	engine := newGenerationEngine(&stubSession{
		respondErr: &task.SafetyRejectedError{Detail: "blocked"},
	})

	w := postGeneration(t, engine, `{"task": "text_generation", "input": "Describe the weather in the mountains today"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeErrorBody(t, w)
	assert.Equal(t, "4003", resp.ErrorCode)
}

func TestGenerateSchemaMismatchMapsTo422(t *testing.T) {
	// 缺少 required 的 confidence 字段
	engine := newGenerationEngine(&stubSession{
		response: `{"category": "news", "sentiment": "neutral", "topics": ["economy"]}`,
	})

	w := postGeneration(t, engine, `{"task": "content_classification", "input": "The market rallied today after the announcement"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeErrorBody(t, w)
	assert.Equal(t, "4002", resp.ErrorCode)
	assert.Equal(t, generation.MsgSchemaMismatch, resp.Message)
}

func TestGenerateInvalidBodyMapsTo400(t *testing.T) {
	engine := newGenerationEngine(&stubSession{})

	// 缺少 required 的 task 字段
	w := postGeneration(t, engine, `{"input": "hello"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeErrorBody(t, w)
	assert.Equal(t, "1001", resp.ErrorCode)
}

func TestStateAfterFailure(t *testing.T) {
	engine := newGenerationEngine(&stubSession{
		availableErr: &task.UnavailableError{},
	})

	w := postGeneration(t, engine, `{"task": "text_generation", "input": "Describe the weather in the mountains today"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/generations/state", nil)
	sw := httptest.NewRecorder()
	engine.ServeHTTP(sw, req)

	require.Equal(t, http.StatusOK, sw.Code)
	var resp struct {
		Data dto.GenerationState `json:"data"`
	}
	require.NoError(t, json.Unmarshal(sw.Body.Bytes(), &resp))
	assert.False(t, resp.Data.IsProcessing)
	assert.Equal(t, generation.MsgModelUnavailable, resp.Data.LastError)
}
