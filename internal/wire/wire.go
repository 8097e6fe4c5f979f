// Package wire 提供依赖装配
package wire

import (
	"context"

	"z-ondevice-ai/internal/application/generation"
	"z-ondevice-ai/internal/config"
	"z-ondevice-ai/internal/infrastructure/model"
	"z-ondevice-ai/internal/interfaces/http/handler"
	"z-ondevice-ai/internal/interfaces/http/router"
	"z-ondevice-ai/internal/workflow/prompt"
	"z-ondevice-ai/pkg/logger"

	"github.com/gin-gonic/gin"
)

// App 装配完成的应用
type App struct {
	Router       *router.Router
	Session      generation.ModelSession
	Orchestrator *generation.Orchestrator
	Detector     *generation.LanguageDetector
}

// Engine 返回 HTTP 引擎
func (a *App) Engine() *gin.Engine {
	return a.Router.Engine()
}

// InitializeApp 装配全部依赖
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	session, err := model.NewOllamaSession(cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	// 启动时探测一次可用性，仅用于日志；每次请求仍会重新检查
	if err := session.Available(ctx); err != nil {
		logger.Warn(ctx, "model not available at startup", "reason", err.Error())
	}

	prompts := prompt.NewRegistry()
	orchestrator := generation.NewOrchestrator(session, prompts)
	detector := generation.NewLanguageDetector(cfg.Language.Candidates)

	r := router.New(cfg, router.Handlers{
		Health:     handler.NewHealthHandler(session),
		Generation: handler.NewGenerationHandler(orchestrator),
		Language:   handler.NewLanguageHandler(detector),
	})

	app := &App{
		Router:       r,
		Session:      session,
		Orchestrator: orchestrator,
		Detector:     detector,
	}

	cleanup := func() {}
	return app, cleanup, nil
}
