// Package app holds the assembled application and its lifecycle.
package app

import (
	"log/slog"

	"github.com/youngjoone/ai-code-reviewer/internal/config"
	"github.com/youngjoone/ai-code-reviewer/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp bundles the wired components into a runnable application.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	return &App{cfg: cfg, server: srv, logger: logger}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting ai-code-reviewer",
		"server_port", a.cfg.ServerPort,
		"model", a.cfg.GeminiModel,
	)
	return a.server.Start()
}

// Stop shuts the application down cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down ai-code-reviewer")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}
	a.logger.Info("ai-code-reviewer stopped")
	return nil
}
