package wire

import (
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/youngjoone/ai-code-reviewer/internal/app"
	"github.com/youngjoone/ai-code-reviewer/internal/config"
	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/db"
	"github.com/youngjoone/ai-code-reviewer/internal/llm"
	"github.com/youngjoone/ai-code-reviewer/internal/logger"
	"github.com/youngjoone/ai-code-reviewer/internal/prompt"
	"github.com/youngjoone/ai-code-reviewer/internal/server"
	"github.com/youngjoone/ai-code-reviewer/internal/service"
	"github.com/youngjoone/ai-code-reviewer/internal/storage"
)

// AppSet is the wire provider set assembling the whole application.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	service.New,
	config.LoadConfig,
	contract.LoadResultSchemas,
	prompt.NewBuilder,
	db.NewDatabase,
	storage.NewStore,
	provideLogger,
	provideSchemaSource,
	provideProviderClient,
	provideRetryPolicy,
	provideDBConfig,
	provideOperations,
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stdout)
}

func provideSchemaSource(schemas *contract.ResultSchemas) prompt.SchemaSource {
	return schemas
}

func provideProviderClient(cfg *config.Config, log *slog.Logger) (llm.Client, error) {
	return llm.NewGeminiClient(llm.Config{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.RequestTimeout,
	}, nil, log)
}

func provideRetryPolicy(cfg *config.Config) llm.RetryPolicy {
	policy := llm.DefaultRetryPolicy()
	if cfg.RetryMaxAttempts > 0 {
		policy.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryDelay > 0 {
		policy.Delay = cfg.RetryDelay
	}
	return policy
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return cfg.Database
}

func provideOperations(svc *service.Service) service.Operations {
	return svc
}
