// Command air is the one-shot CLI: review local files or generate code from
// a requirement without running the HTTP service. Runs are recorded in an
// in-memory store for the lifetime of the invocation.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/youngjoone/ai-code-reviewer/internal/config"
	"github.com/youngjoone/ai-code-reviewer/internal/contract"
	"github.com/youngjoone/ai-code-reviewer/internal/llm"
	"github.com/youngjoone/ai-code-reviewer/internal/logger"
	"github.com/youngjoone/ai-code-reviewer/internal/prompt"
	"github.com/youngjoone/ai-code-reviewer/internal/service"
	"github.com/youngjoone/ai-code-reviewer/internal/storage"
)

var (
	flagModel            string
	flagResponseLanguage string
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "air",
	Short: "air reviews source code and generates code with an LLM.",
	Long: `air is the command-line interface for ai-code-reviewer.

It runs the same review/generate pipeline as the HTTP service against the
configured Gemini model, without needing a database.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Override the configured model name")
	rootCmd.PersistentFlags().StringVarP(&flagResponseLanguage, "response-language", "r", "", "Response language (ko or en)")
}

// buildService assembles the pipeline for a one-shot invocation.
func buildService() (*service.Service, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if flagModel != "" {
		cfg.GeminiModel = flagModel
	}

	log := logger.NewLogger(logger.Config{Level: slog.LevelWarn, Format: "text"}, os.Stderr)

	schemas, err := contract.LoadResultSchemas()
	if err != nil {
		return nil, err
	}
	prompts, err := prompt.NewBuilder(schemas)
	if err != nil {
		return nil, err
	}
	client, err := llm.NewGeminiClient(llm.Config{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
		Timeout: cfg.RequestTimeout,
	}, nil, log)
	if err != nil {
		return nil, err
	}

	policy := llm.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, Delay: cfg.RetryDelay}
	return service.New(client, policy, prompts, schemas, storage.NewMemoryStore(), log), nil
}

// reportError prints a failure the same way for both commands.
func reportError(err error) error {
	errorColor.Fprintf(os.Stderr, "error: %v\n", err)
	return fmt.Errorf("command failed")
}
