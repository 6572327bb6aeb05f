package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
)

var reviewCmd = &cobra.Command{
	Use:   "review <file> [file...]",
	Short: "Review one or more source files",
	Long: `Review one or more source files with the configured model.

Examples:
  air review main.go
  air review --response-language en handler.ts service.ts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceConfig()
	if err != nil {
		return reportError(err)
	}
	if flagModel == "" {
		flagModel = ws.Model
	}

	req := contract.ReviewRequest{
		ResponseLanguage: resolve(flagResponseLanguage, ws.ResponseLanguage),
	}
	for _, path := range args {
		code, err := os.ReadFile(path)
		if err != nil {
			return reportError(fmt.Errorf("failed to read %s: %w", path, err))
		}
		req.Files = append(req.Files, contract.ReviewFilePayload{
			Filename: filepath.Base(path),
			Code:     string(code),
		})
	}

	svc, err := buildService()
	if err != nil {
		return reportError(err)
	}

	dimColor.Printf("reviewing %d file(s)...\n", len(req.Files))
	resp, err := svc.Review(cmd.Context(), req)
	if err != nil {
		return reportError(err)
	}

	titleColor.Printf("\n%s (%s, %d lines across %d files)\n",
		resp.Input.Filename, resp.Input.Language, resp.Input.TotalLineCount, resp.Input.FileCount)
	fmt.Println(resp.Summary)

	if len(resp.Issues) == 0 {
		successColor.Println("\nno issues found")
	} else {
		warnColor.Printf("\n%d issue(s):\n", len(resp.Issues))
		for _, issue := range resp.Issues {
			fmt.Printf("  [%s] line %d: %s: %s\n", issue.Severity, issue.Line, issue.Title, issue.Message)
		}
	}

	if resp.RefactoredCode != "" {
		titleColor.Println("\nrefactored code:")
		fmt.Println(resp.RefactoredCode)
	}
	if len(resp.SuggestedTests) > 0 {
		titleColor.Println("\nsuggested tests:")
		for _, test := range resp.SuggestedTests {
			fmt.Printf("  - %s\n", test)
		}
	}
	return nil
}
