package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/youngjoone/ai-code-reviewer/internal/contract"
)

var (
	flagLanguage string
	flagStyle    string
)

var generateCmd = &cobra.Command{
	Use:   "generate <requirement...>",
	Short: "Generate code from a natural-language requirement",
	Long: `Generate code from a natural-language requirement.

Examples:
  air generate "reverse a string"
  air generate --language python --style explain "binary search over a sorted slice"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	generateCmd.Flags().StringVarP(&flagLanguage, "language", "l", "", "Target language (typescript, javascript, python, java, kotlin)")
	generateCmd.Flags().StringVarP(&flagStyle, "style", "s", "", "Generation style (clean, fast, explain)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceConfig()
	if err != nil {
		return reportError(err)
	}
	if flagModel == "" {
		flagModel = ws.Model
	}

	req := contract.GenerateRequest{
		Prompt:           strings.Join(args, " "),
		Language:         resolve(flagLanguage, ws.Language),
		Style:            resolve(flagStyle, ws.Style),
		ResponseLanguage: resolve(flagResponseLanguage, ws.ResponseLanguage),
	}

	svc, err := buildService()
	if err != nil {
		return reportError(err)
	}

	dimColor.Printf("generating %s code (%s style)...\n", resolve(req.Language, "typescript"), resolve(req.Style, "clean"))
	resp, err := svc.Generate(cmd.Context(), req)
	if err != nil {
		return reportError(err)
	}

	titleColor.Println(resp.Summary)
	fmt.Println()
	fmt.Println(resp.Code)

	if len(resp.Notes) > 0 {
		titleColor.Println("\nnotes:")
		for _, note := range resp.Notes {
			fmt.Printf("  - %s\n", note)
		}
	}
	return nil
}
