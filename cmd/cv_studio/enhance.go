package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/enhance"
	"github.com/jonathan/cv-studio/internal/llm"
)

var enhanceCommand = &cobra.Command{
	Use:   "enhance <summary|experience>",
	Short: "Rewrite a CV text field with AI assistance",
	Long: `Rewrites a summary or experience description into more professional,
ATS-friendly wording and prints the result. Pass the current text with --text
to improve it, or leave it empty and supply --title/--company to draft new
content from scratch. The stored document is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: enhanceCmd,
}

var (
	enhanceConfigPath string
	enhanceAPIKey     string
	enhanceText       string
	enhanceJobTitle   string
	enhanceCompany    string
)

func init() {
	enhanceCommand.Flags().StringVar(&enhanceConfigPath, "config", "", "Path to config.json file")
	enhanceCommand.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")
	enhanceCommand.Flags().StringVar(&enhanceText, "text", "", "Current text to improve (omit to draft from scratch)")
	enhanceCommand.Flags().StringVar(&enhanceJobTitle, "title", "", "Job title context for experience rewrites")
	enhanceCommand.Flags().StringVar(&enhanceCompany, "company", "", "Company context for experience rewrites")

	rootCmd.AddCommand(enhanceCommand)
}

func enhanceCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, enhanceConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = enhanceAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("enhancement requires an API key; set GEMINI_API_KEY or pass --api-key")
	}

	field := enhance.Field(args[0])
	if !field.Valid() {
		return &enhance.UnknownFieldError{Field: field}
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := enhance.NewEnhancer(client).Enhance(ctx, enhance.Request{
		Field:    field,
		Text:     enhanceText,
		JobTitle: enhanceJobTitle,
		Company:  enhanceCompany,
	})
	if err != nil {
		return err
	}

	fmt.Println(result)
	return nil
}
