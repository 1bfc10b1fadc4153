package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/ats"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/storage"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze <job-description-file>",
	Short: "Score the CV against a job description",
	Long: `Runs an ATS-style match analysis of the stored CV against a job
description read from the given file (use "-" to read from stdin). Prints a
match score, keyword coverage, and actionable feedback.`,
	Args: cobra.ExactArgs(1),
	RunE: analyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeDataPath   string
	analyzeAPIKey     string
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCommand.Flags().StringVar(&analyzeDataPath, "data", "", "Path to the persisted CV JSON file")
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCommand)
}

func analyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, analyzeConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.DataPath = analyzeDataPath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("analysis requires an API key; set GEMINI_API_KEY or pass --api-key")
	}

	jobDescription, err := readInput(args[0])
	if err != nil {
		return err
	}

	doc, err := storage.NewFileStore(cfg.DataPath).Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	report, err := ats.NewAnalyzer(client).Analyze(ctx, doc, jobDescription)
	if err != nil {
		return err
	}

	fmt.Printf("Match score: %d/100\n\n", report.MatchScore)
	fmt.Printf("%s\n", report.Summary)
	printKeywordList("Matching keywords", report.MatchingKeywords)
	printKeywordList("Missing keywords", report.MissingKeywords)
	if len(report.ActionableFeedback) > 0 {
		fmt.Printf("\nSuggestions:\n")
		for _, item := range report.ActionableFeedback {
			fmt.Printf("  - %s\n", item)
		}
	}
	return nil
}

func printKeywordList(label string, keywords []string) {
	if len(keywords) == 0 {
		return
	}
	fmt.Printf("\n%s: %s\n", label, strings.Join(keywords, ", "))
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}
