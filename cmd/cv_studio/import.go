package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/config"
	"github.com/jonathan/cv-studio/internal/extraction"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/normalize"
	"github.com/jonathan/cv-studio/internal/storage"
)

var importCommand = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a profile export into the CV document",
	Long: `Imports CV data from a LinkedIn-style export: a CSV section file, a full
export ZIP archive, a JSON snapshot, or an HTML/PDF profile (the latter two
require a Gemini API key for extraction).

By default the imported data is merged into the current document; --replace
swaps the document wholesale.`,
	Args: cobra.ExactArgs(1),
	RunE: importCmd,
}

var (
	importConfigPath string
	importReplace    bool
	importDataPath   string
	importAPIKey     string
)

func init() {
	importCommand.Flags().StringVar(&importConfigPath, "config", "", "Path to config.json file")
	importCommand.Flags().BoolVar(&importReplace, "replace", false, "Replace the document instead of merging")
	importCommand.Flags().StringVar(&importDataPath, "data", "", "Path to the persisted CV JSON file")
	importCommand.Flags().StringVar(&importAPIKey, "api-key", "", "Gemini API Key (for HTML/PDF imports)")

	rootCmd.AddCommand(importCommand)
}

func importCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, importConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.DataPath = importDataPath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = importAPIKey
	}

	name := args[0]
	data, err := os.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	partial, failed, err := parseImport(cmd.Context(), cfg, name, data)
	if err != nil {
		return err
	}
	for _, source := range failed {
		fmt.Fprintf(os.Stderr, "Warning: skipped unreadable archive member: %s\n", source)
	}

	store := storage.NewFileStore(cfg.DataPath)
	doc, err := store.Load()
	if err != nil {
		return err
	}

	if importReplace {
		doc = normalize.Normalize(partial)
	} else {
		doc = normalize.Merge(doc, partial)
	}

	if err := store.Save(doc); err != nil {
		return err
	}

	mode := "merged into"
	if importReplace {
		mode = "replaced"
	}
	fmt.Printf("Imported %s: %s %s\n", name, mode, cfg.DataPath)
	return nil
}

func parseImport(ctx context.Context, cfg config.Config, name string, data []byte) (normalize.Partial, []string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		partial, err := normalize.ParseCSV(name, string(data))
		return partial, nil, err
	case ".json":
		partial, err := normalize.ParseJSONDocument(name, data)
		return partial, nil, err
	case ".zip":
		result, err := normalize.ParseArchive(data)
		if err != nil {
			return normalize.Partial{}, nil, err
		}
		return result.Partial, result.Failed(), nil
	case ".html", ".htm", ".pdf":
		extractor, closeClient, err := newExtractor(ctx, cfg)
		if err != nil {
			return normalize.Partial{}, nil, err
		}
		defer closeClient()
		if strings.HasSuffix(strings.ToLower(name), ".pdf") {
			partial, err := extractor.ExtractFromPDF(ctx, data)
			return partial, nil, err
		}
		partial, err := extractor.ExtractFromHTML(ctx, string(data))
		return partial, nil, err
	default:
		return normalize.Partial{}, nil, &normalize.UnsupportedFormatError{Name: name}
	}
}

func newExtractor(ctx context.Context, cfg config.Config) (*extraction.Extractor, func(), error) {
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("HTML/PDF imports require an API key; set GEMINI_API_KEY or pass --api-key")
	}
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	return extraction.NewExtractor(client), func() { _ = client.Close() }, nil
}
