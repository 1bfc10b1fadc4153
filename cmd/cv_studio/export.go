package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/render"
	"github.com/jonathan/cv-studio/internal/storage"
	"github.com/jonathan/cv-studio/internal/validation"
)

var exportCommand = &cobra.Command{
	Use:   "export <json|html|pdf>",
	Short: "Export the CV document to a file",
	Long: `Exports the stored CV as a JSON snapshot, a standalone HTML page, or a
print-ready PDF. PDF export requires a Chrome or Chromium binary (set
CHROME_PATH if it is not on the default lookup path) and refuses to run
until the document has a name, a contact method, and at least one filled
section.`,
	Args: cobra.ExactArgs(1),
	RunE: exportCmd,
}

var (
	exportConfigPath string
	exportDataPath   string
	exportOutPath    string
)

func init() {
	exportCommand.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file")
	exportCommand.Flags().StringVar(&exportDataPath, "data", "", "Path to the persisted CV JSON file")
	exportCommand.Flags().StringVarP(&exportOutPath, "out", "o", "", "Output file (defaults to cv.<format>)")

	rootCmd.AddCommand(exportCommand)
}

func exportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, exportConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		cfg.DataPath = exportDataPath
	}
	if cfg.ChromePath != "" && os.Getenv("CHROME_PATH") == "" {
		os.Setenv("CHROME_PATH", cfg.ChromePath)
	}

	doc, err := storage.NewFileStore(cfg.DataPath).Load()
	if err != nil {
		return err
	}

	format := args[0]
	out := exportOutPath
	if out == "" {
		out = "cv." + format
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
	case "html":
		data, err = render.HTML(doc)
		if err != nil {
			return err
		}
	case "pdf":
		if err := validation.CheckExportReady(doc); err != nil {
			return err
		}
		data, err = render.PDF(cmd.Context(), doc)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown export format %q (expected json, html, or pdf)", format)
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("Exported %s\n", out)
	return nil
}
