// Package batch handles batch processing of statement directories
package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rmoreira/extrato-csv/cmd/root"
	"rmoreira/extrato-csv/internal/common"
	"rmoreira/extrato-csv/internal/config"
	"rmoreira/extrato-csv/internal/models"
)

// Statement extensions the batch command picks up from the input directory.
var supportedExtensions = map[string]bool{
	".csv":  true,
	".txt":  true,
	".xlsx": true,
	".xls":  true,
	".ofx":  true,
}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Process every statement in a directory",
	Long: `Process all supported statement files (CSV, TXT, XLSX, XLS, OFX) in the
input directory and write one JSON summary per statement to the output
directory. A statement that fails produces an error payload instead of
aborting the whole run.

Example:
  extrato-csv batch -i extratos/ -d resultados/`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.InputDir, "input", "i", "", "Directory holding statement files")
	Cmd.Flags().StringVarP(&root.OutputDir, "dest", "d", "", "Directory for the JSON summaries")
	for _, flag := range []string{"input", "dest"} {
		if err := Cmd.MarkFlagRequired(flag); err != nil {
			root.Log.WithError(err).Error("Failed to mark flag required")
		}
	}
}

func batchFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Batch command called")

	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.WithError(err).Error("Failed to initialize configuration")
		os.Exit(1)
	}

	if err := os.MkdirAll(root.OutputDir, 0750); err != nil {
		root.Log.WithError(err).Error("Failed to create output directory")
		os.Exit(1)
	}

	entries, err := os.ReadDir(root.InputDir)
	if err != nil {
		root.Log.WithError(err).Error("Failed to read input directory")
		os.Exit(1)
	}

	processed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		inputPath := filepath.Join(root.InputDir, entry.Name())
		outputPath := filepath.Join(root.OutputDir, outputName(entry.Name()))

		summary, err := common.ProcessStatement(cmd.Context(), inputPath, cfg)
		if err != nil {
			root.Log.WithError(err).WithField("file", entry.Name()).Error("Failed to process statement")
			failed++
			if werr := writeJSON(outputPath, models.NewErrorSummary(err)); werr != nil {
				root.Log.WithError(werr).Error("Failed to write error payload")
			}
			continue
		}

		if err := writeJSON(outputPath, summary); err != nil {
			root.Log.WithError(err).Error("Failed to write summary")
			failed++
			continue
		}
		processed++
	}

	if processed == 0 && failed == 0 {
		root.Log.Warn("No supported files found in input directory")
		return
	}
	root.Log.Info(fmt.Sprintf("Batch processing completed. %d processed, %d failed.", processed, failed))
}

func outputName(inputName string) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return base + ".json"
}

func writeJSON(path string, payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
