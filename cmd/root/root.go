// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rmoreira/extrato-csv/internal/categorizer"
	"rmoreira/extrato-csv/internal/common"
	"rmoreira/extrato-csv/internal/config"
	"rmoreira/extrato-csv/internal/currencyutils"
	"rmoreira/extrato-csv/internal/logging"
	"rmoreira/extrato-csv/internal/normalizer"
	"rmoreira/extrato-csv/internal/reader"
	"rmoreira/extrato-csv/internal/store"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "extrato-csv",
		Short: "A CLI tool to parse bank statements and categorize transactions.",
		Long: `extrato-csv parses bank statement files (CSV, XLSX, OFX), normalizes
their columns and categorizes every transaction through a cache-first
pipeline with LLM and regex strategies.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to extrato-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize and configure logging
			config.LoadEnv()
			Log = config.ConfigureLogging()

			// Propagate the configured logger to every package
			adapted := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefaultLogger(adapted)
			reader.SetLogger(adapted)
			normalizer.SetLogger(adapted)
			currencyutils.SetLogger(adapted)
			categorizer.SetLogger(adapted)
			store.SetLogger(adapted)
			common.SetLogger(adapted)

			// Ensure CSV delimiter is updated after env variables are loaded
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			}
		},
	}

	// Specific parse command flags
	Output      string
	Method      string
	Model       string
	BlockSize   int
	LLMEnhanced bool
	CachePath   string

	// Specific batch command flags
	InputDir  string
	OutputDir string

	// Specific categorize command flags
	Description string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Output, "output", "o", "", "Output CSV file for the categorized ledger")
}
