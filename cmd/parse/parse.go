// Package parse handles the statement parsing command
package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rmoreira/extrato-csv/cmd/root"
	"rmoreira/extrato-csv/internal/common"
	"rmoreira/extrato-csv/internal/config"
	"rmoreira/extrato-csv/internal/models"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse and categorize a bank statement",
	Long: `Parse a bank statement file (CSV, XLSX or OFX), categorize every
transaction and print the run summary as JSON. The summary carries the
categorized ledger, transaction counts and per-category totals.`,
	Args: cobra.ExactArgs(1),
	Run:  parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Method, "method", "m", "", "Categorization method: 'regex' or 'llm'")
	Cmd.Flags().StringVar(&root.Model, "model", "", "Model used by the llm method")
	Cmd.Flags().IntVarP(&root.BlockSize, "block-size", "b", 0, "Descriptions per LLM request")
	Cmd.Flags().BoolVar(&root.LLMEnhanced, "llm-enhanced", false, "Run the LLM refinement pass after categorization")
	Cmd.Flags().StringVar(&root.CachePath, "cache", "", "Path of the category cache file")
}

func parseFunc(cmd *cobra.Command, args []string) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		fail(err)
	}

	summary, err := common.ProcessStatement(cmd.Context(), args[0], cfg)
	if err != nil {
		root.Log.WithError(err).Error("Failed to process statement")
		fail(err)
	}

	if root.Output != "" {
		if err := common.WriteTransactionsToCSV(summary.Transacoes, root.Output); err != nil {
			root.Log.WithError(err).Error("Failed to write CSV ledger")
			fail(err)
		}
	}

	printJSON(summary)
}

// buildConfig loads the hierarchical configuration and applies command-line
// flag overrides on top.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("method") {
		if root.Method != models.MethodRegex && root.Method != models.MethodLLM {
			return nil, fmt.Errorf("invalid categorization method: %s (must be 'regex' or 'llm')", root.Method)
		}
		cfg.Categorization.Method = root.Method
	}
	if cmd.Flags().Changed("model") {
		cfg.AI.Model = root.Model
	}
	if cmd.Flags().Changed("block-size") {
		cfg.Categorization.BlockSize = root.BlockSize
	}
	if cmd.Flags().Changed("llm-enhanced") {
		cfg.Categorization.LLMEnhanced = root.LLMEnhanced
	}
	if cmd.Flags().Changed("cache") {
		cfg.Categorization.CachePath = root.CachePath
	}
	return cfg, nil
}

// fail prints the structured error payload and exits. Callers of the CLI
// always get valid JSON on stdout, success or not.
func fail(err error) {
	printJSON(models.NewErrorSummary(err))
	os.Exit(1)
}

func printJSON(payload interface{}) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		root.Log.WithError(err).Error("Failed to marshal payload")
		os.Exit(1)
	}
	fmt.Println(string(data))
}
