// Package categorize handles the single-description categorization command
package categorize

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rmoreira/extrato-csv/cmd/root"
	"rmoreira/extrato-csv/internal/categorizer"
	"rmoreira/extrato-csv/internal/config"
	"rmoreira/extrato-csv/internal/models"
	"rmoreira/extrato-csv/internal/store"
	"rmoreira/extrato-csv/internal/textutils"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a single transaction description",
	Long: `Categorize one transaction description the way the parse pipeline would:
the description is canonicalized, looked up in the category cache and, on a
miss, resolved by the regex rules. Useful to debug why a transaction landed
in a given category.`,
	Run: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Description, "description", "d", "", "Transaction description to categorize")
	if err := Cmd.MarkFlagRequired("description"); err != nil {
		root.Log.WithError(err).Error("Failed to mark flag required")
	}
	Cmd.Flags().StringVar(&root.CachePath, "cache", "", "Path of the category cache file")
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.WithError(err).Error("Failed to initialize configuration")
		os.Exit(1)
	}
	if cmd.Flags().Changed("cache") {
		cfg.Categorization.CachePath = root.CachePath
	}

	description := textutils.CleanDescription(root.Description)

	source := "regex"
	cache, err := store.NewCacheStore(cfg.Categorization.CachePath).Load()
	if err != nil {
		root.Log.WithError(err).Warn("Failed to load cache, using regex only")
		cache = map[string]string{}
	}

	category, ok := cache[description]
	if ok && category != "" && category != models.CategoryDefault {
		source = "cache"
	} else {
		category = categorizer.NewRegexCategorizer().Categorize(description)
	}

	payload := map[string]string{
		"descricao": description,
		"categoria": category,
		"fonte":     source,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		root.Log.WithError(err).Error("Failed to marshal payload")
		os.Exit(1)
	}
	fmt.Println(string(data))
}
