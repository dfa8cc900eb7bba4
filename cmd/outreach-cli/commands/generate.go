package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var generateURL *string
var generateEmail *string
var generateBatch *string

func init() {
	generateURL = generateCmd.Flags().String("url", "", "Target website url.")
	generateEmail = generateCmd.Flags().String("email", "", "Target contact email.")
	generateBatch = generateCmd.Flags().String("batch", "", "CSV of targets with website/email columns.")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [--url <url> | --email <email> | --batch <targets.csv>]",
	Short: "Drafts outreach emails from stored intelligence.",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := resolveEntries(*generateURL, *generateEmail, *generateBatch)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		runner, closeDb, err := buildRunner(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer closeDb()

		err = runner.GenerateBatch(cmd.Context(), entries, cfg.Report)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("report written to", cfg.Report)
	},
}
