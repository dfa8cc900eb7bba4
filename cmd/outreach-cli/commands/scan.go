package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var scanURL *string
var scanEmail *string
var scanBatch *string

func init() {
	scanURL = scanCmd.Flags().String("url", "", "Target website url.")
	scanEmail = scanCmd.Flags().String("email", "", "Target contact email.")
	scanBatch = scanCmd.Flags().String("batch", "", "CSV of targets with website/email columns.")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan [--url <url> | --email <email> | --batch <targets.csv>]",
	Short: "Scrapes targets and stores their assembled intelligence.",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := resolveEntries(*scanURL, *scanEmail, *scanBatch)
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

		err = runner.ScanBatch(cmd.Context(), entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}
