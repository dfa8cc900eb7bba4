package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runURL *string
var runEmail *string
var runBatch *string

func init() {
	runURL = runCmd.Flags().String("url", "", "Target website url.")
	runEmail = runCmd.Flags().String("email", "", "Target contact email.")
	runBatch = runCmd.Flags().String("batch", "", "CSV of targets with website/email columns.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--url <url> | --email <email> | --batch <targets.csv>]",
	Short: "Runs the full pipeline, scan then generate.",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := resolveEntries(*runURL, *runEmail, *runBatch)
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

		err = runner.Run(cmd.Context(), entries, cfg.Report)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println("report written to", cfg.Report)
	},
}
