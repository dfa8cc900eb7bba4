package commands

import (
	"fmt"
	"os"

	"outreach-backend/lib/genai"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(poolCmd)
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Lists the credentials configured in the environment.",
	Run: func(cmd *cobra.Command, args []string) {
		pool, err := genai.LoadPoolFromEnv()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Slot", "Generation Key", "Search Key", "Search CX", "Endpoint Override"})

		for _, cred := range pool.Credentials() {
			t.AppendRow(table.Row{
				cred.Name,
				elide(cred.GenerationKey),
				elide(cred.SearchKey),
				cred.SearchCx,
				cred.EndpointOverride,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

// keys never print in full
func elide(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 6 {
		return "******"
	}
	return key[:4] + "..." + key[len(key)-2:]
}
