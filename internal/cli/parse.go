package cli

import (
	"github.com/spf13/cobra"

	"alfredoptarigan/resumate/internal/services"
)

//nolint:gochecknoglobals // Cobra boilerplate
var parseOut string

//nolint:gochecknoglobals // Cobra boilerplate
var parseCmd = &cobra.Command{
	Use:   "parse <profile.txt>",
	Short: "Parse a 'key: value' profile without calling a model",
	Long: `Parse pasted profile text made of "key: value" lines.

Example input:
  Name: Jane Doe
  Email: jane@example.com
  Skills: Go, PostgreSQL, Kubernetes`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write the profile JSON to this file instead of stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	text, err := readFile(args[0])
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), parseOut, services.ParsePastedProfile(text))
}
