package cli

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"alfredoptarigan/resumate/internal/services"
)

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeOut string

//nolint:gochecknoglobals // Cobra boilerplate
var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf|resume.txt>",
	Short: "Extract a structured profile from a resume with an LLM",
	Long: `Extract the eleven profile fields (name, email, phone, linkedin, github,
education, skills, projects, target_job, company, position) from a resume.

Example:
  resumate analyze resume.pdf --out profile.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the profile JSON to this file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	text, err := services.NewTextExtractor().ExtractText(args[0])
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", args[0])
	}

	orch, err := newOrchestrator(ctx, loadConfig())
	if err != nil {
		return err
	}

	result, err := services.NewProfileExtractor(orch).Extract(ctx, text)
	if err != nil {
		return err
	}

	cmd.PrintErrf("✅ Profile extracted with %s (~%d tokens)\n", result.Model, result.Tokens)
	return writeOutput(cmd.OutOrStdout(), analyzeOut, []byte(result.JSON))
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return string(data), nil
}
