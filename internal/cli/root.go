package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"alfredoptarigan/resumate/internal/logger"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var modelsFile string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "resumate",
	Short: "Generate resumes, cover letters and portfolios from a profile",
	Long: `resumate extracts a structured profile from a resume and generates
an ATS resume, a narrative resume, a cover letter and a portfolio page with
free LLMs, falling back across models when one fails.

OPENROUTER_API_KEY must be set. GEMINI_API_KEY adds Gemini to the fallback list.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Get().SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&modelsFile, "models", "", "Model candidates file (default from MODELS_FILE)")
}
