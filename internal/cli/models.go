package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"alfredoptarigan/resumate/internal/services"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listFree bool

//nolint:gochecknoglobals // Cobra boilerplate
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the model fallback order, or the free models upstream",
	Args:  cobra.NoArgs,
	RunE:  runModels,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&listFree, "free", false, "List free models offered by OpenRouter")
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	cfg := loadConfig()

	if listFree {
		catalog := services.NewModelCatalog(cfg.OpenRouter.BaseURL, services.EnvCredential("OPENROUTER_API_KEY"), nil)
		free, err := catalog.ListFree(ctx)
		if err != nil {
			return err
		}
		for _, m := range free {
			cmd.Printf("%-50s %8d  %s\n", m.ID, m.ContextLength, m.Name)
		}
		return nil
	}

	orch, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	for i, m := range orch.Candidates() {
		cmd.Printf("%d. %-20s %-45s %-10s %s\n", i+1, m.Name, m.Backend, m.Provider, m.Timeout)
	}
	if len(orch.Candidates()) == 0 {
		cmd.PrintErrln("⚠️  No usable model candidates")
	}
	return nil
}
