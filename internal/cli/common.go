package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/config"
	"alfredoptarigan/resumate/internal/services"
)

func loadConfig() *config.Config {
	cfg := config.Load()
	if modelsFile != "" {
		cfg.Orchestrator.ModelsFile = modelsFile
	}
	return cfg
}

func newOrchestrator(ctx context.Context, cfg *config.Config) (services.Orchestrator, error) {
	return services.NewOrchestratorFromConfig(ctx, cfg)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(w, string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}
	return writeOutput(w, path, data)
}
