package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

const defaultModelTimeout = 90 * time.Second

type modelsFile struct {
	Models []models.ModelCandidate `yaml:"models"`
}

// DefaultModels is the candidate order used when no models file exists.
func DefaultModels() []models.ModelCandidate {
	return []models.ModelCandidate{
		{Name: "DeepSeek Chat v3.1", Backend: "deepseek/deepseek-chat-v3.1:free", Provider: models.ProviderOpenRouter, Timeout: defaultModelTimeout},
		{Name: "Grok 4 Fast", Backend: "x-ai/grok-4-fast:free", Provider: models.ProviderOpenRouter, Timeout: defaultModelTimeout},
		{Name: "Qwen 72B", Backend: "qwen/qwen2-72b-instruct:free", Provider: models.ProviderOpenRouter, Timeout: defaultModelTimeout},
	}
}

// LoadModels reads the ordered model candidate list from a YAML file.
// A missing file yields DefaultModels.
func LoadModels(path string) ([]models.ModelCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Get().WithField("path", path).Info("No models file found. Using default model candidates.")
			return DefaultModels(), nil
		}
		return nil, errors.Wrapf(err, "failed to read models file %s", path)
	}

	return ParseModels(data)
}

// ParseModels decodes and normalizes a YAML candidate list.
func ParseModels(data []byte) ([]models.ModelCandidate, error) {
	var file modelsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse models file")
	}

	if len(file.Models) == 0 {
		return nil, errors.New("models file lists no candidates")
	}

	candidates := make([]models.ModelCandidate, 0, len(file.Models))
	for i, m := range file.Models {
		m.Backend = strings.TrimSpace(m.Backend)
		if m.Backend == "" {
			return nil, errors.Errorf("model candidate #%d has no backend identifier", i+1)
		}
		if m.Name == "" {
			m.Name = m.Backend
		}
		if m.Provider == "" {
			m.Provider = models.ProviderOpenRouter
		}
		if m.Timeout <= 0 {
			m.Timeout = defaultModelTimeout
		}
		candidates = append(candidates, m)
	}

	return candidates, nil
}
