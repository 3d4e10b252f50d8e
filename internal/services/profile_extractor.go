package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

const (
	MinProfileInputLength = 50
	MaxProfileInputLength = 10000
)

// ProfileResult is an extracted profile plus the tokens spent on it.
type ProfileResult struct {
	Record models.ProfileRecord
	JSON   string
	Model  string
	Tokens int
}

// ProfileAnalysisError wraps any failure after input validation. It matches
// ErrProfileAnalysis and still unwraps to its cause.
type ProfileAnalysisError struct {
	Cause error
}

func (e *ProfileAnalysisError) Error() string {
	return fmt.Sprintf("%s: %v", ErrProfileAnalysis, e.Cause)
}

func (e *ProfileAnalysisError) Is(target error) bool {
	return target == ErrProfileAnalysis
}

func (e *ProfileAnalysisError) Unwrap() error {
	return e.Cause
}

type ProfileExtractor interface {
	Extract(ctx context.Context, rawText string) (*ProfileResult, error)
}

type profileExtractor struct {
	orchestrator  Orchestrator
	promptBuilder *PromptBuilder
}

func NewProfileExtractor(orchestrator Orchestrator) ProfileExtractor {
	return &profileExtractor{
		orchestrator:  orchestrator,
		promptBuilder: NewPromptBuilder(),
	}
}

// Extract implements ProfileExtractor.
func (p *profileExtractor) Extract(ctx context.Context, rawText string) (*ProfileResult, error) {
	text := strings.TrimSpace(rawText)
	length := utf8.RuneCountInString(text)
	if length < MinProfileInputLength {
		return nil, errors.Wrapf(ErrInputTooShort, "got %d characters, need at least %d", length, MinProfileInputLength)
	}
	if length > MaxProfileInputLength {
		text = string([]rune(text)[:MaxProfileInputLength])
		logger.Get().WithField("original_chars", length).Info("✂️  Profile text truncated")
	}

	log := logger.Get().WithField("chars", utf8.RuneCountInString(text))
	log.Info("📄 Starting profile analysis")

	prompt := p.promptBuilder.BuildProfileExtractionPrompt(text)
	result, err := p.orchestrator.Run(ctx, prompt, RunOptions{Structured: true, Label: "profile"})
	if err != nil {
		return nil, &ProfileAnalysisError{Cause: err}
	}

	extracted, err := RecoverJSON(result.Content)
	if err != nil {
		log.WithField("model", result.Model).Warn("❌ Failed to parse profile JSON")
		return nil, &ProfileAnalysisError{Cause: err}
	}

	record := MergeProfile(extracted)
	encoded, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, &ProfileAnalysisError{Cause: errors.Wrap(err, "failed to encode profile")}
	}

	log.WithFields(logrus.Fields{
		"model":  result.Model,
		"tokens": result.Tokens,
	}).Info("✅ Profile analysis complete")

	return &ProfileResult{
		Record: record,
		JSON:   string(encoded),
		Model:  result.Model,
		Tokens: result.Tokens,
	}, nil
}

// MergeProfile overlays extracted values onto the default record. A value is
// taken only when it is present and non-empty; empty strings and lists keep
// the default.
func MergeProfile(extracted map[string]any) models.ProfileRecord {
	record := models.NewProfileRecord()

	for _, key := range models.ProfileStringKeys {
		if s, ok := coerceString(extracted[key]); ok {
			record.SetString(key, s)
		}
	}
	for _, key := range models.ProfileListKeys {
		if items, ok := coerceList(extracted[key]); ok {
			record.SetList(key, items)
		}
	}

	return record
}

func coerceString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case bool:
		return "true", val
	case float64:
		if val == 0 {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case []any:
		items, ok := coerceList(val)
		if !ok {
			return "", false
		}
		return strings.Join(items, ", "), true
	case map[string]any:
		if len(val) == 0 {
			return "", false
		}
		b, err := json.Marshal(val)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		s := strings.TrimSpace(fmt.Sprint(val))
		return s, s != ""
	}
}

func coerceList(v any) ([]string, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := coerceString(item); ok {
				items = append(items, s)
			}
		}
		return items, len(items) > 0
	default:
		s, ok := coerceString(val)
		if !ok {
			return nil, false
		}
		return []string{s}, true
	}
}
