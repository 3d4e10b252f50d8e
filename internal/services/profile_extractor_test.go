package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumate/internal/models"
)

// fakeOrchestrator returns a canned reply and records what it was asked.
// err is returned on every call, or only on call number failOn when set.
type fakeOrchestrator struct {
	replies []string
	err     error
	failOn  int
	prompts []models.Prompt
	opts    []RunOptions
}

func (f *fakeOrchestrator) Run(ctx context.Context, prompt models.Prompt, opts RunOptions) (*Result, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil && (f.failOn == 0 || f.failOn == len(f.prompts)) {
		return nil, f.err
	}
	reply := ""
	if len(f.replies) > 0 {
		reply = f.replies[0]
		if len(f.replies) > 1 {
			f.replies = f.replies[1:]
		}
	}
	return &Result{Content: reply, Model: "fake/model", Tokens: EstimateTokens(prompt.Text) + EstimateTokens(reply), Attempts: 1}, nil
}

func (f *fakeOrchestrator) Candidates() []models.ModelCandidate {
	return []models.ModelCandidate{{Name: "fake", Backend: "fake/model", Provider: models.ProviderOpenRouter}}
}

const resumeText = "Jane Doe, jane@example.com, +62 812 0000. Backend engineer with Go and Postgres experience."

func TestExtractRejectsShortInputWithoutNetwork(t *testing.T) {
	orch := &fakeOrchestrator{}
	extractor := NewProfileExtractor(orch)

	_, err := extractor.Extract(context.Background(), "   too short   ")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputTooShort))
	assert.Empty(t, orch.prompts)
}

func TestExtractTruncatesLongInput(t *testing.T) {
	orch := &fakeOrchestrator{replies: []string{`{"name":"Jane"}`}}
	extractor := NewProfileExtractor(orch)

	raw := strings.Repeat("a", MaxProfileInputLength) + "ZZZZ"
	_, err := extractor.Extract(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, orch.prompts, 1)
	assert.Contains(t, orch.prompts[0].Text, strings.Repeat("a", MaxProfileInputLength))
	assert.NotContains(t, orch.prompts[0].Text, "ZZZZ")
	assert.Equal(t, models.VersionAnalyze, orch.prompts[0].Version)
	assert.True(t, orch.opts[0].Structured)
}

func TestExtractMergesWithDefaults(t *testing.T) {
	orch := &fakeOrchestrator{replies: []string{"```json\n{\"name\": \"Jane\", \"skills\": []}\n```"}}
	extractor := NewProfileExtractor(orch)

	result, err := extractor.Extract(context.Background(), resumeText)
	require.NoError(t, err)

	assert.Equal(t, "Jane", result.Record.Name)
	assert.Equal(t, []string{}, result.Record.Skills)
	assert.Equal(t, "", result.Record.Email)
	assert.Equal(t, "fake/model", result.Model)
	assert.Positive(t, result.Tokens)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.JSON), &decoded))
	assert.Len(t, decoded, 11)
	assert.Equal(t, []any{}, decoded["projects"])
}

func TestExtractUnparsableOutput(t *testing.T) {
	orch := &fakeOrchestrator{replies: []string{"I could not find any profile information in this text at all."}}
	extractor := NewProfileExtractor(orch)

	_, err := extractor.Extract(context.Background(), resumeText)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProfileAnalysis))
	assert.True(t, errors.Is(err, ErrUnparsableOutput))
}

func TestExtractOrchestratorFailure(t *testing.T) {
	orch := &fakeOrchestrator{err: &ExhaustedError{Attempts: []AttemptRecord{{Model: "m1", Attempt: 1, Reason: "timeout"}}}}
	extractor := NewProfileExtractor(orch)

	_, err := extractor.Extract(context.Background(), resumeText)

	assert.True(t, errors.Is(err, ErrProfileAnalysis))
	assert.True(t, errors.Is(err, ErrAllModelsFailed))
	assert.Contains(t, err.Error(), "m1 attempt 1")
}

func TestMergeProfile(t *testing.T) {
	got := MergeProfile(map[string]any{
		"name":      "  Jane Doe ",
		"email":     "",
		"phone":     float64(628120000),
		"github":    nil,
		"education": "BSc Computer Science, UI",
		"skills":    []any{"Go", "", 42.0, "SQL"},
		"projects":  []any{},
		"company":   []any{"Acme", "Globex"},
		"extra":     "ignored",
	})

	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, "628120000", got.Phone)
	assert.Equal(t, "", got.GitHub)
	assert.Equal(t, []string{"BSc Computer Science, UI"}, got.Education)
	assert.Equal(t, []string{"Go", "42", "SQL"}, got.Skills)
	assert.Equal(t, []string{}, got.Projects)
	assert.Equal(t, "Acme, Globex", got.Company)
}

func TestMergeProfileEmpty(t *testing.T) {
	assert.Equal(t, models.NewProfileRecord(), MergeProfile(nil))
}
