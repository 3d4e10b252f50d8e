package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resumate/internal/models"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 2, EstimateTokens("12345678"))
	assert.Equal(t, 1, EstimateTokens("ééééé"))
}

func TestCompressPromptUnderBudgetIsIdentity(t *testing.T) {
	p := models.Prompt{Text: "Hello\n\n\n\nworld   with   spaces\nExample: keep me\nDone", Version: models.VersionATS}

	got := CompressPrompt(p, DefaultTokenBudget)

	assert.Equal(t, p, got)
}

func TestCompressPromptOverBudget(t *testing.T) {
	filler := strings.Repeat("word  ", 100)
	text := "Intro\n\n\n\n" + filler + "\nExample: drop this block\nstill example\nKeep this line"
	p := models.Prompt{Text: text, Version: models.VersionHuman}

	got := CompressPrompt(p, 10)

	assert.LessOrEqual(t, utf8.RuneCountInString(got.Text), utf8.RuneCountInString(p.Text))
	assert.NotContains(t, got.Text, "\n\n\n")
	assert.NotContains(t, got.Text, "  ")
	assert.NotContains(t, got.Text, "drop this block")
	assert.Contains(t, got.Text, "Keep this line")
	assert.Equal(t, models.VersionHuman, got.Version)
}

func TestCompressPromptExampleAtEnd(t *testing.T) {
	p := models.Prompt{Text: strings.Repeat("a", 80) + "\nExample: trailing example text"}

	got := CompressPrompt(p, 5)

	assert.Equal(t, strings.Repeat("a", 80)+"\n", got.Text)
}

func TestCompressPromptNeverGrows(t *testing.T) {
	inputs := []string{
		strings.Repeat("x", 50),
		strings.Repeat("line\n\n\n", 40),
		strings.Repeat("Example: a\nB\n", 30),
		strings.Repeat("   ", 60),
	}

	for _, in := range inputs {
		got := CompressPrompt(models.Prompt{Text: in}, 1)
		assert.LessOrEqual(t, len(got.Text), len(in))
	}
}
