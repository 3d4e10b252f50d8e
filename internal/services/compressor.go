package services

import (
	"regexp"
	"unicode/utf8"

	"alfredoptarigan/resumate/internal/models"
)

// DefaultTokenBudget is the prompt size above which compression kicks in.
const DefaultTokenBudget = 3000

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(` {2,}`)
	exampleBlocks  = regexp.MustCompile(`(?s)Example:.*?(\n[A-Z]|\z)`)
)

// EstimateTokens approximates the token count as characters / 4.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// CompressPrompt shrinks an over-budget prompt by collapsing blank lines and
// spaces and dropping example blocks. It is best effort: the result may still
// exceed the budget, but it is never longer than the input.
func CompressPrompt(prompt models.Prompt, budget int) models.Prompt {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}
	if EstimateTokens(prompt.Text) <= budget {
		return prompt
	}

	text := excessNewlines.ReplaceAllString(prompt.Text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")
	text = exampleBlocks.ReplaceAllString(text, "$1")

	return models.Prompt{Text: text, Version: prompt.Version}
}
