package services

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"alfredoptarigan/resumate/internal/models"
)

// MinResponseLength is the shortest reply accepted from a model, in characters.
const MinResponseLength = 50

// refusalScanWindow is how many leading characters are scanned for refusal phrasing.
const refusalScanWindow = 100

var refusalPhrases = []string{
	"i cannot",
	"i can't",
	"i can’t",
	"i'm sorry",
	"i’m sorry",
	"i am sorry",
	"i apologize",
	"i am unable",
	"i'm unable",
	"i’m unable",
	"as an ai",
	"as a language model",
}

// fold case-folds s. Casers are stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// leadingText returns up to n runes from the start of s, case-folded.
func leadingText(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > n {
		s = string([]rune(s)[:n])
	}
	return fold(s)
}

// firstPhrase returns the first phrase found in text, or "".
func firstPhrase(text string, phrases []string) string {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return p
		}
	}
	return ""
}

// ValidateResponse gates a successful outcome before it is accepted. A rejected
// reply is reclassified as TooShort or InvalidStructure, both retryable.
// Structured calls additionally need a {...} pair for JSON recovery to work on.
func ValidateResponse(outcome models.AttemptOutcome, structured bool) models.AttemptOutcome {
	if !outcome.IsSuccess() {
		return outcome
	}

	content := strings.TrimSpace(outcome.Content)
	if utf8.RuneCountInString(content) < MinResponseLength {
		return models.AttemptOutcome{
			Kind:       models.OutcomeTooShort,
			Content:    outcome.Content,
			StatusCode: outcome.StatusCode,
			Detail:     "reply shorter than minimum length",
		}
	}

	if phrase := firstPhrase(leadingText(content, refusalScanWindow), refusalPhrases); phrase != "" {
		return models.AttemptOutcome{
			Kind:       models.OutcomeInvalidStructure,
			Content:    outcome.Content,
			StatusCode: outcome.StatusCode,
			Detail:     "reply looks like a refusal (" + phrase + ")",
		}
	}

	if structured {
		if _, ok := braceSlice(content); !ok {
			return models.AttemptOutcome{
				Kind:       models.OutcomeInvalidStructure,
				Content:    outcome.Content,
				StatusCode: outcome.StatusCode,
				Detail:     "structured reply has no JSON object",
			}
		}
	}

	return outcome
}
