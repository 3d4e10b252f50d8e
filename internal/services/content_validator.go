package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"alfredoptarigan/resumate/internal/models"
)

const (
	minDocumentLength = 100
	minCoverLength    = 200
	minATSBullets     = 5
	minParagraphGaps  = 2
)

var (
	atsHeaders = []string{"SUMMARY", "SKILLS", "EDUCATION", "PROJECTS"}

	// Document replies should start with the document itself, not a preamble.
	preamblePhrases = append([]string{"here is", "here's", "here’s", "below is", "certainly!"}, refusalPhrases...)

	paragraphGap = regexp.MustCompile(`\n\s*\n`)
	htmlMarkers  = []string{"<!doctype html", "<html"}
)

// ValidateContent checks a generated document for completeness. The verdict is
// advisory and is shown to the user as a warning.
func ValidateContent(content string, docType models.DocumentType) models.Verdict {
	length := utf8.RuneCountInString(strings.TrimSpace(content))

	if phrase := firstPhrase(leadingText(content, refusalScanWindow), preamblePhrases); phrase != "" {
		return invalid("content starts with refusal or explanation phrasing (%q)", phrase)
	}

	switch docType {
	case models.DocumentATS:
		folded := fold(content)
		for _, header := range atsHeaders {
			if !strings.Contains(folded, fold(header)) {
				return invalid("missing required section header %s", header)
			}
		}
		if bullets := countBullets(content); bullets < minATSBullets {
			return invalid("expected at least %d bullet points, found %d", minATSBullets, bullets)
		}

	case models.DocumentHuman:
		if length < minDocumentLength {
			return invalid("content shorter than %d characters", minDocumentLength)
		}
		if gaps := len(paragraphGap.FindAllStringIndex(content, -1)); gaps < minParagraphGaps {
			return invalid("expected at least %d paragraph breaks, found %d", minParagraphGaps, gaps)
		}

	case models.DocumentCover:
		if length < minCoverLength {
			return invalid("cover letter shorter than %d characters", minCoverLength)
		}

	case models.DocumentPortfolio:
		if length < minDocumentLength {
			return invalid("content shorter than %d characters", minDocumentLength)
		}
		if firstPhrase(fold(content), htmlMarkers) == "" {
			return invalid("portfolio is not an HTML document")
		}

	default:
		if length < minDocumentLength {
			return invalid("content shorter than %d characters", minDocumentLength)
		}
	}

	return models.Verdict{Valid: true, Reason: "ok"}
}

func invalid(format string, args ...any) models.Verdict {
	return models.Verdict{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

func countBullets(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "* ") {
			n++
		}
	}
	return n
}
