package services

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/logger"
)

// TextExtractor reads the plain text of an uploaded resume.
type TextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText implements TextExtractor for .pdf and .txt files.
func (p *textExtractor) ExtractText(filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return p.extractPDF(filePath)
	case ".txt":
		return p.extractTXT(filePath)
	default:
		return "", errors.Wrapf(ErrUnsupportedFile, "%s", filepath.Ext(filePath))
	}
}

func (p *textExtractor) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to open PDF")
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Get().WithField("page", pageIndex).Warn("⚠️  Skipping unreadable PDF page")
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := CleanText(textBuilder.String())
	if text == "" {
		return "", errors.New("no text content found in PDF")
	}

	return text, nil
}

func (p *textExtractor) extractTXT(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", errors.Wrap(err, "failed to read text file")
	}
	if !utf8.Valid(data) {
		return "", errors.New("text file is not valid UTF-8")
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("text file is empty")
	}
	return text, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
