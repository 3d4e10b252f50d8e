package services

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/models"
)

// DocumentHeader is the contact block printed above every document.
type DocumentHeader struct {
	Name  string
	Email string
	Phone string
}

func (h DocumentHeader) contactLine() string {
	parts := []string{}
	if h.Email != "" {
		parts = append(parts, h.Email)
	}
	if h.Phone != "" {
		parts = append(parts, h.Phone)
	}
	return strings.Join(parts, " | ")
}

type blockKind string

const (
	blockHeading   blockKind = "heading"
	blockBullet    blockKind = "bullet"
	blockParagraph blockKind = "paragraph"
	blockSpacer    blockKind = "spacer"
)

type layoutBlock struct {
	Kind blockKind
	Text string
}

type layoutData struct {
	Title   string
	Name    string
	Contact string
	Blocks  []layoutBlock
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: Letter; margin: 0.5in; }
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; line-height: 1.4; color: #222; }
  h1 { font-size: 28pt; color: #2c3e50; text-align: center; margin: 0 0 6px; }
  .contact { font-size: 10pt; color: #7f8c8d; text-align: center; margin-bottom: 20px; }
  h2 { font-size: 14pt; color: #2c3e50; margin: 12px 0 8px; border-bottom: 1px solid #3498db; }
  ul { margin: 0 0 6px; padding-left: 20px; }
  li { margin-bottom: 4px; }
  p { margin: 0 0 10px; }
  .spacer { height: 12px; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{if .Contact}}<div class="contact">{{.Contact}}</div>{{end}}
{{range .Blocks}}{{if eq .Kind "heading"}}<h2>{{.Text}}</h2>
{{else if eq .Kind "bullet"}}<ul><li>{{.Text}}</li></ul>
{{else if eq .Kind "spacer"}}<div class="spacer"></div>
{{else}}<p>{{.Text}}</p>
{{end}}{{end}}</body>
</html>
`))

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// BuildDocumentHTML lays out a generated document as printable HTML. A
// portfolio is already a complete page and is returned with fences removed.
func BuildDocumentHTML(doc models.GeneratedDocument, header DocumentHeader) (string, error) {
	if doc.Type == models.DocumentPortfolio {
		return CleanHTMLFences(doc.Content), nil
	}

	data := layoutData{
		Title:   fmt.Sprintf("%s - %s", header.Name, doc.Type.Label()),
		Name:    header.Name,
		Contact: header.contactLine(),
	}

	switch doc.Type {
	case models.DocumentATS:
		data.Blocks = atsBlocks(doc.Content)
	case models.DocumentCover:
		data.Blocks = append(data.Blocks, layoutBlock{Kind: blockParagraph, Text: "Dear Hiring Manager,"})
		data.Blocks = append(data.Blocks, paragraphBlocks(doc.Content)...)
		data.Blocks = append(data.Blocks,
			layoutBlock{Kind: blockSpacer},
			layoutBlock{Kind: blockParagraph, Text: "Sincerely,"},
			layoutBlock{Kind: blockParagraph, Text: header.Name},
		)
	default:
		data.Blocks = paragraphBlocks(doc.Content)
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, "failed to render document layout")
	}
	return buf.String(), nil
}

// BuildDocumentText renders the plain-text download of a document.
func BuildDocumentText(doc models.GeneratedDocument, header DocumentHeader) string {
	switch doc.Type {
	case models.DocumentCover:
		return fmt.Sprintf("%s\n%s\n\nDear Hiring Manager,\n\n%s\n\nSincerely,\n%s",
			header.Name, header.contactLine(), strings.TrimSpace(doc.Content), header.Name)
	case models.DocumentPortfolio:
		return CleanHTMLFences(doc.Content)
	default:
		return doc.Content
	}
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// DocumentFileName builds e.g. Jane_Doe_ATS_Resume.pdf.
func DocumentFileName(name string, docType models.DocumentType, ext string) string {
	stem := unsafeFileChars.ReplaceAllString(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"), "")
	if stem == "" {
		stem = "Resume"
	}
	return fmt.Sprintf("%s_%s.%s", stem, docType.FileStem(), strings.TrimPrefix(ext, "."))
}

func atsBlocks(content string) []layoutBlock {
	var blocks []layoutBlock
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			_, size := firstRune(line)
			blocks = append(blocks, layoutBlock{Kind: blockBullet, Text: strings.TrimSpace(line[size:])})
		case isHeadingLine(line):
			text := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(line, "**", ""), ":", ""))
			blocks = append(blocks, layoutBlock{Kind: blockHeading, Text: text})
		default:
			blocks = append(blocks, layoutBlock{Kind: blockParagraph, Text: line})
		}
	}
	return blocks
}

// isHeadingLine matches all-caps lines and lines wrapped in **bold** markers.
func isHeadingLine(line string) bool {
	if len(line) > 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
		return true
	}
	hasLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func paragraphBlocks(content string) []layoutBlock {
	var blocks []layoutBlock
	for _, para := range paragraphSplit.Split(content, -1) {
		if para = strings.TrimSpace(para); para != "" {
			blocks = append(blocks, layoutBlock{Kind: blockParagraph, Text: para})
		}
	}
	return blocks
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}
