package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumate/internal/models"
)

var testHeader = DocumentHeader{Name: "Jane Doe", Email: "jane@example.com", Phone: "+62 812 0000"}

func TestBuildDocumentHTMLATS(t *testing.T) {
	content := "SUMMARY\nBackend engineer.\n\n**Payments API**\n- Built <fast> APIs & tools\n• Led migration\nSKILLS:\n- AWS"
	html, err := BuildDocumentHTML(models.GeneratedDocument{Type: models.DocumentATS, Content: content}, testHeader)
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>Jane Doe</h1>")
	assert.Contains(t, html, "jane@example.com | &#43;62 812 0000")
	assert.Contains(t, html, "<h2>SUMMARY</h2>")
	assert.Contains(t, html, "<h2>Payments API</h2>")
	assert.Contains(t, html, "<h2>SKILLS</h2>")
	assert.Contains(t, html, "<li>Built &lt;fast&gt; APIs &amp; tools</li>")
	assert.Contains(t, html, "<li>Led migration</li>")
	assert.Contains(t, html, "<li>AWS</li>")
	assert.Contains(t, html, "<p>Backend engineer.</p>")
}

func TestBuildDocumentHTMLCover(t *testing.T) {
	html, err := BuildDocumentHTML(models.GeneratedDocument{Type: models.DocumentCover, Content: "First.\n\nSecond."}, testHeader)
	require.NoError(t, err)

	greeting := strings.Index(html, "Dear Hiring Manager,")
	first := strings.Index(html, "<p>First.</p>")
	closing := strings.Index(html, "Sincerely,")
	require.True(t, greeting >= 0 && first >= 0 && closing >= 0)
	assert.Less(t, greeting, first)
	assert.Less(t, first, closing)
	assert.Equal(t, 2, strings.Count(html, "Jane Doe</"), "name in header and signature")
}

func TestBuildDocumentHTMLHuman(t *testing.T) {
	html, err := BuildDocumentHTML(models.GeneratedDocument{Type: models.DocumentHuman, Content: "One.\n\nTwo.\n  \nThree."}, testHeader)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(html, "<p>"))
}

func TestBuildDocumentHTMLPortfolioPassesThrough(t *testing.T) {
	html, err := BuildDocumentHTML(models.GeneratedDocument{Type: models.DocumentPortfolio, Content: "```html\n<!DOCTYPE html><html></html>\n```"}, testHeader)
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><html></html>", html)
}

func TestBuildDocumentText(t *testing.T) {
	cover := BuildDocumentText(models.GeneratedDocument{Type: models.DocumentCover, Content: "Body.\n"}, testHeader)
	assert.Equal(t, "Jane Doe\njane@example.com | +62 812 0000\n\nDear Hiring Manager,\n\nBody.\n\nSincerely,\nJane Doe", cover)

	ats := BuildDocumentText(models.GeneratedDocument{Type: models.DocumentATS, Content: "SUMMARY\n- a"}, testHeader)
	assert.Equal(t, "SUMMARY\n- a", ats)
}

func TestDocumentFileName(t *testing.T) {
	assert.Equal(t, "Jane_Doe_ATS_Resume.pdf", DocumentFileName("Jane Doe", models.DocumentATS, "pdf"))
	assert.Equal(t, "Jane_Doe_Cover_Letter.txt", DocumentFileName(" Jane Doe ", models.DocumentCover, ".txt"))
	assert.Equal(t, "JaneDoe_Portfolio.html", DocumentFileName("Jane/Doe", models.DocumentPortfolio, "html"))
	assert.Equal(t, "Resume_Human_Resume.pdf", DocumentFileName("", models.DocumentHuman, "pdf"))
}

func TestIsHeadingLine(t *testing.T) {
	assert.True(t, isHeadingLine("PROJECTS"))
	assert.True(t, isHeadingLine("SKILLS & TOOLS:"))
	assert.True(t, isHeadingLine("**Project X**"))
	assert.False(t, isHeadingLine("Projects"))
	assert.False(t, isHeadingLine("2021 - 2024"))
	assert.False(t, isHeadingLine("****"))
}
