package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/services"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeTemp(t, "profile.txt", "Name: Jane Doe\nEmail: jane@example.com\nSkills: Go, SQL\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"parse", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	var record models.ProfileRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, []string{"Go", "SQL"}, record.Skills)
	assert.Equal(t, []string{}, record.Projects)
}

const profileJSON = `{
  "name": "Jane Doe",
  "email": "jane@example.com",
  "phone": "+62 812 0000",
  "skills": ["Go", "PostgreSQL"],
  "projects": ["Payments API"],
  "target_job": "Backend engineer"
}`

func TestBuildForm(t *testing.T) {
	profile := writeTemp(t, "profile.json", profileJSON)
	jd := writeTemp(t, "jd.txt", "Senior Go engineer at Acme")

	form, err := buildForm(profile, jd, []string{"cover", "ATS"})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", form.Name)
	assert.Equal(t, "Senior Go engineer at Acme", form.JobDescription)
	assert.Equal(t, "Go, PostgreSQL\n\nPayments API", form.Background)
	assert.Equal(t, []models.DocumentType{models.DocumentCover, models.DocumentATS}, form.Documents)
}

func TestBuildFormUsesTargetJobWithoutJobFile(t *testing.T) {
	form, err := buildForm(writeTemp(t, "profile.json", profileJSON), "", []string{"ats"})
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", form.JobDescription)
}

func TestBuildFormRejectsInvalidInput(t *testing.T) {
	profile := writeTemp(t, "profile.json", profileJSON)

	_, err := buildForm(profile, "", []string{"memo"})
	assert.True(t, errors.Is(err, services.ErrInvalidRequest))

	_, err = buildForm(writeTemp(t, "bad.json", "not json"), "", []string{"ats"})
	assert.True(t, errors.Is(err, services.ErrInvalidRequest))

	_, err = buildForm(writeTemp(t, "thin.json", `{"name":"Jane"}`), "", []string{"ats"})
	assert.True(t, errors.Is(err, services.ErrInvalidRequest), "email, phone and background are required")
}

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	r.calls++
	return []byte("%PDF"), nil
}

func TestWriteDocuments(t *testing.T) {
	session := models.NewSession()
	session.Form = &models.GenerationForm{Name: "Jane Doe", Email: "jane@example.com", Phone: "1"}
	session.Documents[models.DocumentCover] = &models.GeneratedDocument{Type: models.DocumentCover, Content: "Body."}
	session.Documents[models.DocumentPortfolio] = &models.GeneratedDocument{Type: models.DocumentPortfolio, Content: "<!DOCTYPE html><html></html>"}

	dir := filepath.Join(t.TempDir(), "out")
	renderer := &stubRenderer{}
	written, err := writeDocuments(context.Background(), session, dir, renderer)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "Jane_Doe_Cover_Letter.txt"),
		filepath.Join(dir, "Jane_Doe_Cover_Letter.pdf"),
		filepath.Join(dir, "Jane_Doe_Portfolio.html"),
		filepath.Join(dir, "Jane_Doe_Portfolio.pdf"),
	}, written)
	assert.Equal(t, 2, renderer.calls)

	cover, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(cover), "Dear Hiring Manager,\n\nBody.\n\nSincerely,\nJane Doe")
}

func TestWriteDocumentsWithoutRenderer(t *testing.T) {
	session := models.NewSession()
	session.Form = &models.GenerationForm{Name: "Jane Doe"}
	session.Documents[models.DocumentATS] = &models.GeneratedDocument{Type: models.DocumentATS, Content: "SUMMARY"}

	written, err := writeDocuments(context.Background(), session, t.TempDir(), nil)
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, "Jane_Doe_ATS_Resume.txt", filepath.Base(written[0]))
}
