package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"alfredoptarigan/resumate/internal/config"
	"alfredoptarigan/resumate/internal/models"
	"alfredoptarigan/resumate/internal/repositories"
	"alfredoptarigan/resumate/internal/services"
)

//nolint:gochecknoglobals // Cobra boilerplate
var profilePath string

//nolint:gochecknoglobals // Cobra boilerplate
var jobPath string

//nolint:gochecknoglobals // Cobra boilerplate
var docTypes []string

//nolint:gochecknoglobals // Cobra boilerplate
var outDir string

//nolint:gochecknoglobals // Cobra boilerplate
var withPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var position string

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate career documents from a profile",
	Long: `Generate the selected documents from a profile JSON produced by
'resumate analyze' or 'resumate parse'.

Example:
  resumate generate --profile profile.json --job jd.txt --docs ats,cover --out ./out --pdf`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&profilePath, "profile", "", "Profile JSON file (required)")
	generateCmd.Flags().StringVar(&jobPath, "job", "", "Job description file (defaults to the profile's target_job)")
	generateCmd.Flags().StringSliceVar(&docTypes, "docs", []string{"ats", "human", "cover", "portfolio"}, "Documents to generate")
	generateCmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	generateCmd.Flags().BoolVar(&withPDF, "pdf", false, "Also render PDFs with headless Chrome")
	generateCmd.Flags().StringVar(&company, "company", "", "Target company")
	generateCmd.Flags().StringVar(&position, "position", "", "Position applied for")
	_ = generateCmd.MarkFlagRequired("profile")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Minute)
	defer cancel()

	form, err := buildForm(profilePath, jobPath, docTypes)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	orch, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return err
	}

	repo := repositories.NewSessionRepository()
	session := repo.Create()
	if err := repo.Update(session.ID, func(s *models.Session) {
		s.Form = &form
		s.Status = models.StatusQueued
	}); err != nil {
		return err
	}
	if err := repo.Begin(session.ID); err != nil {
		return err
	}

	generator := services.NewGeneratorService(repo, repositories.NewGenerationLogRepository(db), orch)
	genErr := generator.Generate(ctx, session.ID)

	done, err := repo.FindByID(session.ID)
	if err != nil {
		return err
	}

	var renderer services.PDFRenderer
	if withPDF {
		renderer = services.NewChromedpRenderer(cfg.Render.ChromePath, cfg.Render.Timeout)
	}

	written, err := writeDocuments(ctx, done, outDir, renderer)
	for _, path := range written {
		cmd.Printf("📄 %s\n", path)
	}
	for _, docType := range models.DocumentOrder {
		if doc, ok := done.Documents[docType]; ok && !doc.Verdict.Valid {
			cmd.PrintErrf("⚠️  %s: %s\n", docType.Label(), doc.Verdict.Reason)
		}
	}
	if err != nil {
		return err
	}
	if genErr != nil {
		return genErr
	}

	cmd.Printf("✅ Done (~%d tokens)\n", done.TotalTokens)
	return nil
}

// buildForm fills a generation form from a profile file and validates it the
// same way the API validates a generate request.
func buildForm(profileFile, jobFile string, docs []string) (models.GenerationForm, error) {
	raw, err := os.ReadFile(profileFile)
	if err != nil {
		return models.GenerationForm{}, errors.Wrapf(err, "failed to read %s", profileFile)
	}

	profile := models.NewProfileRecord()
	if err := json.Unmarshal(raw, &profile); err != nil {
		return models.GenerationForm{}, errors.Wrapf(services.ErrInvalidRequest, "%s is not a profile JSON: %v", profileFile, err)
	}
	profile.Normalize()

	form := services.FormFromProfile(profile)
	if jobFile != "" {
		jd, err := readFile(jobFile)
		if err != nil {
			return models.GenerationForm{}, err
		}
		form.JobDescription = jd
	}
	if company != "" {
		form.Company = company
	}
	if position != "" {
		form.Position = position
	}

	form.Documents = nil
	for _, d := range docs {
		docType, ok := models.ParseDocumentType(d)
		if !ok {
			return models.GenerationForm{}, errors.Wrapf(services.ErrInvalidRequest, "unknown document type %q", d)
		}
		form.Documents = append(form.Documents, docType)
	}

	body, err := json.Marshal(form)
	if err != nil {
		return models.GenerationForm{}, errors.Wrap(err, "failed to encode form")
	}
	if err := services.ValidateGenerateRequest(body); err != nil {
		return models.GenerationForm{}, err
	}
	return form, nil
}

// writeDocuments writes every generated document as text (HTML for the
// portfolio) and, when renderer is set, as PDF. It returns the written paths.
func writeDocuments(ctx context.Context, session *models.Session, dir string, renderer services.PDFRenderer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	header := services.DocumentHeader{}
	if session.Form != nil {
		header = services.DocumentHeader{Name: session.Form.Name, Email: session.Form.Email, Phone: session.Form.Phone}
	}

	var written []string
	for _, docType := range models.DocumentOrder {
		doc, ok := session.Documents[docType]
		if !ok {
			continue
		}

		ext, content := "txt", services.BuildDocumentText(*doc, header)
		if docType == models.DocumentPortfolio {
			ext = "html"
		}
		path := filepath.Join(dir, services.DocumentFileName(header.Name, docType, ext))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", path)
		}
		written = append(written, path)

		if renderer == nil {
			continue
		}
		html, err := services.BuildDocumentHTML(*doc, header)
		if err != nil {
			return written, err
		}
		pdf, err := renderer.RenderHTMLToPDF(ctx, html)
		if err != nil {
			return written, errors.Wrapf(err, "failed to render %s", docType.Label())
		}
		pdfPath := filepath.Join(dir, services.DocumentFileName(header.Name, docType, "pdf"))
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", pdfPath)
		}
		written = append(written, pdfPath)
	}
	return written, nil
}
