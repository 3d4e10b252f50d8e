package services

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build returns the generation prompt for a document type.
func (pb *PromptBuilder) Build(docType models.DocumentType, form models.GenerationForm) (models.Prompt, error) {
	var text string
	switch docType {
	case models.DocumentATS:
		text = pb.BuildATSResumePrompt(form)
	case models.DocumentHuman:
		text = pb.BuildHumanResumePrompt(form)
	case models.DocumentCover:
		text = pb.BuildCoverLetterPrompt(form)
	case models.DocumentPortfolio:
		text = pb.BuildPortfolioPrompt(form)
	default:
		return models.Prompt{}, errors.Errorf("unknown document type %q", docType)
	}
	return models.Prompt{Text: text, Version: docType.Version()}, nil
}

// BuildProfileExtractionPrompt asks for the eleven profile keys as bare JSON.
func (pb *PromptBuilder) BuildProfileExtractionPrompt(rawText string) models.Prompt {
	text := fmt.Sprintf(`Extract information from this text into a JSON object.

TEXT:
%s

Return ONLY this JSON structure (no extra text):
{
  "name": "full name",
  "email": "email address",
  "phone": "phone number with country code",
  "linkedin": "linkedin URL",
  "github": "github URL",
  "education": ["degree, university"],
  "skills": ["skill1", "skill2", "skill3"],
  "projects": ["project description 1", "project description 2"],
  "target_job": "target job or position description",
  "company": "company name if mentioned",
  "position": "position applied for if mentioned"
}

Important:
- For missing fields, use empty string "" or empty list []
- Return ONLY the JSON, starting with { and ending with }
- Do NOT truncate. Include ALL projects and skills found
- No markdown, no explanations, no code blocks
- Look for keywords like "company:", "position:", "applying for:", "target company"`, rawText)

	return models.Prompt{Text: text, Version: models.VersionAnalyze}
}

// BuildATSResumePrompt creates the keyword-optimized resume prompt.
func (pb *PromptBuilder) BuildATSResumePrompt(form models.GenerationForm) string {
	return fmt.Sprintf(`Create a professionally formatted ATS-optimized resume for %s.

PERSONAL INFO:
Email: %s
Phone: %s
LinkedIn: %s
GitHub: %s

EDUCATION:
%s

SKILLS/PROJECTS/EXPERIENCE:
%s

TARGET JOB:
%s

FORMAT REQUIREMENTS (CRITICAL):
1. Use these EXACT section headers in all caps, each on its own line:
   SUMMARY
   SKILLS
   EDUCATION
   PROJECTS
   ACHIEVEMENTS

2. SUMMARY: 3-4 lines naming the targeted job title, the 2-3 most relevant technical skills and years of experience or student status.

3. SKILLS: bullet points (-) grouped by Programming Languages, Tools & Technologies, Soft Skills. Use the exact keywords from the job description.

4. EDUCATION: degree, university, dates and GPA when available.

5. PROJECTS: **Project Name** in bold followed by 2-3 bullet points (-) starting with action verbs that state what was built, the technologies used and the measured impact.

6. ACHIEVEMENTS: bullet points (-) with metrics wherever possible.

CONTENT RULES:
- Start bullets with verbs such as Developed, Built, Implemented, Optimized, Led, Designed, Created
- Quantify results ("improved by X%%", "reduced by Y hours")
- NO personal pronouns (I, me, my)
- Keep each bullet to 1-2 lines

OUTPUT: the resume content only. NO explanatory text, NO markdown headers with #.`,
		form.Name, form.Email, form.Phone, orNone(form.LinkedIn), orNone(form.GitHub),
		orNone(form.Education), form.Background, form.JobDescription)
}

// BuildHumanResumePrompt creates the narrative resume prompt.
func (pb *PromptBuilder) BuildHumanResumePrompt(form models.GenerationForm) string {
	return fmt.Sprintf(`Create a compelling narrative-style resume for %s that tells their professional story.

BACKGROUND:
%s

TARGET JOB:
%s

REQUIREMENTS:
- Write 3-4 engaging paragraphs separated by blank lines (NOT bullet points)
- Paragraph 1: who the candidate is and what drives them
- Paragraph 2: the most impressive project or achievement, told as a story
- Paragraph 3: additional skills and what makes the candidate unique
- Paragraph 4: what they are looking for and what they bring to a team

TONE:
- Authentic and passionate, first person
- 1-2 specific examples with details
- No corporate jargon

OUTPUT: 3-4 paragraphs only. NO bullet points, NO section headers.`,
		form.Name, form.Background, form.JobDescription)
}

// BuildCoverLetterPrompt creates the cover letter body prompt. The salutation
// and signature are added at render time.
func (pb *PromptBuilder) BuildCoverLetterPrompt(form models.GenerationForm) string {
	position := strings.TrimSpace(form.Position)
	if position == "" {
		position = "the open position"
	}
	company := strings.TrimSpace(form.Company)
	if company == "" {
		company = "the company"
	}

	return fmt.Sprintf(`Write a professional cover letter for %s applying to %s at %s.

CANDIDATE BACKGROUND:
%s

JOB REQUIREMENTS:
%s

STRUCTURE (3 paragraphs):
Paragraph 1: enthusiasm for this role at this company, one key qualification, and an understanding of what the company does.
Paragraph 2: the most relevant project or achievement in detail, with technologies used and quantified results tied to the job requirements.
Paragraph 3: what the candidate brings to the team, eagerness to contribute, and interest in an interview.

TONE: professional but personable, confident, specific. 250-300 words total.

OUTPUT: the 3 body paragraphs only. NO "Dear Hiring Manager" and NO signature.`,
		form.Name, position, company, form.Background, form.JobDescription)
}

// BuildPortfolioPrompt creates the single-page portfolio site prompt.
func (pb *PromptBuilder) BuildPortfolioPrompt(form models.GenerationForm) string {
	return fmt.Sprintf(`Generate a complete, modern HTML portfolio website for %s.

PROFILE:
- Name: %s
- Email: %s
- Phone: %s
- LinkedIn: %s
- GitHub: %s
- Education: %s
- Projects/Skills: %s

REQUIREMENTS:
- Responsive single-page design with sections Hero, About, Projects (3-4 cards), Skills, Contact
- Purple/blue gradient theme (#6a1b9a, #2196f3)
- Smooth scrolling, hover effects on project cards, tech stack badges per project
- Working navigation menu and a frontend-only contact form
- Self-contained: inline CSS and JS, no external CDN dependencies

OUTPUT: a complete HTML file starting with <!DOCTYPE html>. NO markdown code blocks, NO explanations.`,
		form.Name, form.Name, form.Email, form.Phone, orNone(form.LinkedIn), orNone(form.GitHub),
		orNone(form.Education), form.Background)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

// FormFromProfile pre-fills a generation form from an extracted profile.
func FormFromProfile(p models.ProfileRecord) models.GenerationForm {
	background := strings.Join(p.Skills, ", ")
	if len(p.Projects) > 0 {
		if background != "" {
			background += "\n\n"
		}
		background += strings.Join(p.Projects, "\n")
	}

	return models.GenerationForm{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		LinkedIn:       p.LinkedIn,
		GitHub:         p.GitHub,
		Education:      strings.Join(p.Education, "\n"),
		Background:     background,
		JobDescription: p.TargetJob,
		Company:        p.Company,
		Position:       p.Position,
	}
}
