package services

import (
	"strings"

	"alfredoptarigan/resumate/internal/models"
)

// pasteAliases maps normalized "key:" labels to profile keys.
var pasteAliases = map[string]string{
	"name":                   models.ProfileKeyName,
	"full_name":              models.ProfileKeyName,
	"fullname":               models.ProfileKeyName,
	"email":                  models.ProfileKeyEmail,
	"email_address":          models.ProfileKeyEmail,
	"mail":                   models.ProfileKeyEmail,
	"phone":                  models.ProfileKeyPhone,
	"phone_number":           models.ProfileKeyPhone,
	"mobile":                 models.ProfileKeyPhone,
	"contact":                models.ProfileKeyPhone,
	"linkedin":               models.ProfileKeyLinkedIn,
	"linkedin_url":           models.ProfileKeyLinkedIn,
	"linkedin_profile":       models.ProfileKeyLinkedIn,
	"github":                 models.ProfileKeyGitHub,
	"github_url":             models.ProfileKeyGitHub,
	"github_profile":         models.ProfileKeyGitHub,
	"education":              models.ProfileKeyEducation,
	"degree":                 models.ProfileKeyEducation,
	"qualification":          models.ProfileKeyEducation,
	"skills":                 models.ProfileKeySkills,
	"skill":                  models.ProfileKeySkills,
	"technical_skills":       models.ProfileKeySkills,
	"projects":               models.ProfileKeyProjects,
	"project":                models.ProfileKeyProjects,
	"work":                   models.ProfileKeyProjects,
	"experience":             models.ProfileKeyProjects,
	"target_job_description": models.ProfileKeyTargetJob,
	"target_job":             models.ProfileKeyTargetJob,
	"job_description":        models.ProfileKeyTargetJob,
	"job":                    models.ProfileKeyTargetJob,
	"role":                   models.ProfileKeyTargetJob,
	"company":                models.ProfileKeyCompany,
	"organization":           models.ProfileKeyCompany,
	"company_name":           models.ProfileKeyCompany,
	"position":               models.ProfileKeyPosition,
	"position_applying_for":  models.ProfileKeyPosition,
	"job_title":              models.ProfileKeyPosition,
}

// ParsePastedProfile reads "Key: value" lines into a profile without calling a
// model. Skills and projects are comma separated; education is one entry.
func ParsePastedProfile(text string) models.ProfileRecord {
	record := models.NewProfileRecord()

	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		field, ok := pasteAliases[normalizePasteKey(key)]
		if !ok {
			continue
		}

		switch field {
		case models.ProfileKeyEducation:
			record.SetList(field, []string{value})
		case models.ProfileKeySkills, models.ProfileKeyProjects:
			record.SetList(field, splitCommaList(value))
		default:
			record.SetString(field, value)
		}
	}

	return record
}

func normalizePasteKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "-", "_")
}

func splitCommaList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
