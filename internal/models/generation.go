package models

import (
	"strings"
	"time"
)

// Version selects the sampling settings of a model call.
type Version string

const (
	VersionATS         Version = "ats"
	VersionHuman       Version = "human"
	VersionCoverLetter Version = "cover_letter"
	VersionPortfolio   Version = "portfolio"
	VersionAnalyze     Version = "analyze"
)

type VersionSettings struct {
	Temperature float64
	// MaxTokens is the response length budget; 0 means uncapped.
	MaxTokens int
}

var versionSettings = map[Version]VersionSettings{
	VersionATS:         {Temperature: 0.2, MaxTokens: 2000},
	VersionHuman:       {Temperature: 0.4, MaxTokens: 1500},
	VersionCoverLetter: {Temperature: 0.5, MaxTokens: 1000},
	VersionPortfolio:   {Temperature: 0.6, MaxTokens: 4000},
	VersionAnalyze:     {Temperature: 0.3, MaxTokens: 1500},
}

// Settings returns the sampling settings for v. Unknown versions get 0.3 and no cap.
func (v Version) Settings() VersionSettings {
	if s, ok := versionSettings[v]; ok {
		return s
	}
	return VersionSettings{Temperature: 0.3}
}

// Prompt is the text sent to a model plus the version it is generated for.
type Prompt struct {
	Text    string
	Version Version
}

// DocumentType tags a generated document.
type DocumentType string

const (
	DocumentATS       DocumentType = "ats"
	DocumentHuman     DocumentType = "human"
	DocumentCover     DocumentType = "cover"
	DocumentPortfolio DocumentType = "portfolio"
)

// DocumentOrder is the fixed generation order.
var DocumentOrder = []DocumentType{DocumentATS, DocumentHuman, DocumentCover, DocumentPortfolio}

func ParseDocumentType(s string) (DocumentType, bool) {
	d := DocumentType(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DocumentATS, DocumentHuman, DocumentCover, DocumentPortfolio:
		return d, true
	}
	return "", false
}

// Version maps a document type to the version used to generate it.
func (d DocumentType) Version() Version {
	switch d {
	case DocumentATS:
		return VersionATS
	case DocumentHuman:
		return VersionHuman
	case DocumentCover:
		return VersionCoverLetter
	case DocumentPortfolio:
		return VersionPortfolio
	}
	return Version(d)
}

func (d DocumentType) Label() string {
	switch d {
	case DocumentATS:
		return "ATS Resume"
	case DocumentHuman:
		return "Human Resume"
	case DocumentCover:
		return "Cover Letter"
	case DocumentPortfolio:
		return "Portfolio"
	}
	return string(d)
}

// FileStem is the suffix used in download file names, e.g. Jane_Doe_ATS_Resume.
func (d DocumentType) FileStem() string {
	return strings.ReplaceAll(d.Label(), " ", "_")
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// ModelCandidate is one entry of the ordered fallback list.
type ModelCandidate struct {
	Name     string        `yaml:"name" json:"name"`
	Backend  string        `yaml:"backend" json:"backend"`
	Provider string        `yaml:"provider" json:"provider"`
	Timeout  time.Duration `yaml:"timeout" json:"-"`
}
