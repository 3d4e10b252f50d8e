package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	StatusIdle       SessionStatus = "idle"
	StatusQueued     SessionStatus = "queued"
	StatusProcessing SessionStatus = "processing"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// GenerationForm carries the user's form input for document generation.
type GenerationForm struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	LinkedIn       string         `json:"linkedin"`
	GitHub         string         `json:"github"`
	Education      string         `json:"education"`
	Background     string         `json:"background"`
	JobDescription string         `json:"job_description"`
	Company        string         `json:"company"`
	Position       string         `json:"position"`
	Documents      []DocumentType `json:"documents"`
}

// GeneratedDocument is one validated model reply stored on a session.
type GeneratedDocument struct {
	Type      DocumentType `json:"type"`
	Content   string       `json:"content"`
	Model     string       `json:"model"`
	Tokens    int          `json:"tokens"`
	Verdict   Verdict      `json:"verdict"`
	CreatedAt time.Time    `json:"created_at"`
}

// Session is the per-user request context. It lives in memory only.
type Session struct {
	ID           uuid.UUID
	Status       SessionStatus
	InFlight     bool
	Profile      *ProfileRecord
	Form         *GenerationForm
	Documents    map[DocumentType]*GeneratedDocument
	ErrorMessage string
	TotalTokens  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Status:    StatusIdle,
		Documents: make(map[DocumentType]*GeneratedDocument),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy safe to read outside the session store lock.
func (s *Session) Clone() *Session {
	c := *s
	if s.Profile != nil {
		p := s.Profile.Clone()
		c.Profile = &p
	}
	if s.Form != nil {
		f := *s.Form
		f.Documents = append([]DocumentType{}, s.Form.Documents...)
		c.Form = &f
	}
	c.Documents = make(map[DocumentType]*GeneratedDocument, len(s.Documents))
	for k, v := range s.Documents {
		d := *v
		c.Documents[k] = &d
	}
	return &c
}
