package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationLog is one audit row per orchestrated model call. It never stores
// profile data or generated text.
type GenerationLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID    uuid.UUID `gorm:"type:uuid;index" json:"session_id"`
	Version      string    `gorm:"type:text;not null" json:"version"`
	Model        string    `gorm:"type:text" json:"model"`
	Attempts     int       `gorm:"not null;default:0" json:"attempts"`
	Failures     string    `gorm:"type:text" json:"failures"`
	Tokens       int       `gorm:"not null;default:0" json:"tokens"`
	Status       string    `gorm:"type:text;not null" json:"status"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}
