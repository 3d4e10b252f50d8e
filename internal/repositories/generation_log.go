package repositories

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"alfredoptarigan/resumate/internal/models"
)

type GenerationLogRepository interface {
	Create(entry *models.GenerationLog) error
	FindBySession(sessionID uuid.UUID) ([]models.GenerationLog, error)
}

type generationLogRepository struct {
	db *gorm.DB
}

// NewGenerationLogRepository returns a discarding repository when db is nil,
// which is the case when the audit database is disabled.
func NewGenerationLogRepository(db *gorm.DB) GenerationLogRepository {
	if db == nil {
		return noopGenerationLogRepository{}
	}
	return &generationLogRepository{db: db}
}

func (r *generationLogRepository) Create(entry *models.GenerationLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return errors.Wrap(err, "failed to create generation log")
	}
	return nil
}

func (r *generationLogRepository) FindBySession(sessionID uuid.UUID) ([]models.GenerationLog, error) {
	var entries []models.GenerationLog
	if err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find generation logs")
	}
	return entries, nil
}

type noopGenerationLogRepository struct{}

func (noopGenerationLogRepository) Create(*models.GenerationLog) error {
	return nil
}

func (noopGenerationLogRepository) FindBySession(uuid.UUID) ([]models.GenerationLog, error) {
	return []models.GenerationLog{}, nil
}
