package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"alfredoptarigan/resumate/internal/models"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrRequestInProgress = errors.New("a request is already in progress for this session")
)

type SessionRepository interface {
	Create() *models.Session
	FindByID(id uuid.UUID) (*models.Session, error)
	Update(id uuid.UUID, fn func(s *models.Session)) error
	UpdateStatus(id uuid.UUID, status models.SessionStatus) error
	SaveDocument(id uuid.UUID, doc *models.GeneratedDocument) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindDocument(id uuid.UUID, docType models.DocumentType) (*models.GeneratedDocument, error)
	// Begin marks a request in flight and fails with ErrRequestInProgress
	// when one is already outstanding for the session.
	Begin(id uuid.UUID) error
	Finish(id uuid.UUID)
	FindQueued(limit int) ([]*models.Session, error)
}

// sessionRepository keeps sessions in process memory. Nothing is persisted.
type sessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

func (r *sessionRepository) Create() *models.Session {
	s := models.NewSession()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s.Clone()
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	return s.Clone(), nil
}

func (r *sessionRepository) Update(id uuid.UUID, fn func(s *models.Session)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	fn(s)
	s.UpdatedAt = time.Now()
	return nil
}

func (r *sessionRepository) UpdateStatus(id uuid.UUID, status models.SessionStatus) error {
	return r.Update(id, func(s *models.Session) {
		s.Status = status
		if status != models.StatusFailed {
			s.ErrorMessage = ""
		}
	})
}

func (r *sessionRepository) SaveDocument(id uuid.UUID, doc *models.GeneratedDocument) error {
	stored := *doc
	return r.Update(id, func(s *models.Session) {
		s.Documents[stored.Type] = &stored
		s.TotalTokens += stored.Tokens
	})
}

func (r *sessionRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.Update(id, func(s *models.Session) {
		s.Status = models.StatusFailed
		s.ErrorMessage = errorMsg
	})
}

func (r *sessionRepository) FindDocument(id uuid.UUID, docType models.DocumentType) (*models.GeneratedDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	doc, ok := s.Documents[docType]
	if !ok {
		return nil, errors.Wrapf(ErrDocumentNotFound, "%s for session %s", docType, id)
	}
	d := *doc
	return &d, nil
}

func (r *sessionRepository) Begin(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "id %s", id)
	}
	if s.InFlight {
		return ErrRequestInProgress
	}
	s.InFlight = true
	s.UpdatedAt = time.Now()
	return nil
}

func (r *sessionRepository) Finish(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.InFlight = false
		s.UpdatedAt = time.Now()
	}
}

// FindQueued returns the oldest queued sessions first.
func (r *sessionRepository) FindQueued(limit int) ([]*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	queued := []*models.Session{}
	for _, s := range r.sessions {
		if s.Status == models.StatusQueued {
			queued = append(queued, s.Clone())
		}
	}
	sort.Slice(queued, func(i, j int) bool {
		return queued[i].UpdatedAt.Before(queued[j].UpdatedAt)
	})
	if limit > 0 && len(queued) > limit {
		queued = queued[:limit]
	}
	return queued, nil
}
