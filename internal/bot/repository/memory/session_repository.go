package memory

import (
	"context"
	"sync"

	"github.com/devsolaris/natursur-bot/internal/domain/models"
)

// SessionRepository guarda las sesiones de conversación en memoria, con vida
// limitada al proceso.
type SessionRepository struct {
	sessions map[int64]*models.Session
	mu       sync.RWMutex
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[int64]*models.Session),
	}
}

func (r *SessionRepository) Get(_ context.Context, chatID int64) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[chatID]
	if !exists {
		return nil, nil
	}

	return session, nil
}

func (r *SessionRepository) Put(_ context.Context, chatID int64, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[chatID] = session

	return nil
}

func (r *SessionRepository) Remove(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, chatID)

	return nil
}
