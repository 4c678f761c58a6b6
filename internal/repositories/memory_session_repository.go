package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/mergington/school-management/internal/models"
)

type memorySessionRepository struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*models.Session),
		mutex:    sync.RWMutex{},
	}
}

func (r *memorySessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.sessions[session.Token] = session
	return nil
}

// GetByToken は有効期限切れのセッションをこのタイミングで削除します（遅延削除）
func (r *memorySessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	r.mutex.RLock()
	session, exists := r.sessions[token]
	r.mutex.RUnlock()

	if !exists {
		return nil, models.ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		r.mutex.Lock()
		if current, ok := r.sessions[token]; ok && current == session {
			delete(r.sessions, token)
		}
		r.mutex.Unlock()
		return nil, models.ErrSessionNotFound
	}

	return session, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, token string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.sessions, token)
	return nil
}

func (r *memorySessionRepository) DeleteExpired(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for token, session := range r.sessions {
		if now.After(session.ExpiresAt) {
			delete(r.sessions, token)
		}
	}

	return nil
}
