// Package sessionstore provides the SessionStore backings: an in-memory map
// for tests and single-node dev, and Redis for production.
package sessionstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

type Memory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: map[string]domain.Session{}}
}

func (m *Memory) Get(_ context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.WrapError(domain.ErrNotFound, "session get", fmt.Errorf("unknown token"))
	}
	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now()) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, domain.WrapError(domain.ErrNotFound, "session get", fmt.Errorf("session expired"))
	}
	return &session, nil
}

func (m *Memory) Set(_ context.Context, session *domain.Session) error {
	if session == nil || session.Token == "" {
		return domain.WrapError(domain.ErrValidation, "session set", fmt.Errorf("empty session token"))
	}
	m.mu.Lock()
	m.sessions[session.Token] = *session
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}
