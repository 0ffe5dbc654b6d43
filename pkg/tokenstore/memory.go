package tokenstore

import (
	"context"
	"sync"
)

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu      sync.RWMutex
	session session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token, nil
}

func (m *MemoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Token = token
	return nil
}

func (m *MemoryStore) ClearToken(ctx context.Context) error {
	return m.SetToken(ctx, "")
}

func (m *MemoryStore) RememberedEmail(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.RememberedEmail, nil
}

func (m *MemoryStore) SetRememberedEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.RememberedEmail = email
	return nil
}
