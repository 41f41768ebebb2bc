package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore keeps sessions in a map. Suitable for tests and single
// process deployments; contents are lost on restart.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]*Context)}
}

func (s *memoryStore) Get(_ context.Context, id string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.sessions == nil {
		return nil, ErrStoreClosed
	}
	data, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate stored state in place.
	cp := *data
	return &cp, nil
}

func (s *memoryStore) Put(_ context.Context, data *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions == nil {
		return ErrStoreClosed
	}
	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	cp := *data
	s.sessions[data.ID] = &cp
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions == nil {
		return ErrStoreClosed
	}
	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
