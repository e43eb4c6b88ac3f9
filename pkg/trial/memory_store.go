package trial

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memoryStore is an in-memory Store for tests and local development.
// A mutex stands in for the database uniqueness constraint.
type memoryStore struct {
	mu     sync.Mutex
	trials map[uuid.UUID]Trial
}

// NewMemoryStore returns an empty in-memory trial store.
func NewMemoryStore() Store {
	return &memoryStore{trials: make(map[uuid.UUID]Trial)}
}

func (s *memoryStore) Get(ctx context.Context, userID uuid.UUID) (*Trial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trials[userID]
	if !ok {
		return nil, ErrTrialNotFound
	}
	cp := t
	return &cp, nil
}

func (s *memoryStore) Create(ctx context.Context, t *Trial) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trials[t.UserID]; ok {
		return ErrTrialExists
	}
	s.trials[t.UserID] = *t
	return nil
}

func (s *memoryStore) Deactivate(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trials[userID]
	if !ok {
		return ErrTrialNotFound
	}
	t.Active = false
	s.trials[userID] = t
	return nil
}
