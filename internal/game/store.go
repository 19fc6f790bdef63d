package game

import (
	"context"
	"sync"
)

// DuelPersistence — put/get a snapshot. Redis in production, in-memory in
// tests.
type DuelPersistence interface {
	Save(ctx context.Context, duelID string, snap DuelSnapshot) error
	Load(ctx context.Context, duelID string) (DuelSnapshot, bool, error)
}

type InMemoryDuelStore struct {
	mu sync.Mutex
	m  map[string]DuelSnapshot
}

func NewInMemoryDuelStore() *InMemoryDuelStore {
	return &InMemoryDuelStore{m: make(map[string]DuelSnapshot)}
}

func (s *InMemoryDuelStore) Save(ctx context.Context, duelID string, snap DuelSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[duelID] = snap
	return nil
}

func (s *InMemoryDuelStore) Load(ctx context.Context, duelID string) (DuelSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.m[duelID]
	return snap, ok, nil
}
