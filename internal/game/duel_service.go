package game

import (
	"context"
	"sync"
)

// ResultRecorder receives final duel outcomes, keyed by account. Nil
// disables recording (e.g. anonymous play in tests).
type ResultRecorder interface {
	Record(ctx context.Context, accountID, winner string, rounds int) error
}

// DuelService owns the in-memory duel cache and restores duels from
// persistent storage after a restart.
type DuelService struct {
	mu sync.Mutex
	in map[string]*Duel

	persist DuelPersistence
	results ResultRecorder
}

func NewDuelService(persist DuelPersistence, results ResultRecorder) *DuelService {
	return &DuelService{
		in:      make(map[string]*Duel),
		persist: persist,
		results: results,
	}
}

func (s *DuelService) Create(ctx context.Context, duelID string) (*Duel, error) {
	d := NewDuel(duelID)
	s.attachHooks(ctx, duelID, d)

	d.mu.Lock()
	snap := d.snapshotLocked()
	d.mu.Unlock()
	if err := s.persist.Save(ctx, duelID, snap); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.in[duelID] = d
	s.mu.Unlock()

	return d, nil
}

func (s *DuelService) GetOrLoad(ctx context.Context, duelID string) (*Duel, bool, error) {
	s.mu.Lock()
	d, ok := s.in[duelID]
	s.mu.Unlock()
	if ok {
		return d, true, nil
	}

	snap, found, err := s.persist.Load(ctx, duelID)
	if err != nil || !found {
		return nil, false, err
	}

	d = NewDuel(duelID)
	d.mu.Lock()
	d.restoreLocked(snap)
	d.mu.Unlock()
	s.attachHooks(ctx, duelID, d)

	s.mu.Lock()
	s.in[duelID] = d
	s.mu.Unlock()

	return d, true, nil
}

// attachHooks wires persistence and result recording into the duel. Saves
// are best-effort: an unavailable store must not break a running duel.
func (s *DuelService) attachHooks(ctx context.Context, duelID string, d *Duel) {
	d.onPersist = func(snap DuelSnapshot) {
		_ = s.persist.Save(ctx, duelID, snap)
	}
	d.onFinish = func(winner string, rounds int) {
		if s.results == nil || d.playerID == "" {
			return
		}
		_ = s.results.Record(ctx, d.playerID, winner, rounds)
	}
}
