package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisDuelStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDuelStore(rdb *redis.Client, ttl time.Duration) *RedisDuelStore {
	return &RedisDuelStore{rdb: rdb, ttl: ttl}
}

func (s *RedisDuelStore) key(duelID string) string {
	return fmt.Sprintf("duel:%s:snapshot", duelID)
}

func (s *RedisDuelStore) Save(ctx context.Context, duelID string, snap DuelSnapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(duelID), b, s.ttl).Err()
}

func (s *RedisDuelStore) Load(ctx context.Context, duelID string) (DuelSnapshot, bool, error) {
	val, err := s.rdb.Get(ctx, s.key(duelID)).Bytes()
	if err == redis.Nil {
		return DuelSnapshot{}, false, nil
	}
	if err != nil {
		return DuelSnapshot{}, false, err
	}

	var snap DuelSnapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return DuelSnapshot{}, false, err
	}
	return snap, true, nil
}
