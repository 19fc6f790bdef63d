//go:build integration

package game

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, rdb.Ping(ctx).Err(), "redis is not reachable")
	return rdb
}

func TestRedisPersistence_CreateSaveLoad(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)

	// clean slate for determinism
	require.NoError(t, rdb.FlushDB(ctx).Err())

	persist := NewRedisDuelStore(rdb, 1*time.Hour)
	svc1 := NewDuelService(persist, nil)

	duelID := "dtest1"

	d, err := svc1.Create(ctx, duelID)
	require.NoError(t, err)
	d.aiSecret = "9876"

	code, _ := d.Attach("u1", "Alice", newTestConn())
	require.Empty(t, code)

	require.NoError(t, d.HumanGuess("0123"))
	require.NoError(t, d.AITurn())
	require.NoError(t, d.AIFeedback(0, 3))

	// simulate a restart: new service with an empty in-memory cache
	svc2 := NewDuelService(persist, nil)
	d2, ok, err := svc2.GetOrLoad(ctx, duelID)
	require.NoError(t, err)
	require.True(t, ok)

	d2.mu.Lock()
	defer d2.mu.Unlock()

	require.Equal(t, "human", d2.turn)
	require.Equal(t, "9876", d2.aiSecret)
	require.Len(t, d2.humanGuesses, 1)
	require.Len(t, d2.solverState.History, 1)
	require.Equal(t, "u1", d2.playerID)
}

func TestRedisPersistence_FinishedDuelStaysFinished(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	persist := NewRedisDuelStore(rdb, 1*time.Hour)
	svc := NewDuelService(persist, nil)

	duelID := "dtest2"
	d, err := svc.Create(ctx, duelID)
	require.NoError(t, err)
	d.aiSecret = "9876"

	code, _ := d.Attach("u1", "Alice", newTestConn())
	require.Empty(t, code)
	require.NoError(t, d.HumanGuess("9876"))

	svc2 := NewDuelService(persist, nil)
	d2, ok, err := svc2.GetOrLoad(ctx, duelID)
	require.NoError(t, err)
	require.True(t, ok)

	d2.mu.Lock()
	defer d2.mu.Unlock()

	require.Equal(t, "finished", d2.phase)
	require.Equal(t, WinnerHuman, d2.winner)
	require.Equal(t, 1, d2.seriesHumanWins)
}
