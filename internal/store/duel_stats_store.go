package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DuelStats is the human's record against the solver. BestWinRounds is the
// fewest rounds a won duel ever took (nil until the first win).
type DuelStats struct {
	AccountID     string
	Wins          int
	Losses        int
	BestWinRounds *int
	UpdatedAt     time.Time
}

type DuelStatsStore struct {
	db *pgxpool.Pool
}

func NewDuelStatsStore(db *pgxpool.Pool) *DuelStatsStore {
	return &DuelStatsStore{db: db}
}

func (s *DuelStatsStore) InitForAccount(ctx context.Context, accountID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO duel_stats (account_id, wins, losses)
		VALUES ($1, 0, 0)
		ON CONFLICT (account_id) DO NOTHING
	`, accountID)
	return err
}

func (s *DuelStatsStore) Get(ctx context.Context, accountID string) (DuelStats, error) {
	var st DuelStats
	err := s.db.QueryRow(ctx, `
		SELECT account_id, wins, losses, best_win_rounds, updated_at
		FROM duel_stats
		WHERE account_id = $1
	`, accountID).Scan(&st.AccountID, &st.Wins, &st.Losses, &st.BestWinRounds, &st.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// no row yet is not fatal, report zeroes
		return DuelStats{AccountID: accountID}, nil
	}
	if err != nil {
		return DuelStats{}, err
	}
	return st, nil
}

// Record satisfies game.ResultRecorder: winner is "human" (the account won
// against the solver) or "ai".
func (s *DuelStatsStore) Record(ctx context.Context, accountID, winner string, rounds int) error {
	switch winner {
	case "human":
		_, err := s.db.Exec(ctx, `
			INSERT INTO duel_stats (account_id, wins, losses, best_win_rounds)
			VALUES ($1, 1, 0, $2)
			ON CONFLICT (account_id) DO UPDATE SET
				wins = duel_stats.wins + 1,
				best_win_rounds = LEAST(COALESCE(duel_stats.best_win_rounds, $2), $2),
				updated_at = now()
		`, accountID, rounds)
		return err
	case "ai":
		_, err := s.db.Exec(ctx, `
			INSERT INTO duel_stats (account_id, wins, losses)
			VALUES ($1, 0, 1)
			ON CONFLICT (account_id) DO UPDATE SET
				losses = duel_stats.losses + 1,
				updated_at = now()
		`, accountID)
		return err
	}
	return nil
}
