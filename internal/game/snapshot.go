package game

import "example.com/bc-solver/internal/solver"

// DuelSnapshot is the serializable state of a duel, small enough to keep in
// Redis per request: the solver carries only its feedback history, never the
// candidate set.
type DuelSnapshot struct {
	DuelID string `json:"duelId"`

	Phase string `json:"phase"`
	Turn  string `json:"turn"`

	AISecret    string `json:"aiSecret"`
	HumanSecret string `json:"humanSecret,omitempty"`

	Solver solver.State `json:"solver"`

	HumanGuesses []GuessResult `json:"humanGuesses"`
	AIGuesses    []GuessResult `json:"aiGuesses"`

	Winner string `json:"winner"`

	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`

	SeriesHumanWins int `json:"seriesHumanWins"`
	SeriesAIWins    int `json:"seriesAiWins"`
}

func (d *Duel) snapshotLocked() DuelSnapshot {
	return DuelSnapshot{
		DuelID: d.id,

		Phase: d.phase,
		Turn:  d.turn,

		AISecret:    d.aiSecret,
		HumanSecret: d.humanSecret,

		Solver: solver.State{
			History: append([]solver.Observation(nil), d.solverState.History...),
			Pending: d.solverState.Pending,
		},

		HumanGuesses: append([]GuessResult(nil), d.humanGuesses...),
		AIGuesses:    append([]GuessResult(nil), d.aiGuesses...),

		Winner: d.winner,

		PlayerID:   d.playerID,
		PlayerName: d.playerName,

		SeriesHumanWins: d.seriesHumanWins,
		SeriesAIWins:    d.seriesAIWins,
	}
}

func (d *Duel) restoreLocked(s DuelSnapshot) {
	d.phase = s.Phase
	d.turn = s.Turn

	d.aiSecret = s.AISecret
	d.humanSecret = s.HumanSecret

	d.solverState = s.Solver
	d.candidatesLeft = len(solver.Candidates(s.Solver))

	d.humanGuesses = append([]GuessResult(nil), s.HumanGuesses...)
	d.aiGuesses = append([]GuessResult(nil), s.AIGuesses...)

	d.winner = s.Winner

	d.playerID = s.PlayerID
	d.playerName = s.PlayerName

	d.seriesHumanWins = s.SeriesHumanWins
	d.seriesAIWins = s.SeriesAIWins

	// nobody is attached right after a restore
	if d.phase != "finished" {
		d.phase = "waiting_player"
	}
}
