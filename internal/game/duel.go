package game

import (
	"encoding/json"
	"math/rand/v2"
	"sync"

	"example.com/bc-solver/internal/solver"
)

const (
	WinnerHuman = "human"
	WinnerAI    = "ai"
)

// Duel is one human playing against the solver. The human tries to crack
// the AI's randomly drawn secret; the AI deduces the human's secret purely
// from the bulls/cows feedback the human reports. Turns alternate, human
// first.
//
// All access goes through the mutex; the solver core itself does no locking
// and relies on the duel to serialize calls per session.
type Duel struct {
	id string
	mu sync.Mutex

	phase string // waiting_player|playing|finished
	turn  string // human|ai

	aiSecret    string // the code the human is guessing at
	humanSecret string // optional; enables honesty checks on AI feedback

	solverState    solver.State
	candidatesLeft int

	humanGuesses []GuessResult
	aiGuesses    []GuessResult

	winner string // human|ai|""

	playerID   string
	playerName string
	conn       *ClientConn
	connected  bool

	seriesHumanWins int
	seriesAIWins    int

	onPersist func(DuelSnapshot)
	onFinish  func(winner string, rounds int)
}

func NewDuel(id string) *Duel {
	return &Duel{
		id:             id,
		phase:          "waiting_player",
		turn:           "human",
		aiSecret:       randomSecret(),
		solverState:    solver.Initial(),
		candidatesLeft: solver.UniverseSize,
	}
}

func randomSecret() string {
	all := solver.AllCodes()
	return all[rand.IntN(len(all))]
}

// Attach binds the player connection. The duel holds a single seat; the
// same player may reconnect, anyone else is rejected.
func (d *Duel) Attach(playerID, name string, cc *ClientConn) (errCode, errMsg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.playerID != "" && d.playerID != playerID {
		return "duel_taken", "duel already belongs to another player"
	}

	d.playerID = playerID
	if name != "" {
		d.playerName = name
	}
	d.conn = cc
	d.connected = true
	d.updatePhaseLocked()
	d.persistLocked()
	return "", ""
}

func (d *Duel) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.connected = false
	d.conn = nil
	d.updatePhaseLocked()
}

// SetSecret registers the human's secret so the duel can referee the
// feedback the human gives the AI. Optional: without it the AI plays on
// trust, as in the original "think of a number" mode.
func (d *Duel) SetSecret(secret string) error {
	if err := solver.ValidCode(secret); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase == "finished" {
		return duelErr("bad_state", "duel already finished")
	}
	if len(d.aiGuesses) > 0 {
		return duelErr("bad_state", "secret can only be registered before the AI receives feedback")
	}

	d.humanSecret = secret
	d.broadcastStateLocked()
	d.persistLocked()
	return nil
}

// HumanGuess scores the human's guess against the AI secret. Four bulls end
// the duel; otherwise the turn passes to the AI.
func (d *Duel) HumanGuess(guess string) error {
	if err := solver.ValidCode(guess); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != "playing" {
		return duelErr("bad_state", "duel is not in playing phase")
	}
	if d.turn != "human" {
		return duelErr("bad_state", "it is not your turn")
	}

	bulls, cows := solver.Score(d.aiSecret, guess)
	d.humanGuesses = append(d.humanGuesses, GuessResult{Guess: guess, Bulls: bulls, Cows: cows})

	won := bulls == 4
	d.broadcastLocked(Envelope{Type: "human_result", Payload: mustJSON(HumanResultPayload{
		Guess: guess,
		Bulls: bulls,
		Cows:  cows,
		Won:   won,
	})})

	if won {
		d.finishLocked(WinnerHuman)
		return nil
	}

	d.turn = "ai"
	d.broadcastStateLocked()
	d.persistLocked()
	return nil
}

// AITurn makes the solver pick its next guess and announces it. Calling it
// again while feedback is still owed re-announces the same pending guess.
func (d *Duel) AITurn() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != "playing" {
		return duelErr("bad_state", "duel is not in playing phase")
	}
	if d.turn != "ai" {
		return duelErr("bad_state", "it is not the AI's turn")
	}

	if g := d.solverState.Pending; g != "" {
		d.broadcastLocked(Envelope{Type: "ai_guess", Payload: mustJSON(AIGuessPayload{
			Round: len(d.aiGuesses) + 1,
			Guess: g,
		})})
		return nil
	}

	guess, next, err := solver.NextGuess(d.solverState)
	if err != nil {
		return err
	}
	d.solverState = next

	d.broadcastLocked(Envelope{Type: "ai_guess", Payload: mustJSON(AIGuessPayload{
		Round: len(d.aiGuesses) + 1,
		Guess: guess,
	})})
	d.broadcastStateLocked()
	d.persistLocked()
	return nil
}

// AIFeedback applies the human's bulls/cows answer for the pending AI
// guess. With a registered human secret the answer is refereed against the
// real score; without one, feedback that leaves the solver with zero
// consistent candidates is rejected as contradictory.
func (d *Duel) AIFeedback(bulls, cows int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != "playing" {
		return duelErr("bad_state", "duel is not in playing phase")
	}
	if d.turn != "ai" {
		return duelErr("bad_state", "it is not the AI's turn")
	}

	pending := d.solverState.Pending
	if d.humanSecret != "" && pending != "" {
		realBulls, realCows := solver.Score(d.humanSecret, pending)
		if bulls != realBulls || cows != realCows {
			return duelErr("dishonest_feedback",
				"incorrect feedback: the real result is %d bulls, %d cows", realBulls, realCows)
		}
	}

	next, err := solver.RecordFeedback(d.solverState, bulls, cows)
	if err != nil {
		return err
	}

	won := solver.Won(next)
	candidates := solver.Candidates(next)
	if !won && len(candidates) == 0 {
		// contradictory history; reject without committing so the human can
		// correct the answer
		return duelErr("inconsistent_feedback",
			"feedback contradicts earlier answers: no code matches all of them")
	}

	d.solverState = next
	d.candidatesLeft = len(candidates)
	d.aiGuesses = append(d.aiGuesses, GuessResult{Guess: pending, Bulls: bulls, Cows: cows})

	if won {
		d.finishLocked(WinnerAI)
		return nil
	}

	d.turn = "human"
	d.broadcastStateLocked()
	d.persistLocked()
	return nil
}

// RequestRematch restarts a finished duel: fresh AI secret, fresh solver
// state, series score kept.
func (d *Duel) RequestRematch() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.phase != "finished" {
		return duelErr("bad_state", "rematch available only after the duel finished")
	}

	d.phase = "playing"
	d.turn = "human"
	d.winner = ""
	d.aiSecret = randomSecret()
	d.humanSecret = ""
	d.solverState = solver.Initial()
	d.candidatesLeft = solver.UniverseSize
	d.humanGuesses = nil
	d.aiGuesses = nil

	d.broadcastLocked(Envelope{Type: "rematch_started", Payload: mustJSON(map[string]any{
		"series": SeriesScore{HumanWins: d.seriesHumanWins, AIWins: d.seriesAIWins},
	})})
	d.broadcastStateLocked()
	d.persistLocked()
	return nil
}

func (d *Duel) SendError(code, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.broadcastLocked(Envelope{
		Type:    "error",
		Payload: mustJSON(ErrorPayload{Code: code, Message: message}),
	})
}

func (d *Duel) SendState() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.broadcastStateLocked()
}

func (d *Duel) finishLocked(winner string) {
	d.winner = winner
	d.phase = "finished"

	switch winner {
	case WinnerHuman:
		d.seriesHumanWins++
	case WinnerAI:
		d.seriesAIWins++
	}

	rounds := len(d.humanGuesses)
	if winner == WinnerAI {
		rounds = len(d.aiGuesses)
	}

	d.broadcastLocked(Envelope{Type: "duel_finished", Payload: mustJSON(map[string]any{
		"winner": winner,
		"rounds": rounds,
		"series": SeriesScore{HumanWins: d.seriesHumanWins, AIWins: d.seriesAIWins},
	})})
	d.broadcastStateLocked()
	d.persistLocked()

	if d.onFinish != nil {
		d.onFinish(winner, rounds)
	}
}

func (d *Duel) updatePhaseLocked() {
	if d.phase == "finished" {
		return
	}
	if !d.connected {
		d.phase = "waiting_player"
		return
	}
	d.phase = "playing"
}

func (d *Duel) buildStateLocked() StatePayload {
	st := StatePayload{
		DuelID:           d.id,
		PlayerName:       d.playerName,
		Phase:            d.phase,
		Turn:             d.turn,
		HumanGuesses:     d.humanGuesses,
		AIGuesses:        d.aiGuesses,
		PendingAIGuess:   d.solverState.Pending,
		CandidatesLeft:   d.candidatesLeft,
		SecretRegistered: d.humanSecret != "",
		Winner:           d.winner,
		Series:           SeriesScore{HumanWins: d.seriesHumanWins, AIWins: d.seriesAIWins},
	}
	if d.phase == "finished" {
		st.RevealedAISecret = d.aiSecret
	}
	return st
}

func (d *Duel) broadcastStateLocked() {
	d.broadcastLocked(Envelope{Type: "state", Payload: mustJSON(d.buildStateLocked())})
}

func (d *Duel) broadcastLocked(env Envelope) {
	if d.conn == nil {
		return
	}
	b, _ := json.Marshal(env)
	select {
	case d.conn.send <- b:
	default:
		// slow client: drop rather than block the duel
	}
}

func (d *Duel) persistLocked() {
	if d.onPersist == nil {
		return
	}
	d.onPersist(d.snapshotLocked())
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
