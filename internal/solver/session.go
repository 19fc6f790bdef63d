package solver

// State is a solver session as plain data, so a hosting layer can serialize
// it between calls (the candidate set is replayed from History on demand
// rather than stored, which keeps persisted state O(rounds) instead of
// O(5040)).
//
// History holds completed rounds; Pending is the guess awaiting feedback,
// "" when none. A State is owned by exactly one game session; the hosting
// layer must serialize access to it.
type State struct {
	History []Observation `json:"history"`
	Pending string        `json:"pending,omitempty"`
}

// Initial returns a fresh session with no guesses made.
func Initial() State {
	return State{}
}

// NextGuess selects the next guess to play and returns the updated session
// with that guess pending. It fails with a StateError while a previous
// guess still awaits feedback.
func NextGuess(s State) (string, State, error) {
	if s.Pending != "" {
		return "", s, &StateError{Msg: "a guess is already awaiting feedback"}
	}

	candidates := Replay(s.History)
	asked := make(map[string]bool, len(s.History))
	for _, obs := range s.History {
		asked[obs.Guess] = true
	}

	guess, err := SelectGuess(candidates, asked)
	if err != nil {
		return "", s, err
	}

	next := s.clone()
	next.Pending = guess
	return guess, next, nil
}

// RecordFeedback moves the pending guess into history with the given
// feedback. It fails with an InputError on out-of-range feedback and with a
// StateError when no guess is pending; either way the input state is
// returned unchanged and the call can be retried.
//
// RecordFeedback does not verify that the feedback is honest — the session
// trusts its caller. A collaborator that knows the real secret can enforce
// honesty with Score before calling.
func RecordFeedback(s State, bulls, cows int) (State, error) {
	if s.Pending == "" {
		return s, &StateError{Msg: "no guess awaiting feedback"}
	}
	if bulls < 0 || bulls > 4 || cows < 0 || cows > 4 {
		return s, &InputError{Msg: "bulls and cows must be in 0..4"}
	}
	if bulls+cows > 4 {
		return s, &InputError{Msg: "bulls+cows must not exceed 4"}
	}

	next := s.clone()
	next.History = append(next.History, Observation{Guess: s.Pending, Bulls: bulls, Cows: cows})
	next.Pending = ""
	return next, nil
}

// Won reports whether the last recorded feedback scored four bulls.
func Won(s State) bool {
	n := len(s.History)
	return n > 0 && s.History[n-1].Bulls == 4
}

// Candidates returns the codes still consistent with the session history.
// An empty result means some past feedback was contradictory; the session
// keeps trusting its history, surfacing the contradiction is the caller's
// job.
func Candidates(s State) []string {
	return Replay(s.History)
}

func (s State) clone() State {
	return State{
		History: append([]Observation(nil), s.History...),
		Pending: s.Pending,
	}
}
