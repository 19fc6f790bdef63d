package solver

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_HappyPath(t *testing.T) {
	st := Initial()
	require.Empty(t, st.History)
	require.Empty(t, st.Pending)

	guess, st, err := NextGuess(st)
	require.NoError(t, err)
	require.Equal(t, Opener, guess)
	require.Equal(t, Opener, st.Pending)

	st, err = RecordFeedback(st, 0, 3)
	require.NoError(t, err)
	require.Empty(t, st.Pending)
	require.Len(t, st.History, 1)
	assert.Equal(t, Observation{Guess: Opener, Bulls: 0, Cows: 3}, st.History[0])
	assert.False(t, Won(st))

	guess, st, err = NextGuess(st)
	require.NoError(t, err)
	require.NotEqual(t, Opener, guess)

	st, err = RecordFeedback(st, 4, 0)
	require.NoError(t, err)
	assert.True(t, Won(st))
}

func TestSession_Errors(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "second NextGuess without feedback is a StateError",
			run: func(t *testing.T) {
				_, st, err := NextGuess(Initial())
				require.NoError(t, err)

				_, after, err := NextGuess(st)
				var se *StateError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, st, after, "failed call must not change state")
			},
		},
		{
			name: "feedback without pending guess is a StateError",
			run: func(t *testing.T) {
				_, err := RecordFeedback(Initial(), 1, 1)
				var se *StateError
				require.ErrorAs(t, err, &se)
			},
		},
		{
			name: "bulls out of range is an InputError",
			run: func(t *testing.T) {
				_, st, err := NextGuess(Initial())
				require.NoError(t, err)

				_, err = RecordFeedback(st, 5, 0)
				var ie *InputError
				require.ErrorAs(t, err, &ie)
			},
		},
		{
			name: "bulls+cows over 4 is an InputError",
			run: func(t *testing.T) {
				_, st, err := NextGuess(Initial())
				require.NoError(t, err)

				_, err = RecordFeedback(st, 2, 3)
				var ie *InputError
				require.ErrorAs(t, err, &ie)
			},
		},
		{
			name: "failed feedback leaves state retryable",
			run: func(t *testing.T) {
				_, st, err := NextGuess(Initial())
				require.NoError(t, err)

				bad, err := RecordFeedback(st, -1, 0)
				require.Error(t, err)
				require.Equal(t, st, bad)

				good, err := RecordFeedback(st, 0, 3)
				require.NoError(t, err)
				require.Len(t, good.History, 1)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, tc.run)
	}
}

func TestSession_SurvivesSerialization(t *testing.T) {
	// a hosting layer round-trips state between calls; the game must
	// continue exactly as if the state had stayed live
	_, st, err := NextGuess(Initial())
	require.NoError(t, err)
	st, err = RecordFeedback(st, 0, 3)
	require.NoError(t, err)

	b, err := json.Marshal(st)
	require.NoError(t, err)

	var restored State
	require.NoError(t, json.Unmarshal(b, &restored))

	g1, _, err := NextGuess(st)
	require.NoError(t, err)
	g2, _, err := NextGuess(restored)
	require.NoError(t, err)
	require.Equal(t, g1, g2)
}

func TestSession_ContradictoryHistoryYieldsNoCandidates(t *testing.T) {
	// the session records whatever it is told; the emptiness shows up in
	// Candidates for the collaborator to act on
	st := State{History: []Observation{
		{Guess: "0123", Bulls: 0, Cows: 0}, // secret shares no digit with 0123
		{Guess: "0124", Bulls: 2, Cows: 2}, // ...but all four of 0124?
	}}
	require.Empty(t, Candidates(st))
}

func transcript(history []Observation) string {
	var sb strings.Builder
	for _, obs := range history {
		sb.WriteString(obs.Guess)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(obs.Bulls))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(obs.Cows))
		sb.WriteByte(';')
	}
	return sb.String()
}

func TestSession_EverySecretFoundWithinSevenRounds(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive sweep over all 5040 secrets")
	}

	// Identical histories produce identical guesses, so the sweep memoizes
	// the selector on the feedback transcript; shared prefixes make the
	// full simulation cheap.
	memo := map[string]string{}

	maxRounds := 0
	for _, secret := range AllCodes() {
		var history []Observation
		rounds := 0
		for {
			rounds++
			if rounds > 7 {
				t.Fatalf("secret %s not identified within 7 rounds", secret)
			}

			key := transcript(history)
			guess, ok := memo[key]
			if !ok {
				var err error
				guess, _, err = NextGuess(State{History: history})
				require.NoError(t, err, "secret %s round %d", secret, rounds)
				memo[key] = guess
			}

			b, c := Score(secret, guess)
			if b == 4 {
				break
			}
			history = append(history, Observation{Guess: guess, Bulls: b, Cows: c})
		}
		if rounds > maxRounds {
			maxRounds = rounds
		}
	}

	t.Logf("worst case over all secrets: %d rounds", maxRounds)
}
