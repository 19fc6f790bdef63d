package solver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectGuess_Opener(t *testing.T) {
	g, err := SelectGuess(AllCodes(), nil)
	require.NoError(t, err)
	require.Equal(t, Opener, g)
}

func TestSelectGuess_TwoCandidatesPicksDirectly(t *testing.T) {
	candidates := []string{"4567", "4576"}
	asked := map[string]bool{"0123": true, "4567": true}

	g, err := SelectGuess(candidates, asked)
	require.NoError(t, err)
	require.Equal(t, "4576", g, "must pick the unplayed candidate")
}

func TestSelectGuess_ExhaustedCandidates(t *testing.T) {
	candidates := []string{"4567"}
	asked := map[string]bool{"4567": true}

	_, err := SelectGuess(candidates, asked)
	var se *StateError
	require.ErrorAs(t, err, &se)
}

func TestSelectGuess_NeverRepeatsAndIsDeterministic(t *testing.T) {
	history := []Observation{{Guess: Opener, Bulls: 0, Cows: 3}}
	candidates := Replay(history)
	asked := map[string]bool{Opener: true}

	g1, err := SelectGuess(candidates, asked)
	require.NoError(t, err)
	require.False(t, asked[g1])
	require.NoError(t, ValidCode(g1))

	g2, err := SelectGuess(candidates, asked)
	require.NoError(t, err)
	require.Equal(t, g1, g2, "identical inputs must produce the identical guess")
}

// worstPartition is the reference minimax criterion: the size of the largest
// feedback class g induces over candidates.
func worstPartition(g string, candidates []string) int {
	parts := map[[2]int]int{}
	worst := 0
	for _, secret := range candidates {
		b, c := Score(secret, g)
		parts[[2]int{b, c}]++
		if parts[[2]int{b, c}] > worst {
			worst = parts[[2]int{b, c}]
		}
	}
	return worst
}

func TestSelectGuess_MinimaxIsOptimal(t *testing.T) {
	// digits 0-3 ruled out entirely: 6*5*4*3 = 360 candidates remain
	history := []Observation{{Guess: Opener, Bulls: 0, Cows: 0}}
	candidates := Replay(history)
	require.Len(t, candidates, 360)

	asked := map[string]bool{Opener: true}
	g, err := SelectGuess(candidates, asked)
	require.NoError(t, err)

	got := worstPartition(g, candidates)
	for _, other := range AllCodes() {
		if asked[other] {
			continue
		}
		require.LessOrEqual(t, got, worstPartition(other, candidates),
			"guess %s has worse worst-case than %s", g, other)
	}
}

func TestSelectGuess_TieBreakPrefersCandidates(t *testing.T) {
	history := []Observation{{Guess: Opener, Bulls: 0, Cows: 0}}
	candidates := Replay(history)
	asked := map[string]bool{Opener: true}

	g, err := SelectGuess(candidates, asked)
	require.NoError(t, err)

	// if any candidate achieves the chosen worst case, the chosen guess
	// must itself be a candidate
	got := worstPartition(g, candidates)
	candidateCanMatch := false
	for _, c := range candidates {
		if worstPartition(c, candidates) == got {
			candidateCanMatch = true
			break
		}
	}
	if candidateCanMatch {
		inCandidates := false
		for _, c := range candidates {
			if c == g {
				inCandidates = true
				break
			}
		}
		require.True(t, inCandidates, "tie must be broken toward a live candidate")
	}
}
