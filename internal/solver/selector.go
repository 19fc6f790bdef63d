package solver

// Opener is the fixed first guess. Four distinct digits extract the most
// positional information on move one whatever the secret turns out to be.
const Opener = "0123"

// SelectGuess picks the next guess to play given the current consistent
// candidate set and the guesses already played this session.
//
// With more than two candidates left it runs a minimax pass: every unplayed
// code partitions the candidates by the feedback it would receive, and the
// code whose largest partition is smallest wins. Ties prefer a code that is
// itself still a candidate (it could be the answer outright, saving a
// round), then first found in evaluation order, so identical inputs always
// produce the identical guess.
func SelectGuess(candidates []string, asked map[string]bool) (string, error) {
	if len(asked) == 0 {
		return Opener, nil
	}

	// With at most two possibilities the worst case is already one wrong
	// guess; playing a candidate directly is optimal.
	if len(candidates) <= 2 {
		for _, c := range candidates {
			if !asked[c] {
				return c, nil
			}
		}
		return "", &StateError{Msg: "no unplayed candidate left"}
	}

	inCandidates := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		inCandidates[c] = true
	}

	// Candidates first, then the rest of the universe: a candidate that ties
	// on worst case is found before an equivalent outsider.
	pool := make([]string, 0, UniverseSize)
	pool = append(pool, candidates...)
	for _, c := range AllCodes() {
		if !inCandidates[c] {
			pool = append(pool, c)
		}
	}

	best := ""
	bestWorst := len(candidates) + 1
	bestIn := false
	for _, g := range pool {
		if asked[g] {
			continue
		}

		// 5*bulls+cows indexes the 25 possible (bulls, cows) outcomes.
		var parts [25]int
		worst := 0
		for _, secret := range candidates {
			b, c := Score(secret, g)
			parts[5*b+c]++
			if parts[5*b+c] > worst {
				worst = parts[5*b+c]
			}
		}

		if worst < bestWorst || (worst == bestWorst && inCandidates[g] && !bestIn) {
			best = g
			bestWorst = worst
			bestIn = inCandidates[g]
		}
	}

	// Unreachable in valid play: the universe is far larger than any
	// feasible number of rounds.
	if best == "" {
		return "", &StateError{Msg: "guess pool exhausted"}
	}
	return best, nil
}
