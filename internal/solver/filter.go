package solver

// Observation is one completed round: a guess and the feedback it received.
type Observation struct {
	Guess string `json:"guess"`
	Bulls int    `json:"bulls"`
	Cows  int    `json:"cows"`
}

// Filter keeps the candidates that would have produced exactly obs's
// feedback had they been the secret. The result is always a subset of
// candidates; the true secret survives any honestly derived observation.
func Filter(candidates []string, obs Observation) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		b, cw := Score(c, obs.Guess)
		if b == obs.Bulls && cw == obs.Cows {
			out = append(out, c)
		}
	}
	return out
}

// Replay reconstructs the live candidate set by filtering the full universe
// through every observation in order. Order only affects intermediate set
// sizes, not the result.
func Replay(history []Observation) []string {
	candidates := AllCodes()
	for _, obs := range history {
		candidates = Filter(candidates, obs)
	}
	return candidates
}
