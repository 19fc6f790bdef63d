package solver

import "sync"

// UniverseSize is 10*9*8*7 ordered selections of 4 distinct digits.
const UniverseSize = 5040

var (
	universeOnce sync.Once
	universe     []string
)

// AllCodes returns every valid code in lexicographic order. The slice is
// built once per process and shared read-only; callers must not modify it.
func AllCodes() []string {
	universeOnce.Do(func() {
		universe = make([]string, 0, UniverseSize)
		for a := 0; a < 10; a++ {
			for b := 0; b < 10; b++ {
				if b == a {
					continue
				}
				for c := 0; c < 10; c++ {
					if c == a || c == b {
						continue
					}
					for d := 0; d < 10; d++ {
						if d == a || d == b || d == c {
							continue
						}
						universe = append(universe, string([]byte{
							byte('0' + a), byte('0' + b), byte('0' + c), byte('0' + d),
						}))
					}
				}
			}
		}
	})
	return universe
}
