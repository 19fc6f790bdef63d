package solver

const codeLen = 4

// Score counts bulls and cows for probe against reference.
//
// Both codes must already be valid (4 distinct decimal digits); Score does
// not re-validate. A position matched as a bull is never also counted as a
// cow, and because each code's digits are distinct there is no
// double-counting across positions.
func Score(reference, probe string) (bulls, cows int) {
	for i := 0; i < codeLen; i++ {
		if probe[i] == reference[i] {
			bulls++
			continue
		}
		for j := 0; j < codeLen; j++ {
			if probe[i] == reference[j] {
				cows++
				break
			}
		}
	}
	return bulls, cows
}

// ValidCode checks that s is a playable code: exactly 4 decimal digits, all
// distinct. Inputs crossing the trust boundary (human-submitted codes) must
// pass through here before reaching Score or the session operations.
func ValidCode(s string) error {
	if len(s) != codeLen {
		return &InputError{Msg: "code must be exactly 4 digits"}
	}
	var seen [10]bool
	for i := 0; i < codeLen; i++ {
		if s[i] < '0' || s[i] > '9' {
			return &InputError{Msg: "code must contain digits 0-9 only"}
		}
		d := int(s[i] - '0')
		if seen[d] {
			return &InputError{Msg: "code digits must all be distinct"}
		}
		seen[d] = true
	}
	return nil
}
