package game

import (
	"errors"
	"fmt"

	"example.com/bc-solver/internal/solver"
)

// DuelError carries the wire code sent in the WS error envelope.
type DuelError struct {
	Code    string
	Message string
}

func (e *DuelError) Error() string { return e.Message }

func duelErr(code, format string, args ...any) error {
	return &DuelError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wireCode maps an error to its WS error code. Solver errors keep their
// kind visible to the client.
func wireCode(err error) string {
	var de *DuelError
	if errors.As(err, &de) {
		return de.Code
	}
	var ie *solver.InputError
	if errors.As(err, &ie) {
		return "bad_input"
	}
	var se *solver.StateError
	if errors.As(err, &se) {
		return "bad_state"
	}
	return "bad_input"
}
