package solver

// InputError — caller-correctable input problems: malformed code,
// bulls/cows out of range. The operation can be retried with fixed input.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// StateError — operation invoked in the wrong session state (guess already
// pending, no guess pending) or an exhausted guess pool. A protocol
// violation by the caller; the session state itself is left intact.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }
