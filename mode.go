package gfsm

import (
	"fmt"
	"strings"
)

// Mode is the stack discipline applied when a transition is taken.
type Mode int

const (
	// Push nests the target above the current state. This is the default.
	Push Mode = iota

	// Pop unwinds the stack to the target, which must already be active.
	Pop

	// PushPop replaces the current state with the target at the same depth.
	PushPop
)

func (m Mode) String() string {
	switch m {
	case Push:
		return "Push"
	case Pop:
		return "Pop"
	case PushPop:
		return "PushPop"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m >= Push && m <= PushPop
}

// ParseMode converts a mode name into a Mode. Matching is case-insensitive and
// an empty string yields Push.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "push":
		return Push, nil
	case "pop":
		return Pop, nil
	case "pushpop", "push_pop", "push-pop":
		return PushPop, nil
	default:
		return Push, &ArgumentError{ParamName: "mode", Message: fmt.Sprintf("unknown mode %q", s)}
	}
}
