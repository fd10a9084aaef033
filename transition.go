package gfsm

import "fmt"

// NullString is the string representation of an absent state.
const NullString = "null"

// Descriptor declares one outgoing transition of a variant.
type Descriptor[TState, TToken comparable] struct {
	// Token is the trigger that selects this transition.
	Token TToken

	// Target is the destination variant. Ignored when Terminal is set.
	Target TState

	// Terminal marks an exit edge with no destination.
	Terminal bool

	// Mode is the stack discipline applied when the edge is taken.
	Mode Mode
}

// Transition describes one edge of the machine graph.
// Two transitions are equal when all of their fields are equal.
type Transition[TState, TToken comparable] struct {
	// Token is the trigger that selects this edge.
	Token TToken

	// From is the variant the edge leaves.
	From TState

	// To is the destination variant. Meaningless when Terminal is set.
	To TState

	// Terminal marks an exit edge. Taking it empties the stack.
	Terminal bool

	// Mode is the stack discipline applied when the edge is taken.
	Mode Mode
}

// NewTransition creates an edge between two variants.
func NewTransition[TState, TToken comparable](token TToken, from, to TState, mode Mode) Transition[TState, TToken] {
	return Transition[TState, TToken]{Token: token, From: from, To: to, Mode: mode}
}

// NewTerminalTransition creates an exit edge leaving from.
func NewTerminalTransition[TState, TToken comparable](token TToken, from TState, mode Mode) Transition[TState, TToken] {
	return Transition[TState, TToken]{Token: token, From: from, Terminal: true, Mode: mode}
}

// IsTerminal returns true if taking the transition ends the machine.
func (t Transition[TState, TToken]) IsTerminal() bool {
	return t.Terminal
}

// IsReentry returns true if the edge leads back to the variant it leaves.
func (t Transition[TState, TToken]) IsReentry() bool {
	return !t.Terminal && t.From == t.To
}

// Destination returns the target variant; the boolean is false for exit edges.
func (t Transition[TState, TToken]) Destination() (TState, bool) {
	if t.Terminal {
		var zero TState
		return zero, false
	}
	return t.To, true
}

func (t Transition[TState, TToken]) String() string {
	to := NullString
	if !t.Terminal {
		to = fmt.Sprintf("%v", t.To)
	}
	return fmt.Sprintf("%v + '%v' = %s", t.From, t.Token, to)
}
