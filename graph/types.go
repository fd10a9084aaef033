// Package graph provides visualization utilities for state machines.
package graph

import (
	"github.com/atlekbai/gfsm"
)

// State represents a state in the graph.
type State struct {
	// StateName is the name of the state.
	StateName string

	// NodeName is the name used for the node in the graph.
	NodeName string

	// Leaving are the transitions leaving this state.
	Leaving []*Transition

	// Arriving are the transitions arriving at this state.
	Arriving []*Transition

	// StateInfo contains the underlying state information.
	StateInfo *gfsm.StateInfo
}

// Transition represents a transition in the graph.
type Transition struct {
	// Token is the token that causes this transition.
	Token string

	// Mode is the stack discipline of the transition.
	Mode gfsm.Mode

	// SourceState is the source state of the transition.
	SourceState *State

	// DestinationState is the destination state, nil for terminal transitions.
	DestinationState *State
}

// IsTerminal returns true if the transition leaves the machine.
func (t *Transition) IsTerminal() bool {
	return t.DestinationState == nil
}

// Label returns the edge label: the token, followed by the mode unless it is Push.
func (t *Transition) Label() string {
	switch t.Mode {
	case gfsm.Pop:
		return t.Token + " [pop]"
	case gfsm.PushPop:
		return t.Token + " [pushpop]"
	default:
		return t.Token
	}
}
