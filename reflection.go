package gfsm

import "fmt"

// MachineInfo exposes the states and transitions of a machine.
type MachineInfo struct {
	// InitialState is the initial state of the machine.
	InitialState *StateInfo

	// States contains all registered states, in discovery order.
	States []*StateInfo

	// StateType is a string representation of the variant type.
	StateType string

	// TokenType is a string representation of the token type.
	TokenType string
}

// StateInfo describes one registered state.
type StateInfo struct {
	// UnderlyingState is the variant this state represents.
	UnderlyingState any

	// Transitions are the edges leaving this state, in declaration order.
	Transitions []TransitionInfo
}

// String returns the string representation of the state.
func (s *StateInfo) String() string {
	if s == nil || s.UnderlyingState == nil {
		return NullString
	}
	return fmt.Sprintf("%v", s.UnderlyingState)
}

// TransitionInfo describes one edge leaving a state.
type TransitionInfo struct {
	// Token is the trigger of the edge.
	Token any

	// DestinationState is nil for terminal edges.
	DestinationState *StateInfo

	// Mode is the stack discipline of the edge.
	Mode Mode
}

// IsTerminal returns true for exit edges.
func (t TransitionInfo) IsTerminal() bool {
	return t.DestinationState == nil
}

// TokenString returns the string representation of the token.
func (t TransitionInfo) TokenString() string {
	if t.Token == nil {
		return NullString
	}
	return fmt.Sprintf("%v", t.Token)
}

// Info returns information about the machine graph for introspection.
func (sm *Machine[TState, TToken]) Info() *MachineInfo {
	infos := make(map[TState]*StateInfo, len(sm.graph.order))
	states := make([]*StateInfo, 0, len(sm.graph.order))
	for _, variant := range sm.graph.order {
		info := &StateInfo{UnderlyingState: variant}
		infos[variant] = info
		states = append(states, info)
	}

	for _, variant := range sm.graph.order {
		info := infos[variant]
		for _, edge := range sm.graph.leaving[variant] {
			ti := TransitionInfo{Token: edge.Token, Mode: edge.Mode}
			if !edge.Terminal {
				ti.DestinationState = infos[edge.To]
			}
			info.Transitions = append(info.Transitions, ti)
		}
	}

	return &MachineInfo{
		InitialState: infos[sm.initial],
		States:       states,
		StateType:    fmt.Sprintf("%T", sm.initial),
		TokenType:    fmt.Sprintf("%T", *new(TToken)),
	}
}
