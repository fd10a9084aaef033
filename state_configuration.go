package gfsm

// StateConfiguration provides a fluent interface for declaring the outgoing
// transitions of a variant.
type StateConfiguration[TState, TToken comparable] struct {
	representation *stateRepresentation[TState, TToken]
}

func newStateConfiguration[TState, TToken comparable](
	representation *stateRepresentation[TState, TToken],
) *StateConfiguration[TState, TToken] {
	return &StateConfiguration[TState, TToken]{representation: representation}
}

// State returns the variant being configured.
func (sc *StateConfiguration[TState, TToken]) State() TState {
	return sc.representation.variant
}

// Permit configures a Push transition to destinationState when token is fired.
func (sc *StateConfiguration[TState, TToken]) Permit(token TToken, destinationState TState) *StateConfiguration[TState, TToken] {
	return sc.PermitMode(token, destinationState, Push)
}

// PermitPop configures a transition that unwinds the stack to destinationState
// when token is fired. The edge is only taken while destinationState is active.
func (sc *StateConfiguration[TState, TToken]) PermitPop(token TToken, destinationState TState) *StateConfiguration[TState, TToken] {
	return sc.PermitMode(token, destinationState, Pop)
}

// PermitPushPop configures a transition that replaces the current state with
// destinationState when token is fired.
func (sc *StateConfiguration[TState, TToken]) PermitPushPop(token TToken, destinationState TState) *StateConfiguration[TState, TToken] {
	return sc.PermitMode(token, destinationState, PushPop)
}

// PermitMode configures a transition to destinationState with an explicit mode.
func (sc *StateConfiguration[TState, TToken]) PermitMode(token TToken, destinationState TState, mode Mode) *StateConfiguration[TState, TToken] {
	sc.representation.addDescriptor(Descriptor[TState, TToken]{
		Token:  token,
		Target: destinationState,
		Mode:   mode,
	})
	return sc
}

// Exit configures a terminal transition: firing token empties the stack.
func (sc *StateConfiguration[TState, TToken]) Exit(token TToken) *StateConfiguration[TState, TToken] {
	return sc.ExitMode(token, Push)
}

// ExitMode configures a terminal transition with an explicit mode.
// The mode is recorded on the edge; the stack is emptied regardless.
func (sc *StateConfiguration[TState, TToken]) ExitMode(token TToken, mode Mode) *StateConfiguration[TState, TToken] {
	sc.representation.addDescriptor(Descriptor[TState, TToken]{
		Token:    token,
		Terminal: true,
		Mode:     mode,
	})
	return sc
}

// Declare appends raw descriptors to the variant's table.
func (sc *StateConfiguration[TState, TToken]) Declare(descriptors ...Descriptor[TState, TToken]) *StateConfiguration[TState, TToken] {
	for _, d := range descriptors {
		sc.representation.addDescriptor(d)
	}
	return sc
}
