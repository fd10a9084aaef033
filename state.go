package gfsm

// State is implemented by every participating state.
//
// Enter runs once each time the state becomes the top of the stack. Leave runs
// once each time it stops being the top, whether it was popped, replaced, or
// covered by a pushed state. Hooks must not call Transition on their machine.
type State interface {
	Enter()
	Leave()
}

// BaseState provides no-op hooks. Embed it to implement only the hooks you need.
type BaseState struct{}

// Enter does nothing.
func (BaseState) Enter() {}

// Leave does nothing.
func (BaseState) Leave() {}

// Declarer is implemented by states that carry their own transition table.
// The descriptors it returns are appended after the ones registered through
// the state's configuration.
type Declarer[TState, TToken comparable] interface {
	Transitions() []Descriptor[TState, TToken]
}

// Factory creates a fresh instance of a state variant.
type Factory func() State

// New returns a factory producing zero-valued instances of V.
func New[V any, PV interface {
	*V
	State
}]() Factory {
	return func() State {
		return PV(new(V))
	}
}
