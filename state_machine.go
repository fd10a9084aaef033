package gfsm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/atlekbai/gfsm/internal/logging"
)

// ExhaustedPolicy decides what Transition does when every candidate edge was
// a Pop towards a variant that is not on the stack.
type ExhaustedPolicy int

const (
	// ExhaustedFail returns a *NoValidCandidateError. This is the default.
	ExhaustedFail ExhaustedPolicy = iota

	// ExhaustedAbsorb returns nil. No hook fires and no event is dispatched.
	ExhaustedAbsorb
)

type options struct {
	logger    *slog.Logger
	exhausted ExhaustedPolicy
}

// Option configures a Machine.
type Option func(*options)

// WithLogger sets the structured logger used by the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithExhaustedPolicy sets how a call with no valid candidate is reported.
func WithExhaustedPolicy(policy ExhaustedPolicy) Option {
	return func(o *options) {
		o.exhausted = policy
	}
}

// Machine executes token-driven transitions over a stack of active states.
//
// A Machine is not safe for concurrent use. Calls must be serialized by the
// caller.
type Machine[TState, TToken comparable] struct {
	initial TState
	graph   *machineGraph[TState, TToken]
	stack   stack[TState]

	// onTransitioning fires after an edge is selected, before Leave.
	onTransitioning *TransitionEvent[TState, TToken]

	// onTransitioned fires after Enter on the new top.
	onTransitioned *TransitionEvent[TState, TToken]

	logger    *slog.Logger
	exhausted ExhaustedPolicy

	// firing is set while a transition runs, to reject reentrant calls.
	firing bool
}

// NewMachine builds the graph reachable from initial, activates initial and
// calls its Enter hook.
func NewMachine[TState, TToken comparable](
	cfg *Config[TState, TToken],
	initial TState,
	opts ...Option,
) (*Machine[TState, TToken], error) {
	if cfg == nil {
		return nil, &ArgumentError{ParamName: "cfg", Message: "configuration is nil"}
	}

	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	g, err := buildGraph(cfg, initial)
	if err != nil {
		return nil, err
	}

	sm := &Machine[TState, TToken]{
		initial:         initial,
		graph:           g,
		onTransitioning: NewTransitionEvent[TState, TToken](),
		onTransitioned:  NewTransitionEvent[TState, TToken](),
		logger:          o.logger,
		exhausted:       o.exhausted,
	}
	sm.logger.Debug("machine built",
		"initial", fmt.Sprint(initial),
		"states", len(g.order),
		"edges", len(g.edges))

	sm.stack.push(initial)
	g.states[initial].Enter()
	return sm, nil
}

// Transition fires token against the current state.
//
// The candidates are the edges leaving the current state with this token. A
// non-Pop candidate is preferred, in declaration order. Otherwise the Pop
// candidate whose target is nearest the top of the stack is taken; Pop
// candidates whose target is not on the stack are skipped. Validation happens
// before any hook runs, so a failed call leaves the machine untouched.
func (sm *Machine[TState, TToken]) Transition(token TToken) error {
	if sm.firing {
		sm.logger.Warn("reentrant transition rejected", "token", fmt.Sprint(token))
		return ErrReentrantTransition
	}
	sm.firing = true
	defer func() { sm.firing = false }()

	if !sm.graph.hasToken(token) {
		return &UnknownTokenError{Token: token}
	}

	source, ok := sm.stack.peek()
	if !ok {
		return &NoMatchingEdgeError{Token: token, Terminated: true}
	}

	candidates := sm.graph.candidates(source, token)
	if len(candidates) == 0 {
		return &NoMatchingEdgeError{
			Token:           token,
			State:           source,
			PermittedTokens: sm.permittedTokens(source),
		}
	}

	edge, distance, ok := sm.selectCandidate(candidates)
	if !ok {
		return sm.handleExhausted(source, token, candidates)
	}

	sm.executeTransition(source, edge, distance)
	return nil
}

// selectCandidate applies the tie-break and returns the chosen edge with the
// distance of its target from the top of the stack (meaningful for Pop only).
func (sm *Machine[TState, TToken]) selectCandidate(
	candidates []Transition[TState, TToken],
) (Transition[TState, TToken], int, bool) {
	remaining := make([]Transition[TState, TToken], len(candidates))
	copy(remaining, candidates)

	for len(remaining) > 0 {
		best := 0
		bestKey, bestDistance := sm.priority(remaining[0])
		for i := 1; i < len(remaining); i++ {
			if key, distance := sm.priority(remaining[i]); key < bestKey {
				best, bestKey, bestDistance = i, key, distance
			}
		}

		chosen := remaining[best]
		if chosen.Mode != Pop || chosen.Terminal || bestDistance >= 0 {
			return chosen, bestDistance, true
		}

		sm.logger.Debug("pop target is not active, candidate discarded", "edge", chosen.String())
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	var zero Transition[TState, TToken]
	return zero, -1, false
}

// priority returns the tie-break key of an edge (lower wins) and, for Pop
// edges, the distance of the target from the top or -1 when it is absent.
func (sm *Machine[TState, TToken]) priority(edge Transition[TState, TToken]) (int, int) {
	if edge.Mode != Pop {
		return -1, -1
	}
	if edge.Terminal {
		// Unwinds past the bottom: farther than any active target.
		return sm.stack.depth(), sm.stack.depth()
	}
	distance := sm.stack.indexOf(edge.To)
	if distance < 0 {
		return math.MaxInt, -1
	}
	return distance, distance
}

func (sm *Machine[TState, TToken]) handleExhausted(
	source TState,
	token TToken,
	candidates []Transition[TState, TToken],
) error {
	sm.logger.Warn("no valid candidate for the current stack",
		"state", fmt.Sprint(source),
		"token", fmt.Sprint(token),
		"candidates", len(candidates))

	if sm.exhausted == ExhaustedAbsorb {
		return nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.String()
	}
	return &NoValidCandidateError{Token: token, State: source, Candidates: names}
}

// executeTransition runs the hooks and events around the stack mutation.
func (sm *Machine[TState, TToken]) executeTransition(source TState, edge Transition[TState, TToken], distance int) {
	sm.logger.Debug("transition starting", "edge", edge.String(), "mode", edge.Mode.String())
	sm.onTransitioning.Invoke(edge)

	sm.graph.states[source].Leave()

	switch {
	case edge.Terminal:
		sm.stack.clear()
	case edge.Mode == Pop:
		sm.stack.drop(distance)
	case edge.Mode == PushPop:
		sm.stack.pop()
		sm.stack.push(edge.To)
	default:
		sm.stack.push(edge.To)
	}

	if top, ok := sm.stack.peek(); ok {
		sm.graph.states[top].Enter()
	}

	sm.logger.Debug("transition completed", "edge", edge.String(), "depth", sm.stack.depth())
	sm.onTransitioned.Invoke(edge)
}

// CurrentState returns the state on top of the stack, or nil once the machine
// has terminated.
func (sm *Machine[TState, TToken]) CurrentState() State {
	top, ok := sm.stack.peek()
	if !ok {
		return nil
	}
	return sm.graph.states[top]
}

// CurrentVariant returns the variant on top of the stack. The boolean is false
// once the machine has terminated.
func (sm *Machine[TState, TToken]) CurrentVariant() (TState, bool) {
	return sm.stack.peek()
}

// StateAs returns the current state narrowed to V. The boolean is false when
// the machine has terminated or the current state is not a V.
func StateAs[V any, TState, TToken comparable](sm *Machine[TState, TToken]) (V, bool) {
	v, ok := sm.CurrentState().(V)
	return v, ok
}

// Stack returns the active variants, top first.
func (sm *Machine[TState, TToken]) Stack() []TState {
	return sm.stack.snapshot()
}

// Depth returns the number of active states.
func (sm *Machine[TState, TToken]) Depth() int {
	return sm.stack.depth()
}

// IsTerminated returns true once a terminal edge has emptied the stack.
func (sm *Machine[TState, TToken]) IsTerminated() bool {
	return sm.stack.depth() == 0
}

// IsActive returns true if variant is anywhere on the stack.
func (sm *Machine[TState, TToken]) IsActive(variant TState) bool {
	return sm.stack.indexOf(variant) >= 0
}

// CanTransition returns true if firing token now would take an edge.
func (sm *Machine[TState, TToken]) CanTransition(token TToken) bool {
	source, ok := sm.stack.peek()
	if !ok {
		return false
	}
	candidates := sm.graph.candidates(source, token)
	if len(candidates) == 0 {
		return false
	}
	_, _, ok = sm.selectCandidate(candidates)
	return ok
}

// PermittedTokens returns the tokens declared on edges leaving the current
// state, in declaration order.
func (sm *Machine[TState, TToken]) PermittedTokens() []TToken {
	source, ok := sm.stack.peek()
	if !ok {
		return nil
	}
	return sm.tokensLeaving(source)
}

func (sm *Machine[TState, TToken]) tokensLeaving(source TState) []TToken {
	var out []TToken
	seen := make(map[TToken]struct{})
	for _, edge := range sm.graph.leaving[source] {
		if _, dup := seen[edge.Token]; dup {
			continue
		}
		seen[edge.Token] = struct{}{}
		out = append(out, edge.Token)
	}
	return out
}

func (sm *Machine[TState, TToken]) permittedTokens(source TState) []any {
	tokens := sm.tokensLeaving(source)
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = t
	}
	return out
}

// Initial returns the initial variant.
func (sm *Machine[TState, TToken]) Initial() TState {
	return sm.initial
}

// Variants returns every registered variant in discovery order.
func (sm *Machine[TState, TToken]) Variants() []TState {
	out := make([]TState, len(sm.graph.order))
	copy(out, sm.graph.order)
	return out
}

// Lookup returns the instance registered for variant.
func (sm *Machine[TState, TToken]) Lookup(variant TState) (State, bool) {
	s, ok := sm.graph.states[variant]
	return s, ok
}

// Edges returns the edge set in discovery order.
func (sm *Machine[TState, TToken]) Edges() []Transition[TState, TToken] {
	out := make([]Transition[TState, TToken], len(sm.graph.edges))
	copy(out, sm.graph.edges)
	return out
}

// OnTransitioning registers a handler called after an edge is selected and
// before the current state's Leave hook.
func (sm *Machine[TState, TToken]) OnTransitioning(handler func(Transition[TState, TToken])) Subscription {
	return sm.onTransitioning.Register(handler)
}

// OnTransitioned registers a handler called after the new top's Enter hook.
func (sm *Machine[TState, TToken]) OnTransitioned(handler func(Transition[TState, TToken])) Subscription {
	return sm.onTransitioned.Register(handler)
}

// Unsubscribe removes a handler registered with OnTransitioning or
// OnTransitioned. It returns false if the subscription is unknown.
func (sm *Machine[TState, TToken]) Unsubscribe(sub Subscription) bool {
	if sm.onTransitioning.Unregister(sub) {
		return true
	}
	return sm.onTransitioned.Unregister(sub)
}

// UnregisterAllCallbacks removes every registered handler.
func (sm *Machine[TState, TToken]) UnregisterAllCallbacks() {
	sm.onTransitioning.UnregisterAll()
	sm.onTransitioned.UnregisterAll()
}

// String returns a string representation of the current state.
func (sm *Machine[TState, TToken]) String() string {
	top, ok := sm.stack.peek()
	if !ok {
		return fmt.Sprintf("Machine { State = %s, Depth = 0 }", NullString)
	}
	return fmt.Sprintf("Machine { State = %v, Depth = %d }", top, sm.stack.depth())
}
