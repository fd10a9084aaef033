package gfsm

import "fmt"

// machineGraph is the materialised graph: one state per variant and the
// deduplicated edge set.
type machineGraph[TState, TToken comparable] struct {
	states  map[TState]State
	order   []TState
	edges   []Transition[TState, TToken]
	seen    map[Transition[TState, TToken]]struct{}
	leaving map[TState][]Transition[TState, TToken]
	tokens  map[TToken]struct{}
}

// buildGraph discovers every variant reachable from initial. Each variant is
// registered before its descriptors are followed, so cycles terminate at the
// first variant seen twice.
func buildGraph[TState, TToken comparable](cfg *Config[TState, TToken], initial TState) (*machineGraph[TState, TToken], error) {
	g := &machineGraph[TState, TToken]{
		states:  make(map[TState]State),
		seen:    make(map[Transition[TState, TToken]]struct{}),
		leaving: make(map[TState][]Transition[TState, TToken]),
		tokens:  make(map[TToken]struct{}),
	}
	if err := g.resolve(cfg, initial, nil); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *machineGraph[TState, TToken]) resolve(cfg *Config[TState, TToken], variant TState, path []string) error {
	if _, ok := g.states[variant]; ok {
		return nil
	}

	rep, ok := cfg.lookup(variant)
	if !ok {
		return &ConfigurationError{Variant: variant, Path: path, Err: ErrUnknownVariant}
	}
	if rep.factory == nil {
		return &ConfigurationError{Variant: variant, Path: path, Err: ErrNilFactory}
	}
	state := rep.factory()
	if state == nil {
		return &ConfigurationError{Variant: variant, Path: path, Err: ErrNilState}
	}

	g.states[variant] = state
	g.order = append(g.order, variant)

	descriptors := make([]Descriptor[TState, TToken], 0, len(rep.descriptors))
	descriptors = append(descriptors, rep.descriptors...)
	if d, ok := state.(Declarer[TState, TToken]); ok {
		descriptors = append(descriptors, d.Transitions()...)
	}

	for _, d := range descriptors {
		if !d.Mode.Valid() {
			return &ConfigurationError{
				Variant: variant,
				Path:    path,
				Err: &ArgumentError{
					ParamName: "mode",
					Message:   fmt.Sprintf("transition on token '%v' has invalid mode %v", d.Token, d.Mode),
				},
			}
		}

		if d.Terminal {
			g.addEdge(NewTerminalTransition(d.Token, variant, d.Mode))
			continue
		}

		edge := NewTransition(d.Token, variant, d.Target, d.Mode)
		next := append(path[:len(path):len(path)], edge.String())
		if err := g.resolve(cfg, d.Target, next); err != nil {
			return err
		}
		g.addEdge(edge)
	}
	return nil
}

func (g *machineGraph[TState, TToken]) addEdge(edge Transition[TState, TToken]) {
	if _, dup := g.seen[edge]; dup {
		return
	}
	g.seen[edge] = struct{}{}
	g.edges = append(g.edges, edge)
	g.leaving[edge.From] = append(g.leaving[edge.From], edge)
	g.tokens[edge.Token] = struct{}{}
}

func (g *machineGraph[TState, TToken]) hasToken(token TToken) bool {
	_, ok := g.tokens[token]
	return ok
}

// candidates returns the edges leaving from that carry token, in declaration order.
func (g *machineGraph[TState, TToken]) candidates(from TState, token TToken) []Transition[TState, TToken] {
	var out []Transition[TState, TToken]
	for _, edge := range g.leaving[from] {
		if edge.Token == token {
			out = append(out, edge)
		}
	}
	return out
}
