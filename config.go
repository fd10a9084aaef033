package gfsm

// stateRepresentation is the configured shape of a variant before the graph
// is built: how to create it and which edges it declares.
type stateRepresentation[TState, TToken comparable] struct {
	variant     TState
	factory     Factory
	descriptors []Descriptor[TState, TToken]
}

func (sr *stateRepresentation[TState, TToken]) addDescriptor(d Descriptor[TState, TToken]) {
	sr.descriptors = append(sr.descriptors, d)
}

// Config collects the variants of a machine and their transition tables.
// A Config can be shared by several machines; each builds its own states.
type Config[TState, TToken comparable] struct {
	representations map[TState]*stateRepresentation[TState, TToken]
	order           []TState
}

// NewConfig creates an empty configuration.
func NewConfig[TState, TToken comparable]() *Config[TState, TToken] {
	return &Config[TState, TToken]{
		representations: make(map[TState]*stateRepresentation[TState, TToken]),
	}
}

// Configure begins configuration of a variant. Configuring the same variant
// again returns its existing configuration; a non-nil factory replaces the
// previous one.
func (c *Config[TState, TToken]) Configure(variant TState, factory Factory) *StateConfiguration[TState, TToken] {
	rep, ok := c.representations[variant]
	if !ok {
		rep = &stateRepresentation[TState, TToken]{variant: variant}
		c.representations[variant] = rep
		c.order = append(c.order, variant)
	}
	if factory != nil {
		rep.factory = factory
	}
	return newStateConfiguration(rep)
}

// IsConfigured returns true if the variant has been configured.
func (c *Config[TState, TToken]) IsConfigured(variant TState) bool {
	_, ok := c.representations[variant]
	return ok
}

// Variants returns the configured variants in configuration order.
func (c *Config[TState, TToken]) Variants() []TState {
	out := make([]TState, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Config[TState, TToken]) lookup(variant TState) (*stateRepresentation[TState, TToken], bool) {
	rep, ok := c.representations[variant]
	return rep, ok
}
