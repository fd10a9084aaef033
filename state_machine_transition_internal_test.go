package gfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/gfsm"
)

// Reentrant calls from hooks and handlers are rejected.

type reentrantState struct {
	gfsm.BaseState
	sm  **gfsm.Machine[Variant, string]
	err error
}

func (s *reentrantState) Enter() {
	if *s.sm != nil {
		s.err = (*s.sm).Transition("x")
	}
}

func TestReentrantTransitionFromHandler(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB)).Permit("x", StateC)
	cfg.Configure(StateC, rec.factory(StateC))
	sm := newMachine(t, cfg)

	var nested error
	sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { nested = sm.Transition("x") })

	require.NoError(t, sm.Transition("x"))

	assert.ErrorIs(t, nested, gfsm.ErrReentrantTransition)
	assert.Equal(t, []Variant{StateB, StateA}, sm.Stack())
}

func TestReentrantTransitionFromHook(t *testing.T) {
	var sm *gfsm.Machine[Variant, string]
	hooked := &reentrantState{sm: &sm}

	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, func() gfsm.State { return hooked }).Permit("x", StateC)
	cfg.Configure(StateC, rec.factory(StateC))

	var err error
	sm, err = gfsm.NewMachine(cfg, StateA)
	require.NoError(t, err)

	require.NoError(t, sm.Transition("x"))

	assert.ErrorIs(t, hooked.err, gfsm.ErrReentrantTransition)
	assert.Equal(t, []Variant{StateB, StateA}, sm.Stack())

	// Outside of a hook the same call succeeds.
	require.NoError(t, sm.Transition("x"))
	assert.Equal(t, []Variant{StateC, StateB, StateA}, sm.Stack())
}
