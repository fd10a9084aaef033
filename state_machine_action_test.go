package gfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/gfsm"
)

func TestHookAndEventOrder(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB))
	sm := newMachine(t, cfg)
	rec.reset()

	sm.OnTransitioning(func(tr gfsm.Transition[Variant, string]) { rec.add("starting %s", tr) })
	sm.OnTransitioned(func(tr gfsm.Transition[Variant, string]) { rec.add("completed %s", tr) })

	require.NoError(t, sm.Transition("x"))

	assert.Equal(t, []string{
		"starting StateA + 'x' = StateB",
		"leave StateA",
		"enter StateB",
		"completed StateA + 'x' = StateB",
	}, rec.calls)
}

func TestEventObservesStack(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB))
	sm := newMachine(t, cfg)

	var before, after []Variant
	sm.OnTransitioning(func(gfsm.Transition[Variant, string]) { before = sm.Stack() })
	sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { after = sm.Stack() })

	require.NoError(t, sm.Transition("x"))

	assert.Equal(t, []Variant{StateA}, before)
	assert.Equal(t, []Variant{StateB, StateA}, after)
}

func TestMultipleSubscribersInRegistrationOrder(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB)).Permit("x", StateA)
	sm := newMachine(t, cfg)

	var order []int
	for i := 1; i <= 3; i++ {
		sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { order = append(order, i) })
	}

	require.NoError(t, sm.Transition("x"))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribe(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB)).Permit("x", StateA)
	sm := newMachine(t, cfg)

	var starting, completed int
	s1 := sm.OnTransitioning(func(gfsm.Transition[Variant, string]) { starting++ })
	s2 := sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { completed++ })
	require.True(t, s1.Valid())
	require.True(t, s2.Valid())

	require.NoError(t, sm.Transition("x"))
	assert.True(t, sm.Unsubscribe(s1))
	assert.False(t, sm.Unsubscribe(s1))
	require.NoError(t, sm.Transition("x"))

	assert.Equal(t, 1, starting)
	assert.Equal(t, 2, completed)

	sm.UnregisterAllCallbacks()
	require.NoError(t, sm.Transition("x"))
	assert.Equal(t, 2, completed)
	assert.False(t, sm.Unsubscribe(s2))
}

func TestNilHandlerIsIgnored(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB))
	sm := newMachine(t, cfg)

	sub := sm.OnTransitioned(nil)
	assert.False(t, sub.Valid())
	require.NoError(t, sm.Transition("x"))
}

func TestPanickingSubscriberPropagates(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateB, rec.factory(StateB)).Permit("y", StateA)
	sm := newMachine(t, cfg)

	sub := sm.OnTransitioning(func(gfsm.Transition[Variant, string]) { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { _ = sm.Transition("x") })

	// The machine accepts calls again once the panic has unwound.
	sm.Unsubscribe(sub)
	require.NoError(t, sm.Transition("x"))
	assert.Equal(t, []Variant{StateB, StateA}, sm.Stack())
}

func TestTransitionEvent(t *testing.T) {
	ev := gfsm.NewTransitionEvent[Variant, string]()
	other := gfsm.NewTransitionEvent[Variant, string]()

	var got []string
	sub := ev.Register(func(tr gfsm.Transition[Variant, string]) { got = append(got, tr.Token) })
	otherSub := other.Register(func(gfsm.Transition[Variant, string]) {})

	assert.Equal(t, 1, ev.Len())
	assert.False(t, ev.Unregister(otherSub), "subscriptions are bound to their event")

	ev.Invoke(gfsm.NewTransition("t", StateA, StateB, gfsm.Push))
	assert.Equal(t, []string{"t"}, got)

	assert.True(t, ev.Unregister(sub))
	assert.Zero(t, ev.Len())
}
