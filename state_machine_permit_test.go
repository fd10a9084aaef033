package gfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/gfsm"
)

// declaringState carries its own transition table.
type declaringState struct {
	gfsm.BaseState
}

func (declaringState) Transitions() []gfsm.Descriptor[Variant, string] {
	return []gfsm.Descriptor[Variant, string]{
		{Token: "pop", Target: StateA, Mode: gfsm.Pop},
		{Token: "quit", Terminal: true},
	}
}

func TestConfigure_ReturnsSameConfiguration(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("x", StateB)
	cfg.Configure(StateA, nil).Permit("y", StateB)
	cfg.Configure(StateB, rec.factory(StateB))

	assert.True(t, cfg.IsConfigured(StateA))
	assert.False(t, cfg.IsConfigured(StateC))
	assert.Equal(t, []Variant{StateA, StateB}, cfg.Variants())

	sm := newMachine(t, cfg)
	assert.Equal(t, []string{"x", "y"}, sm.PermittedTokens())
	// A nil factory on reconfiguration keeps the previous one.
	st, _ := sm.Lookup(StateA)
	assert.IsType(t, &hookState{}, st)
}

func TestConfigure_ReplacesFactory(t *testing.T) {
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, gfsm.New[hookState]())
	cfg.Configure(StateA, gfsm.New[declaringState]())

	_, err := gfsm.NewMachine(cfg, StateA)
	require.NoError(t, err)
}

func TestConfigure_State(t *testing.T) {
	cfg := gfsm.NewConfig[Variant, string]()
	assert.Equal(t, StateC, cfg.Configure(StateC, nil).State())
}

func TestPermitVariants(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).
		Permit("push", StateB).
		PermitPop("pop", StateB).
		PermitPushPop("lateral", StateB).
		PermitMode("explicit", StateB, gfsm.PushPop).
		Exit("quit").
		ExitMode("abort", gfsm.Pop).
		Declare(gfsm.Descriptor[Variant, string]{Token: "raw", Target: StateB})
	cfg.Configure(StateB, rec.factory(StateB))

	sm := newMachine(t, cfg)

	assert.Equal(t, []gfsm.Transition[Variant, string]{
		gfsm.NewTransition("push", StateA, StateB, gfsm.Push),
		gfsm.NewTransition("pop", StateA, StateB, gfsm.Pop),
		gfsm.NewTransition("lateral", StateA, StateB, gfsm.PushPop),
		gfsm.NewTransition("explicit", StateA, StateB, gfsm.PushPop),
		gfsm.NewTerminalTransition("quit", StateA, gfsm.Push),
		gfsm.NewTerminalTransition("abort", StateA, gfsm.Pop),
		gfsm.NewTransition("raw", StateA, StateB, gfsm.Push),
	}, sm.Edges())
}

func TestDeclarerDescriptorsAppended(t *testing.T) {
	rec := &recorder{}
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).Permit("in", StateB)
	cfg.Configure(StateB, gfsm.New[declaringState]()).Permit("in", StateC)
	cfg.Configure(StateC, rec.factory(StateC))

	sm := newMachine(t, cfg)
	require.NoError(t, sm.Transition("in"))

	assert.Equal(t, []string{"in", "pop", "quit"}, sm.PermittedTokens())

	require.NoError(t, sm.Transition("pop"))
	assert.Equal(t, []Variant{StateA}, sm.Stack())
}

func TestParseMode(t *testing.T) {
	cases := map[string]gfsm.Mode{
		"":         gfsm.Push,
		"push":     gfsm.Push,
		"Pop":      gfsm.Pop,
		"PUSHPOP":  gfsm.PushPop,
		"push_pop": gfsm.PushPop,
		"push-pop": gfsm.PushPop,
	}
	for in, want := range cases {
		got, err := gfsm.ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := gfsm.ParseMode("sideways")
	var argErr *gfsm.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "mode", argErr.ParamName)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "Push", gfsm.Push.String())
	assert.Equal(t, "Pop", gfsm.Pop.String())
	assert.Equal(t, "PushPop", gfsm.PushPop.String())
	assert.Equal(t, "Mode(7)", gfsm.Mode(7).String())
	assert.False(t, gfsm.Mode(7).Valid())
	assert.True(t, gfsm.PushPop.Valid())
}
