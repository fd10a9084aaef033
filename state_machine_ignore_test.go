package gfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/gfsm"
)

// exhaustedConfig has a "back" token whose only edges are Pops to inactive targets.
func exhaustedConfig(rec *recorder) *gfsm.Config[Variant, string] {
	cfg := gfsm.NewConfig[Variant, string]()
	cfg.Configure(StateA, rec.factory(StateA)).PermitPushPop("side", StateB)
	cfg.Configure(StateB, rec.factory(StateB)).
		PermitPop("back", StateA).
		PermitPop("back", StateC)
	cfg.Configure(StateC, rec.factory(StateC))
	return cfg
}

func TestExhaustedCandidates_FailByDefault(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(t, exhaustedConfig(rec))
	require.NoError(t, sm.Transition("side"))
	rec.reset()

	fired := 0
	sm.OnTransitioning(func(gfsm.Transition[Variant, string]) { fired++ })
	sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { fired++ })

	err := sm.Transition("back")

	require.ErrorIs(t, err, gfsm.ErrNoValidCandidate)
	var invalid *gfsm.NoValidCandidateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StateB, invalid.State)
	assert.Len(t, invalid.Candidates, 2)
	assert.Equal(t, []Variant{StateB}, sm.Stack())
	assert.Empty(t, rec.calls)
	assert.Zero(t, fired)
}

func TestExhaustedCandidates_Absorb(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(t, exhaustedConfig(rec), gfsm.WithExhaustedPolicy(gfsm.ExhaustedAbsorb))
	require.NoError(t, sm.Transition("side"))
	rec.reset()

	fired := 0
	sm.OnTransitioning(func(gfsm.Transition[Variant, string]) { fired++ })
	sm.OnTransitioned(func(gfsm.Transition[Variant, string]) { fired++ })

	require.NoError(t, sm.Transition("back"))

	assert.Equal(t, []Variant{StateB}, sm.Stack())
	assert.Empty(t, rec.calls)
	assert.Zero(t, fired)
}
