package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/gfsm"
)

func startEnd(t *testing.T) *gfsm.Machine[string, string] {
	t.Helper()
	cfg := gfsm.NewConfig[string, string]()
	cfg.Configure("Start", gfsm.New[gfsm.BaseState]()).Permit("next", "End")
	cfg.Configure("End", gfsm.New[gfsm.BaseState]()).Exit("next")
	sm, err := gfsm.NewMachine(cfg, "Start")
	require.NoError(t, err)
	return sm
}

func TestAttach_CountsTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "gfsm")
	require.NoError(t, err)

	sm := startEnd(t)
	Attach(c, sm)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.depth))

	require.NoError(t, sm.Transition("next"))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.started.WithLabelValues("Start", "next", "Push")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completed.WithLabelValues("Start", "End", "next", "Push")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.depth))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.terminations))

	require.NoError(t, sm.Transition("next"))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.completed.WithLabelValues("End", "null", "next", "Push")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.terminations))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.depth))
}

func TestAttach_FailedCallsAreNotCounted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "gfsm")
	require.NoError(t, err)

	sm := startEnd(t)
	Attach(c, sm)

	assert.Error(t, sm.Transition("missing"))
	assert.Equal(t, 0, testutil.CollectAndCount(c.started))
}

func TestAttach_Detach(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "gfsm")
	require.NoError(t, err)

	sm := startEnd(t)
	detach := Attach(c, sm)
	detach()

	require.NoError(t, sm.Transition("next"))
	assert.Equal(t, 0, testutil.CollectAndCount(c.completed))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg, "gfsm")
	require.NoError(t, err)

	_, err = New(reg, "gfsm")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg, "demo")
	require.NoError(t, err)

	sm := startEnd(t)
	Attach(c, sm)
	require.NoError(t, sm.Transition("next"))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))
	assert.Contains(t, buf.String(), `demo_transitions_total{from="Start",mode="Push",to="End",token="next"} 1`)
	assert.Contains(t, buf.String(), "demo_stack_depth 2")
}
