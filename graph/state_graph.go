package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/atlekbai/gfsm"
)

// StateGraph generates a symbolic representation of the graph structure.
type StateGraph struct {
	// InitialState is the initial state of the machine.
	InitialState *gfsm.StateInfo

	// States contains all states in the graph, indexed by state name.
	States map[string]*State

	// Transitions contains all transitions in the graph.
	Transitions []*Transition
}

// NewStateGraph creates a new state graph from machine info.
func NewStateGraph(machineInfo *gfsm.MachineInfo) *StateGraph {
	sg := &StateGraph{
		InitialState: machineInfo.InitialState,
		States:       make(map[string]*State),
	}

	for _, stateInfo := range machineInfo.States {
		name := stateInfo.String()
		if _, exists := sg.States[name]; exists {
			continue
		}
		sg.States[name] = &State{
			StateName: name,
			NodeName:  name,
			StateInfo: stateInfo,
		}
	}

	sg.addTransitions(machineInfo)
	return sg
}

// addTransitions adds all transitions to the graph.
func (sg *StateGraph) addTransitions(machineInfo *gfsm.MachineInfo) {
	for _, stateInfo := range machineInfo.States {
		fromState := sg.States[stateInfo.String()]

		for _, ti := range stateInfo.Transitions {
			trans := &Transition{
				Token:       ti.TokenString(),
				Mode:        ti.Mode,
				SourceState: fromState,
			}
			if !ti.IsTerminal() {
				trans.DestinationState = sg.States[ti.DestinationState.String()]
			}

			sg.Transitions = append(sg.Transitions, trans)
			fromState.Leaving = append(fromState.Leaving, trans)
			if trans.DestinationState != nil {
				trans.DestinationState.Arriving = append(trans.DestinationState.Arriving, trans)
			}
		}
	}
}

// HasTerminalTransitions returns true if any transition leaves the machine.
func (sg *StateGraph) HasTerminalTransitions() bool {
	for _, t := range sg.Transitions {
		if t.IsTerminal() {
			return true
		}
	}
	return false
}

// ToGraph converts the state graph to a string representation using the specified style.
func (sg *StateGraph) ToGraph(style Style) string {
	var sb strings.Builder

	sb.WriteString(style.GetPrefix())

	for _, stateName := range sg.getSortedStateNames() {
		sb.WriteString(style.FormatOneState(sg.States[stateName]))
	}

	if sg.HasTerminalTransitions() {
		sb.WriteString(style.FormatFinalNode())
	}

	lines := style.FormatAllTransitions(sg.getSortedTransitions())
	for _, line := range lines {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	sb.WriteString(style.GetInitialTransition(sg.InitialState))

	return sb.String()
}

// getSortedStateNames returns state names in sorted order for deterministic output.
func (sg *StateGraph) getSortedStateNames() []string {
	names := make([]string, 0, len(sg.States))
	for name := range sg.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getSortedTransitions returns transitions sorted by source state, then
// destination state (terminal last), then token, then mode.
func (sg *StateGraph) getSortedTransitions() []*Transition {
	sorted := make([]*Transition, len(sg.Transitions))
	copy(sorted, sg.Transitions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i], sorted[j]
		srcI, srcJ := ti.SourceState.StateName, tj.SourceState.StateName
		if srcI != srcJ {
			return srcI < srcJ
		}
		if ti.IsTerminal() != tj.IsTerminal() {
			return !ti.IsTerminal()
		}
		if !ti.IsTerminal() {
			dstI, dstJ := ti.DestinationState.StateName, tj.DestinationState.StateName
			if dstI != dstJ {
				return dstI < dstJ
			}
		}
		if ti.Token != tj.Token {
			return ti.Token < tj.Token
		}
		return ti.Mode < tj.Mode
	})
	return sorted
}

func initialStateName(initialState *gfsm.StateInfo) string {
	return fmt.Sprintf("%v", initialState.UnderlyingState)
}
