package graph

import (
	"github.com/atlekbai/gfsm"
)

// Style defines the interface for formatting state graphs.
type Style interface {
	// GetPrefix returns the text that starts a new graph.
	GetPrefix() string

	// GetInitialTransition returns the text for the initial state transition.
	GetInitialTransition(initialState *gfsm.StateInfo) string

	// FormatOneState formats a single state.
	FormatOneState(state *State) string

	// FormatFinalNode formats the pseudo state terminal transitions lead to.
	FormatFinalNode() string

	// FormatAllTransitions formats all transitions.
	FormatAllTransitions(transitions []*Transition) []string

	// FormatOneTransition formats a transition between two states.
	FormatOneTransition(sourceNodeName, label, destinationNodeName string) string

	// FormatTerminalTransition formats a transition leaving the machine.
	FormatTerminalTransition(sourceNodeName, label string) string
}

// FormatTransitions is a helper that formats all transitions using the given style.
func FormatTransitions(style Style, transitions []*Transition) []string {
	var lines []string

	for _, transit := range transitions {
		if transit.SourceState == nil {
			continue
		}
		if transit.IsTerminal() {
			lines = append(lines, style.FormatTerminalTransition(transit.SourceState.NodeName, transit.Label()))
			continue
		}
		lines = append(lines, style.FormatOneTransition(
			transit.SourceState.NodeName,
			transit.Label(),
			transit.DestinationState.NodeName,
		))
	}

	return lines
}
