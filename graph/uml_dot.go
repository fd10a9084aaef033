package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/gfsm"
)

// finalNodeName is the DOT node terminal transitions point to.
const finalNodeName = "__final__"

// UmlDotGraphStyle generates DOT graphs in basic UML style.
type UmlDotGraphStyle struct{}

// NewUmlDotGraphStyle creates a new UML DOT graph style.
func NewUmlDotGraphStyle() *UmlDotGraphStyle {
	return &UmlDotGraphStyle{}
}

// GetPrefix returns the text that starts a new DOT graph.
func (s *UmlDotGraphStyle) GetPrefix() string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("compound=true;\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")
	return sb.String()
}

// FormatOneState formats a single state.
func (s *UmlDotGraphStyle) FormatOneState(state *State) string {
	escapedName := EscapeLabel(state.StateName)
	return fmt.Sprintf("\"%s\" [label=\"%s\"];\n", escapedName, escapedName)
}

// FormatFinalNode formats the final pseudo state.
func (s *UmlDotGraphStyle) FormatFinalNode() string {
	return fmt.Sprintf("%s [label=\"\", shape=doublecircle, width=0.2];\n", finalNodeName)
}

// FormatAllTransitions formats all transitions.
func (s *UmlDotGraphStyle) FormatAllTransitions(transitions []*Transition) []string {
	return FormatTransitions(s, transitions)
}

// FormatOneTransition formats a single transition.
func (s *UmlDotGraphStyle) FormatOneTransition(sourceNodeName, label, destinationNodeName string) string {
	return fmt.Sprintf("\"%s\" -> \"%s\" [style=\"solid\", label=\"%s\"];",
		EscapeLabel(sourceNodeName), EscapeLabel(destinationNodeName), EscapeLabel(label))
}

// FormatTerminalTransition formats a transition into the final pseudo state.
func (s *UmlDotGraphStyle) FormatTerminalTransition(sourceNodeName, label string) string {
	return fmt.Sprintf("\"%s\" -> %s [style=\"solid\", label=\"%s\"];",
		EscapeLabel(sourceNodeName), finalNodeName, EscapeLabel(label))
}

// GetInitialTransition returns the text for the initial state transition.
func (s *UmlDotGraphStyle) GetInitialTransition(initialState *gfsm.StateInfo) string {
	if initialState == nil {
		return "\n}"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(" init [label=\"\", shape=point];")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(" init -> \"%s\"[style = \"solid\"]", EscapeLabel(initialStateName(initialState))))
	sb.WriteString("\n")
	sb.WriteString("}")

	return sb.String()
}

// EscapeLabel escapes special characters in a label.
func EscapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}

// UmlDotGraph generates a UML DOT graph from machine info.
func UmlDotGraph(machineInfo *gfsm.MachineInfo) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewUmlDotGraphStyle())
}
