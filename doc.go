// Package gfsm provides a declarative, stack-based finite state machine for Go.
//
// A machine is described by a set of state variants and, on each variant, the
// outgoing transitions available from it. Starting from one initial variant the
// machine discovers the whole reachable graph, instantiating every variant
// exactly once, and then executes token-driven transitions against a stack of
// active states. Features:
//
//   - Generic variant keys and tokens
//   - Declarative per-variant transition tables
//   - Cycle-safe graph discovery
//   - Three stack disciplines: Push, Pop and PushPop
//   - Enter and Leave hooks on every state
//   - Transition starting / completed events
//   - Introspection and graph generation
//
// # Basic Usage
//
// Describe the variants and their transitions:
//
//	cfg := gfsm.NewConfig[StateID, string]()
//	cfg.Configure(Start, gfsm.New[StartState]()).Permit("next", End)
//	cfg.Configure(End, gfsm.New[EndState]()).Exit("next")
//
// Build the machine, which enters the initial state:
//
//	sm, err := gfsm.NewMachine(cfg, Start)
//
// Fire tokens to cause transitions:
//
//	err = sm.Transition("next")
//
// # Stack Disciplines
//
// A Push edge nests the target above the current state, a Pop edge unwinds the
// stack back to an ancestor that is already active, and a PushPop edge replaces
// the current state in place:
//
//	cfg.Configure(Menu, gfsm.New[MenuState]()).
//	    Permit("open", Settings).
//	    PermitPushPop("swap", Help)
//	cfg.Configure(Settings, gfsm.New[SettingsState]()).
//	    PermitPop("back", Menu)
//
// When several edges leave the same state under the same token, a non-Pop
// edge wins; otherwise the Pop edge whose target is nearest the top of the
// stack wins, and Pop edges whose target is not active are skipped.
//
// # Graph Generation
//
// Export to DOT or Mermaid format:
//
//	import "github.com/atlekbai/gfsm/graph"
//	dot := graph.UmlDotGraph(sm.Info())
package gfsm
