package gfsm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownToken matches errors for tokens no edge of the graph carries.
	ErrUnknownToken = errors.New("unknown token")

	// ErrNoMatchingEdge matches errors for tokens that do not leave the current state.
	ErrNoMatchingEdge = errors.New("no matching edge")

	// ErrNoValidCandidate matches errors for calls whose every candidate edge
	// was a Pop towards a variant that is not on the stack.
	ErrNoValidCandidate = errors.New("no valid candidate")

	// ErrReentrantTransition is returned when Transition is called from inside
	// a hook or an event handler of the same machine.
	ErrReentrantTransition = errors.New("reentrant transition")

	// ErrUnknownVariant indicates a variant that was never configured.
	ErrUnknownVariant = errors.New("variant is not configured")

	// ErrNilFactory indicates a variant configured without a factory.
	ErrNilFactory = errors.New("variant has no factory")

	// ErrNilState indicates a factory that returned nil.
	ErrNilState = errors.New("factory returned a nil state")
)

// ArgumentError indicates an invalid argument was passed.
type ArgumentError struct {
	ParamName string
	Message   string
}

func (e *ArgumentError) Error() string {
	if e.ParamName != "" {
		return fmt.Sprintf("%s (parameter: %s)", e.Message, e.ParamName)
	}
	return e.Message
}

// ConfigurationError is returned when the machine graph cannot be built.
type ConfigurationError struct {
	// Variant is the variant that could not be resolved.
	Variant any

	// Path lists the edges followed from the initial variant, outermost first.
	Path []string

	Err error
}

func (e *ConfigurationError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("cannot build state '%v': %v", e.Variant, e.Err)
	}
	return fmt.Sprintf("cannot build state '%v' (via %s): %v",
		e.Variant, strings.Join(e.Path, " -> "), e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnknownTokenError is returned when no edge anywhere in the graph carries the token.
type UnknownTokenError struct {
	Token any
}

func (e *UnknownTokenError) Error() string {
	return fmt.Sprintf("token '%v' is not declared by any transition", e.Token)
}

func (e *UnknownTokenError) Is(target error) bool {
	return target == ErrUnknownToken
}

// NoMatchingEdgeError is returned when the token is known but no edge with it
// leaves the current state.
type NoMatchingEdgeError struct {
	Token           any
	State           any
	Terminated      bool
	PermittedTokens []any
}

func (e *NoMatchingEdgeError) Error() string {
	if e.Terminated {
		return fmt.Sprintf("machine has terminated; token '%v' cannot be handled", e.Token)
	}

	var permitted string
	if len(e.PermittedTokens) > 0 {
		tokens := make([]string, len(e.PermittedTokens))
		for i, t := range e.PermittedTokens {
			tokens[i] = fmt.Sprintf("%v", t)
		}
		permitted = fmt.Sprintf(" Permitted tokens: %s.", strings.Join(tokens, ", "))
	} else {
		permitted = " No transitions leave this state."
	}

	return fmt.Sprintf("no transition leaves state '%v' for token '%v'.%s", e.State, e.Token, permitted)
}

func (e *NoMatchingEdgeError) Is(target error) bool {
	return target == ErrNoMatchingEdge
}

// NoValidCandidateError is returned when every edge matching the token was a
// Pop towards a variant that is not currently active.
type NoValidCandidateError struct {
	Token      any
	State      any
	Candidates []string
}

func (e *NoValidCandidateError) Error() string {
	return fmt.Sprintf(
		"no candidate for token '%v' from state '%v' is valid for the current stack. Candidates: %s",
		e.Token, e.State, strings.Join(e.Candidates, "; "))
}

func (e *NoValidCandidateError) Is(target error) bool {
	return target == ErrNoValidCandidate
}
