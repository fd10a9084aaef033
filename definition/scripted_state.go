package definition

import (
	"fmt"
	"io"
	"log/slog"
)

// ScriptedState is the state created for every variant of a Document. It
// prints its configured messages and counts its activations.
type ScriptedState struct {
	Name         string
	EnterMessage string
	LeaveMessage string

	Entries int
	Leaves  int

	out    io.Writer
	logger *slog.Logger
}

// Enter implements gfsm.State.
func (s *ScriptedState) Enter() {
	s.Entries++
	s.logger.Debug("state entered", "state", s.Name, "entries", s.Entries)
	s.write(s.EnterMessage)
}

// Leave implements gfsm.State.
func (s *ScriptedState) Leave() {
	s.Leaves++
	s.logger.Debug("state left", "state", s.Name, "leaves", s.Leaves)
	s.write(s.LeaveMessage)
}

func (s *ScriptedState) write(msg string) {
	if msg == "" {
		return
	}
	if _, err := fmt.Fprintln(s.out, msg); err != nil {
		s.logger.Warn("cannot write state message", "state", s.Name, "error", err)
	}
}

// String returns the state name.
func (s *ScriptedState) String() string {
	return s.Name
}
