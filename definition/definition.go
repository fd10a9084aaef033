// Package definition loads machine definitions from YAML or JSON documents
// and builds string-keyed machines from them.
//
// A document names the initial state and lists every state with its
// transitions:
//
//	initial: Start
//	states:
//	  - name: Start
//	    enter: "Start entered"
//	    transitions:
//	      - token: next
//	        to: End
//	  - name: End
//	    transitions:
//	      - token: next   # no target: terminal edge
//	        mode: pop
package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/atlekbai/gfsm"
	"github.com/atlekbai/gfsm/internal/logging"
)

// Document is a parsed machine definition.
type Document struct {
	Initial string      `yaml:"initial" json:"initial"`
	States  []StateSpec `yaml:"states" json:"states"`
}

// StateSpec declares one state variant.
type StateSpec struct {
	Name        string           `yaml:"name" json:"name"`
	Enter       string           `yaml:"enter,omitempty" json:"enter,omitempty"`
	Leave       string           `yaml:"leave,omitempty" json:"leave,omitempty"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty" json:"transitions,omitempty"`
}

// TransitionSpec declares one edge. An empty or "null" To makes the edge
// terminal.
type TransitionSpec struct {
	Token string `yaml:"token" json:"token"`
	To    string `yaml:"to,omitempty" json:"to,omitempty"`
	Mode  string `yaml:"mode,omitempty" json:"mode,omitempty"`
}

// IsTerminal returns true if the edge has no target.
func (t TransitionSpec) IsTerminal() bool {
	return t.To == "" || t.To == gfsm.NullString
}

// Load reads a definition file. Files ending in .json are decoded as JSON,
// everything else as YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	doc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a definition. ext selects the format the same way Load does.
func Parse(data []byte, ext string) (*Document, error) {
	var doc Document
	if strings.EqualFold(strings.TrimPrefix(ext, "."), "json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse json definition: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	}
	return &doc, nil
}

// Validate reports every structural problem of the document at once.
func (d *Document) Validate() error {
	var errs []error

	names := make(map[string]struct{}, len(d.States))
	for i, s := range d.States {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("state #%d has no name", i))
			continue
		}
		if s.Name == gfsm.NullString {
			errs = append(errs, fmt.Errorf("state name %q is reserved", s.Name))
			continue
		}
		if _, dup := names[s.Name]; dup {
			errs = append(errs, fmt.Errorf("state %q is declared twice", s.Name))
			continue
		}
		names[s.Name] = struct{}{}
	}

	if d.Initial == "" {
		errs = append(errs, errors.New("initial state is not set"))
	} else if _, ok := names[d.Initial]; !ok {
		errs = append(errs, fmt.Errorf("initial state %q is not declared", d.Initial))
	}

	for _, s := range d.States {
		for _, t := range s.Transitions {
			if t.Token == "" {
				errs = append(errs, fmt.Errorf("state %q has a transition without token", s.Name))
			}
			if _, err := gfsm.ParseMode(t.Mode); err != nil {
				errs = append(errs, fmt.Errorf("state %q token %q: %w", s.Name, t.Token, err))
			}
			if t.IsTerminal() {
				continue
			}
			if _, ok := names[t.To]; !ok {
				errs = append(errs, fmt.Errorf("state %q token %q: target %q is not declared", s.Name, t.Token, t.To))
			}
		}
	}

	return errors.Join(errs...)
}

type buildOptions struct {
	out     io.Writer
	logger  *slog.Logger
	machine []gfsm.Option
}

// BuildOption configures Config and Build.
type BuildOption func(*buildOptions)

// WithOutput sets where scripted states write their enter/leave messages.
func WithOutput(w io.Writer) BuildOption {
	return func(o *buildOptions) {
		if w != nil {
			o.out = w
		}
	}
}

// WithLogger sets the logger of the scripted states and the machine.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMachineOptions forwards options to gfsm.NewMachine.
func WithMachineOptions(opts ...gfsm.Option) BuildOption {
	return func(o *buildOptions) {
		o.machine = append(o.machine, opts...)
	}
}

func newBuildOptions(opts []BuildOption) buildOptions {
	o := buildOptions{out: io.Discard, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Config validates the document and turns it into a machine configuration.
func (d *Document) Config(opts ...BuildOption) (*gfsm.Config[string, string], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := newBuildOptions(opts)
	return d.config(o), nil
}

func (d *Document) config(o buildOptions) *gfsm.Config[string, string] {
	cfg := gfsm.NewConfig[string, string]()
	for _, spec := range d.States {
		sc := cfg.Configure(spec.Name, func() gfsm.State {
			return &ScriptedState{
				Name:         spec.Name,
				EnterMessage: spec.Enter,
				LeaveMessage: spec.Leave,
				out:          o.out,
				logger:       o.logger,
			}
		})
		for _, t := range spec.Transitions {
			// Modes were checked by Validate.
			mode, _ := gfsm.ParseMode(t.Mode)
			if t.IsTerminal() {
				sc.ExitMode(t.Token, mode)
			} else {
				sc.PermitMode(t.Token, t.To, mode)
			}
		}
	}
	return cfg
}

// Build validates the document and creates a machine started in the initial
// state.
func (d *Document) Build(opts ...BuildOption) (*gfsm.Machine[string, string], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	o := newBuildOptions(opts)
	machineOpts := append([]gfsm.Option{gfsm.WithLogger(o.logger)}, o.machine...)
	return gfsm.NewMachine(d.config(o), d.Initial, machineOpts...)
}
