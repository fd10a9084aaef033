package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/atlekbai/gfsm"
	"github.com/atlekbai/gfsm/definition"
	"github.com/atlekbai/gfsm/metrics"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run FILE TOKEN...",
		Short: "Drive a machine with a sequence of tokens",
		Long: `Builds the machine, enters the initial state and fires each token in turn,
printing the transitions and the stack after every step.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.OutOrStdout(), args[0], args[1:])
		},
	}

	cmd.Flags().Bool("metrics", false, "Print prometheus metrics when done")
	cmd.Flags().String("namespace", "gfsm", "Metrics namespace")
	cmd.Flags().Bool("absorb", false, "Ignore tokens whose pop targets are all inactive")
	a.bind(cmd, "metrics")
	a.bind(cmd, "namespace")
	a.bind(cmd, "absorb")
	return cmd
}

func (a *app) run(out io.Writer, path string, tokens []string) error {
	doc, err := definition.Load(path)
	if err != nil {
		return err
	}

	policy := gfsm.ExhaustedFail
	if a.v.GetBool("absorb") {
		policy = gfsm.ExhaustedAbsorb
	}

	fmt.Fprintln(out, "Started")
	sm, err := doc.Build(
		definition.WithOutput(out),
		definition.WithLogger(a.logger),
		definition.WithMachineOptions(gfsm.WithExhaustedPolicy(policy)),
	)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	if a.v.GetBool("metrics") {
		c, err := metrics.New(reg, a.v.GetString("namespace"))
		if err != nil {
			return err
		}
		metrics.Attach(c, sm)
	}

	sm.OnTransitioning(func(t gfsm.Transition[string, string]) {
		fmt.Fprintf(out, "Beginning transition: %s\n", t)
	})
	sm.OnTransitioned(func(t gfsm.Transition[string, string]) {
		fmt.Fprintf(out, "Done transitioning: %s\n", t)
		if t.IsTerminal() {
			fmt.Fprintln(out, "Exited")
		}
	})

	printStack(out, sm)
	for _, token := range tokens {
		if err := sm.Transition(token); err != nil {
			return fmt.Errorf("token %q: %w", token, err)
		}
		printStack(out, sm)
	}

	if a.v.GetBool("metrics") {
		return metrics.WriteText(out, reg)
	}
	return nil
}

func printStack(out io.Writer, sm *gfsm.Machine[string, string]) {
	if sm.IsTerminated() {
		return
	}
	fmt.Fprintf(out, "Stack: %s\n", strings.Join(sm.Stack(), ", "))
}
