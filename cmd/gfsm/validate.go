package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlekbai/gfsm/definition"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a machine definition",
		Long:  `Loads the definition, checks its structure and builds the graph reachable from the initial state.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			sm, err := doc.Build(definition.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			unreachable := len(doc.States) - len(sm.Variants())
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d states, %d transitions\n",
				args[0], len(sm.Variants()), len(sm.Edges()))
			if unreachable > 0 {
				a.logger.Warn("states are not reachable from the initial state",
					"file", args[0], "count", unreachable)
			}
			return nil
		},
	}
}
