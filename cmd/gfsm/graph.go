package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atlekbai/gfsm/definition"
	"github.com/atlekbai/gfsm/graph"
)

func newGraphCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph FILE",
		Short: "Export the machine graph",
		Long:  `Builds the machine and prints its graph as Graphviz DOT or as a Mermaid state diagram.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := definition.Load(args[0])
			if err != nil {
				return err
			}
			sm, err := doc.Build(definition.WithLogger(a.logger))
			if err != nil {
				return err
			}

			var out string
			switch format := strings.ToLower(a.v.GetString("format")); format {
			case "dot":
				out = graph.UmlDotGraph(sm.Info())
			case "mermaid":
				direction, err := graph.ParseMermaidGraphDirection(a.v.GetString("direction"))
				if err != nil {
					return err
				}
				out = graph.MermaidGraph(sm.Info(), &direction)
			default:
				return fmt.Errorf("unknown graph format %q (expected dot or mermaid)", format)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format (dot|mermaid)")
	cmd.Flags().String("direction", "TB", "Mermaid graph direction (TB|BT|LR|RL)")
	a.bind(cmd, "format")
	a.bind(cmd, "direction")
	return cmd
}
