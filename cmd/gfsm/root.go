package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atlekbai/gfsm/internal/logging"
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logging.NewNop()}
	a.v.SetEnvPrefix("GFSM")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "gfsm",
		Short: "gfsm inspects and runs stack-based state machine definitions",
		Long: `gfsm loads a machine definition (YAML or JSON), checks it, renders it as a
DOT or Mermaid diagram, or drives it with a sequence of tokens.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("log-level", "warn", "Set log level (debug|info|warn|error)")
	a.bind(rootCmd, "log-level")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newGraphCmd(a),
		newRunCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// bind exposes a flag of cmd through viper, so it can also be set with a
// GFSM_ environment variable.
func (a *app) bind(cmd *cobra.Command, name string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	if err := a.v.BindPFlag(name, flag); err != nil {
		panic(fmt.Sprintf("cannot bind flag %s: %v", name, err))
	}
}
