package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCmd creates the root command and wires every subcommand group.
func NewRootCmd() *cobra.Command {
	var verbose bool
	var format string

	cmd := &cobra.Command{
		Use:   "warden",
		Short: "A local-first task engine for AI coding agents",
		Long: `warden - structured task management for AI-assisted development

warden tracks a hierarchy of epics, tasks, and subtasks across a
persistent JSON store, enforcing the invariants (single active task,
bounded depth and fan-out, acyclic dependencies, scoped sessions) an
autonomous agent needs to work safely without a human watching every
command.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return nil },
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level structured logging")
	cmd.PersistentFlags().StringVar(&format, "format", "", "output format: text or json (default: config output.defaultFormat)")

	envFor := func(cmd *cobra.Command) (*env, error) { return newEnv(cmd, verbose, format) }

	cmd.AddCommand(newInitCmd(envFor))
	cmd.AddCommand(newTaskCmd(envFor))
	cmd.AddCommand(newArchiveCmd(envFor))
	cmd.AddCommand(newBackupCmd(envFor))
	cmd.AddCommand(newConfigCmd(envFor))

	return cmd
}

// Execute runs the root command, translating a returned exitError (or any
// other error) into the appropriate process exit code instead of always
// exiting 1 the way a simpler CLI would.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
