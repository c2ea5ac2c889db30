package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taskwarden/warden/internal/config"
	"github.com/taskwarden/warden/internal/paths"
)

func newConfigCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit the layered configuration",
	}
	cmd.AddCommand(newConfigGetCmd(envFor))
	cmd.AddCommand(newConfigSetCmd(envFor))
	cmd.AddCommand(newConfigShowCmd(envFor))
	return cmd
}

func newConfigGetCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path>",
		Short: "Print the resolved value of a config option",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			value, getErr := config.Get(e.cfg, args[0])
			return e.emit(cmd, "config.get", map[string]string{"path": args[0], "value": value}, getErr)
		},
	}
}

func newConfigSetCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Persist a config override at project or global scope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			target := e.paths.ProjectConfig()
			if global {
				g, gerr := paths.GlobalConfig()
				if gerr != nil {
					return e.emit(cmd, "config.set", nil, gerr)
				}
				target = g
			}
			setErr := config.Set(target, args[0], args[1])
			return e.emit(cmd, "config.set", map[string]string{"path": args[0], "value": args[1]}, setErr)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write to the user-global config instead of the project config")
	return cmd
}

// newConfigShowCmd renders the fully-resolved configuration as YAML for
// display; overlay files on disk are JSON.
func newConfigShowCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the fully-resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			data, yerr := yaml.Marshal(e.cfg)
			if yerr != nil {
				return e.emit(cmd, "config.show", nil, yerr)
			}
			cmd.Println(string(data))
			return nil
		},
	}
}
