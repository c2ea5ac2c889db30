package cli

import (
	"github.com/spf13/cobra"
)

func newBackupCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var compress bool

	cmd := &cobra.Command{
		Use:   "backup <name>",
		Short: "Snapshot todo.json, todo-archive.json, config.json, and the audit log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			dest, err := e.tx().Backup(args[0], compress)
			return e.emit(cmd, "backup", map[string]string{"path": dest}, err)
		},
	}
	cmd.Flags().BoolVar(&compress, "compress", false, "write a .tar.gz instead of a plain directory snapshot")
	return cmd
}
