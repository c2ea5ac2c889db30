package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskwarden/warden/internal/mutate"
)

func newArchiveCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var force, all bool
	var sessionID string

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Move eligible completed tasks into todo-archive.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			ids, err := e.tx().Archive(mutate.ArchiveCriteria{Force: force, All: all, SessionID: sessionID})
			return e.emit(cmd, "task.archive", map[string]any{"archivedIds": ids}, err)
		},
	}
	archiveCmd.Flags().BoolVar(&force, "force", false, "ignore archive.daysUntilArchive, but still respect preserveRecentCount")
	archiveCmd.Flags().BoolVar(&all, "all", false, "ignore both the age threshold and preserveRecentCount")
	archiveCmd.Flags().StringVar(&sessionID, "session", "", "session id recorded on each archived task")

	var preserveStatus bool
	unarchiveCmd := &cobra.Command{
		Use:   "unarchive <id>",
		Short: "Restore an archived task to the active store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Unarchive(args[0], mutate.UnarchiveOptions{PreserveStatus: preserveStatus})
			return e.emit(cmd, "task.unarchive", map[string]string{"id": args[0]}, err)
		},
	}
	unarchiveCmd.Flags().BoolVar(&preserveStatus, "preserve-status", false, "keep the archived status instead of resetting to pending")

	archiveCmd.AddCommand(unarchiveCmd)
	return archiveCmd
}
