package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwarden/warden/internal/exitcode"
	"github.com/taskwarden/warden/internal/model"
)

func newInitCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new warden project in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			if e.paths.Exists() {
				return e.emit(cmd, "init", nil, model.ErrState("already_initialized", exitcode.AlreadyInitialized,
					"a warden project already exists at %s", e.paths.Dir))
			}
			if projectName == "" {
				projectName = "untitled"
			}
			payload, err := runInit(e, projectName)
			return e.emit(cmd, "init", payload, err)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "project name recorded in todo.json")
	return cmd
}

func runInit(e *env, name string) (map[string]any, error) {
	if err := os.MkdirAll(e.paths.Dir, 0o755); err != nil {
		return nil, model.ErrResource("init_mkdir_failed", exitcode.FileOperationFailure, true, "create %s: %v", e.paths.Dir, err)
	}
	if err := os.MkdirAll(e.paths.Lifecycle(), 0o755); err != nil {
		return nil, model.ErrResource("init_mkdir_failed", exitcode.FileOperationFailure, true, "create %s: %v", e.paths.Lifecycle(), err)
	}

	tx := e.tx()

	active := &model.ActiveStore{
		Tasks:   []*model.Task{},
		Project: model.ProjectState{Name: name, Phases: map[string]*model.Phase{}},
	}
	if err := tx.SeedActive(active); err != nil {
		return nil, err
	}

	archive := &model.ArchiveStore{ArchivedTasks: []*model.Task{}}
	if err := tx.SeedArchive(archive); err != nil {
		return nil, err
	}

	alloc := e.allocator()
	if _, err := alloc.Load(); err != nil {
		return nil, err
	}

	return map[string]any{"root": e.paths.Root, "project": name}, nil
}
