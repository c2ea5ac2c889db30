package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskwarden/warden/internal/model"
	"github.com/taskwarden/warden/internal/mutate"
)

func newTaskCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Create, update, and transition tasks",
	}
	cmd.AddCommand(newTaskAddCmd(envFor))
	cmd.AddCommand(newTaskUpdateCmd(envFor))
	cmd.AddCommand(newTaskCompleteCmd(envFor))
	cmd.AddCommand(newTaskReopenCmd(envFor))
	cmd.AddCommand(newTaskCancelCmd(envFor))
	cmd.AddCommand(newTaskUncancelCmd(envFor))
	cmd.AddCommand(newTaskPromoteCmd(envFor))
	return cmd
}

func newTaskAddCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var priority, typ, size, parent, phase, description string
	var addPhase bool
	var depends, labels []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			opts := mutate.AddOptions{
				Priority:    model.Priority(priority),
				Type:        model.Type(typ),
				Size:        model.Size(size),
				Parent:      parent,
				Phase:       phase,
				AddPhase:    addPhase,
				Depends:     depends,
				Labels:      labels,
				Description: description,
			}
			id, err := e.tx().Add(e.allocator(), args[0], opts)
			return e.emit(cmd, "task.add", map[string]string{"id": id}, err)
		},
	}
	cmd.Flags().StringVar(&priority, "priority", "", "critical|high|medium|low (default medium)")
	cmd.Flags().StringVar(&typ, "type", "", "epic|task|subtask (inferred from --parent when omitted)")
	cmd.Flags().StringVar(&size, "size", "", "small|medium|large")
	cmd.Flags().StringVar(&parent, "parent", "", "parent task id")
	cmd.Flags().StringVar(&phase, "phase", "", "phase name")
	cmd.Flags().BoolVar(&addPhase, "add-phase", false, "create --phase if it does not already exist")
	cmd.Flags().StringSliceVar(&depends, "depends", nil, "comma-separated dependency task ids")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "comma-separated labels")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	return cmd
}

func newTaskUpdateCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var title, status, priority, size, parent, phase, description string
	var depends, labels []string
	var setDepends, setLabels bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Apply a sparse set of field changes to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			changes := mutate.Changes{}
			if title != "" {
				changes.Title = &title
			}
			if status != "" {
				s := model.Status(status)
				changes.Status = &s
			}
			if priority != "" {
				p := model.Priority(priority)
				changes.Priority = &p
			}
			if size != "" {
				sz := model.Size(size)
				changes.Size = &sz
			}
			if cmd.Flags().Changed("parent") {
				changes.ParentID = &parent
			}
			if phase != "" {
				changes.Phase = &phase
			}
			if description != "" {
				changes.Description = &description
			}
			if setDepends {
				changes.Depends = depends
			}
			if setLabels {
				changes.Labels = labels
			}
			err = e.tx().Update(args[0], changes)
			return e.emit(cmd, "task.update", map[string]string{"id": args[0]}, err)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&status, "status", "", "new status (subject to the allowed-transition table)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&size, "size", "", "new size")
	cmd.Flags().StringVar(&parent, "parent", "", "new parent id (empty string promotes to top level)")
	cmd.Flags().StringVar(&phase, "phase", "", "new phase")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringSliceVar(&depends, "depends", nil, "replace the full dependency set")
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "replace the full label set")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		setDepends = cmd.Flags().Changed("depends")
		setLabels = cmd.Flags().Changed("labels")
	}
	return cmd
}

func newTaskCompleteCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task done and unblock its dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Complete(args[0], note)
			return e.emit(cmd, "task.complete", map[string]string{"id": args[0]}, err)
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "completion note")
	return cmd
}

func newTaskReopenCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var toActive bool
	var note string
	cmd := &cobra.Command{
		Use:   "reopen <id>",
		Short: "Return a done task to pending (or active)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Reopen(args[0], toActive, note)
			return e.emit(cmd, "task.reopen", map[string]string{"id": args[0]}, err)
		},
	}
	cmd.Flags().BoolVar(&toActive, "active", false, "reopen directly into active instead of pending")
	cmd.Flags().StringVar(&note, "note", "", "reopen note")
	return cmd
}

func newTaskCancelCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var reason string
	var cascade bool
	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a task, optionally cascading to its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Cancel(args[0], reason, cascade)
			return e.emit(cmd, "task.cancel", map[string]string{"id": args[0]}, err)
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "cancellation reason")
	cmd.Flags().BoolVar(&cascade, "cascade", false, "also cancel every non-done descendant")
	return cmd
}

func newTaskUncancelCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	var cascade bool
	cmd := &cobra.Command{
		Use:   "uncancel <id>",
		Short: "Restore a cancelled task to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Uncancel(args[0], cascade)
			return e.emit(cmd, "task.uncancel", map[string]string{"id": args[0]}, err)
		},
	}
	cmd.Flags().BoolVar(&cascade, "cascade", false, "also restore every cancelled descendant")
	return cmd
}

func newTaskPromoteCmd(envFor func(*cobra.Command) (*env, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <id>",
		Short: "Detach a task from its parent and re-type subtasks to tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := envFor(cmd)
			if err != nil {
				return err
			}
			err = e.tx().Promote(args[0])
			return e.emit(cmd, "task.promote", map[string]string{"id": args[0]}, err)
		},
	}
	return cmd
}
