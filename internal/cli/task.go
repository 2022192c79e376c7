package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newTaskCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(opts),
		newTaskListCmd(opts),
		newTaskDoneCmd(opts),
		newTaskFrogCmd(opts),
		newTaskDeleteCmd(opts),
	)
	return cmd
}

func taskIDs(st tracker.State) []string {
	return idsOf(st.Tasks, func(t tracker.Task) string { return t.ID })
}

func newTaskAddCmd(opts *rootOptions) *cobra.Command {
	var priority, context, due, project string
	var estimate int
	var frog bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := tracker.ParsePriority(priority)
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := tracker.TaskInput{
				Title:         strings.Join(args, " "),
				Priority:      p,
				Context:       context,
				EstimatedTime: estimate,
				IsFrog:        frog,
			}
			if due != "" {
				in.DueDate = &due
			}
			if project != "" {
				st := sess.tracker.Snapshot()
				id, err := resolveID("project", project, idsOf(st.Projects, func(p tracker.Project) string { return p.ID }))
				if err != nil {
					return err
				}
				in.ProjectID = &id
			}

			return track(cmd, sess, func() error {
				t, err := sess.tracker.AddTask(in)
				if err != nil {
					return err
				}
				icon := IconPlus
				if t.IsFrog {
					icon = IconFrog
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s %s\n", icon, t.Priority, t.Title, Muted.Render(shortID(t.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", "C", "Priority (A-E)")
	cmd.Flags().StringVarP(&context, "context", "c", "", "Context, e.g. @home")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&estimate, "estimate", 0, "Estimated minutes")
	cmd.Flags().BoolVar(&frog, "frog", false, "Make this today's frog")
	cmd.Flags().StringVar(&project, "project", "", "Project id")
	return cmd
}

func newTaskListCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open tasks by priority",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			tasks := st.Tasks
			tracker.SortTasks(tasks)

			shown := 0
			for _, t := range tasks {
				if t.Completed && !all {
					continue
				}
				if shown == 0 {
					fmt.Fprintln(out, Heading(IconTarget, "Tasks"))
				}
				shown++
				line := fmt.Sprintf("  %s %s [%s] %s", Check(t.Completed), Muted.Render(shortID(t.ID)), t.Priority, t.Title)
				if t.IsFrog {
					line += " " + IconFrog
				}
				var meta []string
				if t.Context != "" {
					meta = append(meta, t.Context)
				}
				if t.DueDate != nil {
					meta = append(meta, "due "+*t.DueDate)
				}
				if t.EstimatedTime > 0 {
					meta = append(meta, fmt.Sprintf("%dm", t.EstimatedTime))
				}
				if len(meta) > 0 {
					line += "  " + Muted.Render(strings.Join(meta, "  "))
				}
				fmt.Fprintln(out, line)
			}
			if shown == 0 {
				fmt.Fprintln(out, Muted.Render("Nothing to do. Add a task with `peakr task add <title>`."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")
	return cmd
}

func newTaskDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task's completion",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("task", args[0], taskIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			return track(cmd, sess, func() error {
				t, err := sess.tracker.ToggleTaskCompletion(id)
				if err != nil {
					return err
				}
				if t.Completed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", IconDone, t.Title)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Muted.Render("↺"), t.Title)
				}
				return nil
			})
		},
	}
}

func newTaskFrogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "frog <id>",
		Short: "Make a task today's frog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("task", args[0], taskIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			if err := sess.tracker.SetFrogOfDay(id); err != nil {
				return err
			}
			frog, _ := sess.tracker.Frog()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", IconFrog, frog.Title)
			return sess.saved()
		},
	}
}

func newTaskDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("task", args[0], taskIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			if err := sess.tracker.DeleteTask(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("deleted task "+shortID(id)))
			return sess.saved()
		},
	}
}
