package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newProjectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Group tasks into projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(opts),
		newProjectListCmd(opts),
		newProjectAssignCmd(opts),
	)
	return cmd
}

func projectIDs(st tracker.State) []string {
	return idsOf(st.Projects, func(p tracker.Project) string { return p.ID })
}

func newProjectAddCmd(opts *rootOptions) *cobra.Command {
	var desc string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a project",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := sess.tracker.AddProject(tracker.ProjectInput{Title: strings.Join(args, " "), Description: desc})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", IconPlus, p.Title, Muted.Render(shortID(p.ID)))
			return sess.saved()
		},
	}

	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	return cmd
}

func newProjectListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects and their tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			if len(st.Projects) == 0 {
				fmt.Fprintln(out, Muted.Render("No projects yet."))
				return nil
			}
			byID := make(map[string]tracker.Task, len(st.Tasks))
			for _, t := range st.Tasks {
				byID[t.ID] = t
			}
			for _, p := range st.Projects {
				done := 0
				for _, id := range p.Tasks {
					if byID[id].Completed {
						done++
					}
				}
				fmt.Fprintf(out, "%s %s %s\n", H2.Render(p.Title), Muted.Render(shortID(p.ID)),
					Muted.Render(fmt.Sprintf("%s  %d/%d done", p.Status, done, len(p.Tasks))))
				for _, id := range p.Tasks {
					t, ok := byID[id]
					if !ok {
						continue
					}
					fmt.Fprintf(out, "  %s %s\n", Check(t.Completed), t.Title)
				}
			}
			return nil
		},
	}
}

func newProjectAssignCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <task-id> <project-id>",
		Short: "Move a task into a project",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and project id are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			st := sess.tracker.Snapshot()
			taskID, err := resolveID("task", args[0], taskIDs(st))
			if err != nil {
				return err
			}
			projectID, err := resolveID("project", args[1], projectIDs(st))
			if err != nil {
				return err
			}
			if err := sess.tracker.AssignTask(taskID, projectID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render(fmt.Sprintf("task %s -> project %s", shortID(taskID), shortID(projectID))))
			return sess.saved()
		},
	}
}
