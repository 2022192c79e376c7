package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newGoalCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}
	cmd.AddCommand(
		newGoalAddCmd(opts),
		newGoalListCmd(opts),
		newGoalSetCmd(opts),
		newGoalCompleteCmd(opts),
		newGoalDeleteCmd(opts),
	)
	return cmd
}

func goalIDs(st tracker.State) []string {
	return idsOf(st.Goals, func(g tracker.Goal) string { return g.ID })
}

func newGoalAddCmd(opts *rootOptions) *cobra.Command {
	var area, timeframe, priority, why, date string
	var target float64

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := tracker.ParseLifeArea(area)
			if err != nil {
				return err
			}
			tf, err := tracker.ParseTimeframe(timeframe)
			if err != nil {
				return err
			}
			p, err := tracker.ParsePriority(priority)
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := tracker.GoalInput{
				Title:       strings.Join(args, " "),
				Why:         why,
				LifeArea:    a,
				Timeframe:   tf,
				Priority:    p,
				TargetValue: target,
			}
			if date != "" {
				in.TargetDate = &date
			}
			return track(cmd, sess, func() error {
				g, err := sess.tracker.AddGoal(in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", IconTarget, g.Title, Muted.Render(shortID(g.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&area, "area", string(tracker.LifeAreaPersonalGrowth), "Life area")
	cmd.Flags().StringVar(&timeframe, "timeframe", string(tracker.TimeframeYearly), "Timeframe (daily|weekly|monthly|quarterly|yearly|3_year|5_year|10_year|lifetime)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "B", "Priority (A-E)")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value")
	cmd.Flags().StringVar(&why, "why", "", "Why this goal matters")
	cmd.Flags().StringVar(&date, "date", "", "Target date (YYYY-MM-DD)")
	return cmd
}

func newGoalListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals with progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			if len(st.Goals) == 0 {
				fmt.Fprintln(out, Muted.Render("No goals yet. Add one with `peakr goal add <title> --target 10`."))
				return nil
			}
			fmt.Fprintln(out, Heading(IconTarget, fmt.Sprintf("Goals  %.0f%% average", tracker.AverageGoalProgress(st.Goals))))
			for _, g := range st.Goals {
				fmt.Fprintf(out, "  %s %s %s %3.0f%%  %s\n",
					Muted.Render(shortID(g.ID)),
					Bar(g.Progress, 12),
					g.Title,
					g.Progress,
					Muted.Render(fmt.Sprintf("%s/%s  %s  %s  %s",
						formatValue(g.CurrentValue), formatValue(g.TargetValue), g.LifeArea, g.Timeframe, g.Status)))
			}
			return nil
		},
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newGoalSetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <value>",
		Short: "Record a goal's current value",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and value are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _ := strconv.ParseFloat(args[1], 64)
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveID("goal", args[0], goalIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			return track(cmd, sess, func() error {
				g, err := sess.tracker.SetGoalValue(id, v)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %.0f%%\n", IconTarget, g.Title, Bar(g.Progress, 12), g.Progress)
				return nil
			})
		},
	}
}

func newGoalCompleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a goal completed",
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

			id, err := resolveID("goal", args[0], goalIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			return track(cmd, sess, func() error {
				if err := sess.tracker.CompleteGoal(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s goal %s completed\n", IconDone, shortID(id))
				return nil
			})
		},
	}
}

func newGoalDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
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

			id, err := resolveID("goal", args[0], goalIDs(sess.tracker.Snapshot()))
			if err != nil {
				return err
			}
			if err := sess.tracker.DeleteGoal(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("deleted goal "+shortID(id)))
			return sess.saved()
		},
	}
}
