package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Create your profile",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if sess.tracker.HasUser() {
				st := sess.tracker.Snapshot()
				return fmt.Errorf("%w: profile %q already exists (use `peakr reset` to start over)", tracker.ErrInvalid, st.User.Name)
			}
			p, err := sess.tracker.InitUser(strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Heading(IconSparkle, "Welcome, "+p.Name))
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("  Level 1, "+tracker.LevelName(1)+". Add a habit with `peakr habit add <title>`."))
			return sess.saved()
		},
	}
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, today's habits and your frog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := sess.requireUser(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			today := sess.tracker.Today()
			u := st.User

			fmt.Fprintln(out, Heading(IconSparkle, fmt.Sprintf("%s  L%d %s", u.Name, u.Level, tracker.LevelName(u.Level))))
			pct := tracker.LevelProgress(u.TotalPoints)
			next := "max level"
			if threshold, ok := tracker.NextLevelThreshold(u.Level); ok {
				next = fmt.Sprintf("%d to L%d", threshold-u.TotalPoints, u.Level+1)
			}
			fmt.Fprintf(out, "  %s %s %d%%  %s\n", Gold.Render(fmt.Sprintf("%d pts", u.TotalPoints)), Bar(float64(pct), 20), pct, Muted.Render(next))

			due, err := sess.tracker.HabitsDueOn(today)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, H2.Render(fmt.Sprintf("Habits today %d/%d", tracker.CompletedToday(due, today), len(due))))
			for _, h := range due {
				streak := ""
				if h.CurrentStreak > 0 {
					streak = Muted.Render(fmt.Sprintf(" %s %d", IconFire, h.CurrentStreak))
				}
				fmt.Fprintf(out, "  %s %s%s\n", Check(h.History[today]), h.Title, streak)
			}

			open := 0
			for _, t := range st.Tasks {
				if !t.Completed {
					open++
				}
			}
			fmt.Fprintln(out)
			if frog, ok := sess.tracker.Frog(); ok {
				fmt.Fprintln(out, LabelValue(IconFrog+" Frog", fmt.Sprintf("%s %s", Check(frog.Completed), frog.Title)))
			} else {
				fmt.Fprintln(out, LabelValue(IconFrog+" Frog", Muted.Render("none, pick one with `peakr task frog <id>`")))
			}
			fmt.Fprintln(out, LabelValue("Open tasks", open))
			fmt.Fprintln(out, LabelValue(IconTarget+" Goals", fmt.Sprintf("%d active, %.0f%% average", activeGoals(st.Goals), tracker.AverageGoalProgress(st.Goals))))
			fmt.Fprintln(out, LabelValue(IconSun+" Morning streak", sess.tracker.MorningStreak()))
			fmt.Fprintln(out, LabelValue(IconTrophy+" Achievements", fmt.Sprintf("%d/%d", tracker.UnlockedCount(st.Achievements), len(st.Achievements))))
			if n := len(st.Inbox); n > 0 {
				fmt.Fprintln(out, LabelValue(IconInbox+" Inbox", Warn.Render(fmt.Sprintf("%d to process", n))))
			}
			return nil
		},
	}
}

func activeGoals(goals []tracker.Goal) int {
	n := 0
	for _, g := range goals {
		if g.Status == tracker.GoalActive {
			n++
		}
	}
	return n
}

func newAchievementsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "List achievements",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			fmt.Fprintln(out, Heading(IconTrophy, fmt.Sprintf("Achievements %d/%d", tracker.UnlockedCount(st.Achievements), len(st.Achievements))))
			for _, a := range st.Achievements {
				if a.Unlocked() {
					fmt.Fprintf(out, "  %s %s %s  %s\n", a.Icon, Gold.Render(a.Name), Muted.Render(fmt.Sprintf("+%d", a.Points)),
						Muted.Render(a.UnlockedAt.Format("2006-01-02")))
					continue
				}
				fmt.Fprintf(out, "  %s %s  %s\n", Muted.Render("🔒"), a.Name, Muted.Render(a.Description))
			}
			return nil
		},
	}
}
