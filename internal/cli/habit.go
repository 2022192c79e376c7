package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newHabitCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}
	cmd.AddCommand(
		newHabitAddCmd(opts),
		newHabitListCmd(opts),
		newHabitDoneCmd(opts),
		newHabitDeleteCmd(opts),
	)
	return cmd
}

func newHabitAddCmd(opts *rootOptions) *cobra.Command {
	var identity, cue, reward, frequency, days, after string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := tracker.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			var custom []time.Weekday
			if days != "" {
				if custom, err = parseWeekdays(days); err != nil {
					return err
				}
				freq = tracker.FrequencyCustom
			}

			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := tracker.HabitInput{
				Title:      strings.Join(args, " "),
				Identity:   identity,
				Cue:        cue,
				Reward:     reward,
				Frequency:  freq,
				CustomDays: custom,
			}
			if after != "" {
				st := sess.tracker.Snapshot()
				id, err := resolveID("habit", after, idsOf(st.Habits, func(h tracker.Habit) string { return h.ID }))
				if err != nil {
					return err
				}
				in.AfterHabit = &id
			}

			return track(cmd, sess, func() error {
				h, err := sess.tracker.AddHabit(in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", IconPlus, h.Title, Muted.Render(shortID(h.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "Who this habit makes you (\"I am a runner\")")
	cmd.Flags().StringVar(&cue, "cue", "", "What triggers the habit")
	cmd.Flags().StringVar(&reward, "reward", "", "What you get out of it")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "daily", "Frequency (daily|weekdays|weekends|custom)")
	cmd.Flags().StringVar(&days, "days", "", "Custom days, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&after, "after", "", "Stack after another habit (id)")
	return cmd
}

func newHabitListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List habits with streaks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			st := sess.tracker.Snapshot()
			today := sess.tracker.Today()
			if len(st.Habits) == 0 {
				fmt.Fprintln(out, Muted.Render("No habits yet. Add one with `peakr habit add <title>`."))
				return nil
			}
			fmt.Fprintln(out, Heading(IconFire, "Habits"))
			for _, h := range st.Habits {
				fmt.Fprintf(out, "  %s %s %s  %s\n",
					Check(h.History[today]),
					Muted.Render(shortID(h.ID)),
					h.Title,
					Muted.Render(fmt.Sprintf("%s  streak %d  best %d  %.0f%% 30d",
						h.Frequency, h.CurrentStreak, h.LongestStreak, tracker.CompletionRate(h, today, 30))))
			}
			return nil
		},
	}
}

func newHabitDoneCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a habit's completion for today (or --date)",
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

			day := date
			if day == "" {
				day = sess.tracker.Today()
			}
			st := sess.tracker.Snapshot()
			id, err := resolveID("habit", args[0], idsOf(st.Habits, func(h tracker.Habit) string { return h.ID }))
			if err != nil {
				return err
			}

			return track(cmd, sess, func() error {
				h, err := sess.tracker.ToggleHabitCompletion(id, day)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if h.History[day] {
					fmt.Fprintf(out, "%s %s %s\n", IconDone, h.Title, Muted.Render(fmt.Sprintf("%s %d", IconFire, h.CurrentStreak)))
				} else {
					fmt.Fprintf(out, "%s %s %s\n", Muted.Render("↺"), h.Title, Muted.Render("unchecked for "+day))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to toggle (YYYY-MM-DD)")
	return cmd
}

func newHabitDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit",
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

			st := sess.tracker.Snapshot()
			id, err := resolveID("habit", args[0], idsOf(st.Habits, func(h tracker.Habit) string { return h.ID }))
			if err != nil {
				return err
			}
			if err := sess.tracker.DeleteHabit(id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("deleted habit "+shortID(id)))
			return sess.saved()
		},
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// parseWeekdays accepts a comma separated list of day names ("mon,Wednesday")
// and returns the days in Sunday-first order without duplicates.
func parseWeekdays(s string) ([]time.Weekday, error) {
	var seen [7]bool
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if len(name) > 3 {
			name = name[:3]
		}
		d, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: day %q", tracker.ErrInvalid, strings.TrimSpace(part))
		}
		seen[d] = true
	}
	var out []time.Weekday
	for d, ok := range seen {
		if ok {
			out = append(out, time.Weekday(d))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no days given", tracker.ErrInvalid)
	}
	return out, nil
}
