package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

var routineSteps = []string{"silence", "affirmations", "visualization", "exercise", "reading", "scribing"}

// routineStep returns the log field behind a morning routine step name.
func routineStep(l *tracker.DailyLog, step string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(step)) {
	case "silence":
		return &l.SilenceCompleted, nil
	case "affirmations":
		return &l.AffirmationsCompleted, nil
	case "visualization":
		return &l.VisualizationCompleted, nil
	case "exercise":
		return &l.ExerciseCompleted, nil
	case "reading":
		return &l.ReadingCompleted, nil
	case "scribing":
		return &l.ScribingCompleted, nil
	default:
		return nil, fmt.Errorf("%w: routine step %q (want one of %s)", tracker.ErrInvalid, step, strings.Join(routineSteps, ", "))
	}
}

func checkScore(name string, v int) error {
	if v < 0 || v > 10 {
		return fmt.Errorf("%w: %s must be between 0 and 10", tracker.ErrInvalid, name)
	}
	return nil
}

func newLogCmd(opts *rootOptions) *cobra.Command {
	var done, undo []string
	var deepWork float64
	var energy, mood, productivity int
	var focus string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show or update today's routine log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if deepWork < 0 {
				return fmt.Errorf("%w: deep work hours must not be negative", tracker.ErrInvalid)
			}
			for name, v := range map[string]int{"energy": energy, "mood": mood, "productivity": productivity} {
				if err := checkScore(name, v); err != nil {
					return err
				}
			}
			// Validate step names before touching the log.
			var scratch tracker.DailyLog
			for _, step := range append(append([]string(nil), done...), undo...) {
				if _, err := routineStep(&scratch, step); err != nil {
					return err
				}
			}

			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			edit := flags.Changed("done") || flags.Changed("undo") || flags.Changed("deep-work") ||
				flags.Changed("energy") || flags.Changed("mood") || flags.Changed("productivity") || flags.Changed("focus")

			l := sess.tracker.TodayLog()
			if edit {
				err := track(cmd, sess, func() error {
					var err error
					l, err = sess.tracker.UpdateTodayLog(func(l *tracker.DailyLog) {
						for _, step := range done {
							f, _ := routineStep(l, step)
							*f = true
						}
						for _, step := range undo {
							f, _ := routineStep(l, step)
							*f = false
						}
						if flags.Changed("deep-work") {
							l.DeepWorkHours = deepWork
						}
						if flags.Changed("energy") {
							l.EnergyScore = energy
						}
						if flags.Changed("mood") {
							l.MoodScore = mood
						}
						if flags.Changed("productivity") {
							l.ProductivityScore = productivity
						}
						if flags.Changed("focus") {
							l.FocusToday = focus
						}
					})
					return err
				})
				if err != nil {
					return err
				}
			}

			printLog(cmd, l, sess.tracker.MorningStreak())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&done, "done", nil, "Check off routine steps ("+strings.Join(routineSteps, ",")+")")
	cmd.Flags().StringSliceVar(&undo, "undo", nil, "Uncheck routine steps")
	cmd.Flags().Float64Var(&deepWork, "deep-work", 0, "Deep work hours today")
	cmd.Flags().IntVar(&energy, "energy", 0, "Energy score (0-10)")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood score (0-10)")
	cmd.Flags().IntVar(&productivity, "productivity", 0, "Productivity score (0-10)")
	cmd.Flags().StringVar(&focus, "focus", "", "Today's focus")
	return cmd
}

func printLog(cmd *cobra.Command, l tracker.DailyLog, streak int) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, Heading(IconSun, "Today "+l.Date))
	marks := []bool{l.SilenceCompleted, l.AffirmationsCompleted, l.VisualizationCompleted,
		l.ExerciseCompleted, l.ReadingCompleted, l.ScribingCompleted}
	steps := make([]string, len(routineSteps))
	for i, step := range routineSteps {
		steps[i] = Check(marks[i]) + " " + step
	}
	fmt.Fprintln(out, "  "+strings.Join(steps, "  "))
	fmt.Fprintln(out, LabelValue("Morning streak", streak))
	fmt.Fprintln(out, LabelValue("Deep work", fmt.Sprintf("%.1fh", l.DeepWorkHours)))
	fmt.Fprintln(out, LabelValue("Scores", fmt.Sprintf("energy %d  mood %d  productivity %d  overall %d/10",
		l.EnergyScore, l.MoodScore, l.ProductivityScore, l.OverallScore)))
	if l.FocusToday != "" {
		fmt.Fprintln(out, LabelValue("Focus", l.FocusToday))
	}
}
