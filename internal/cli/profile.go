package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newProfileCmd(opts *rootOptions) *cobra.Command {
	var name, email, mission, wake string
	var values []string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your mission statement and core values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := sess.requireUser(); err != nil {
				return err
			}

			var in tracker.ProfileInput
			edit := false
			if flags.Changed("name") {
				in.Name, edit = &name, true
			}
			if flags.Changed("email") {
				in.Email, edit = &email, true
			}
			if flags.Changed("mission") {
				in.MissionStatement, edit = &mission, true
			}
			if flags.Changed("wake") {
				in.WakeUpTime, edit = &wake, true
			}
			if flags.Changed("value") {
				in.CoreValues, edit = cleanValues(values), true
			}
			if edit {
				if err := sess.tracker.UpdateProfile(in); err != nil {
					return err
				}
				if err := sess.saved(); err != nil {
					return err
				}
			}

			u := sess.tracker.Snapshot().User
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, Heading(IconSparkle, u.Name))
			if u.Email != "" {
				fmt.Fprintln(out, LabelValue("Email", u.Email))
			}
			if u.MissionStatement != "" {
				fmt.Fprintln(out, LabelValue("Mission", u.MissionStatement))
			}
			if len(u.CoreValues) > 0 {
				fmt.Fprintln(out, LabelValue("Values", strings.Join(u.CoreValues, ", ")))
			}
			if u.WakeUpTime != "" {
				fmt.Fprintln(out, LabelValue("Wake up", u.WakeUpTime))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&mission, "mission", "", "Personal mission statement")
	cmd.Flags().StringSliceVar(&values, "value", nil, "Core values (repeatable, replaces the list)")
	cmd.Flags().StringVar(&wake, "wake", "", "Wake-up time, e.g. 05:00")
	return cmd
}

// cleanValues trims the values and drops blanks; the result is never nil so
// an explicit empty flag clears the list.
func cleanValues(in []string) []string {
	out := []string{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
