package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

// reportProgress prints points earned, level ups and new achievements
// between two snapshots.
func reportProgress(w io.Writer, before, after tracker.State) {
	if before.User != nil && after.User != nil {
		if delta := after.User.TotalPoints - before.User.TotalPoints; delta > 0 {
			fmt.Fprintln(w, Muted.Render(fmt.Sprintf("  +%d pts (total %d)", delta, after.User.TotalPoints)))
		}
		if after.User.Level > before.User.Level {
			fmt.Fprintf(w, "  %s %s\n", BadgeLevelUp,
				Gold.Render(fmt.Sprintf("level %d, %s", after.User.Level, tracker.LevelName(after.User.Level))))
		}
	}

	was := map[string]bool{}
	for _, a := range before.Achievements {
		was[a.ID] = a.Unlocked()
	}
	for _, a := range after.Achievements {
		if a.Unlocked() && !was[a.ID] {
			fmt.Fprintf(w, "  %s %s %s\n", IconTrophy, Gold.Render(a.Name), Muted.Render(fmt.Sprintf("+%d pts", a.Points)))
		}
	}
}

// track runs a mutation, then reports what it earned and surfaces any
// autosave failure.
func track(cmd *cobra.Command, sess *session, fn func() error) error {
	before := sess.tracker.Snapshot()
	if err := fn(); err != nil {
		return err
	}
	reportProgress(cmd.OutOrStdout(), before, sess.tracker.Snapshot())
	return sess.saved()
}
