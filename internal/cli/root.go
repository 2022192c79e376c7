package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "peakr",
		Short:         "peakr, a personal productivity tracker",
		Long:          "peakr tracks habits, tasks, goals and daily routines, and rewards progress with points, levels and achievements.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			app := tui.NewApp(sess.tracker, sess.store, sess.cfg.ExportDir, sess.cfg.ReportDays)
			if err := tui.Run(app); err != nil {
				return err
			}
			return sess.saved()
		},
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/peakr/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database file (overrides config)")

	cmd.AddCommand(
		newInitCmd(opts),
		newStatusCmd(opts),
		newProfileCmd(opts),
		newHabitCmd(opts),
		newTaskCmd(opts),
		newProjectCmd(opts),
		newGoalCmd(opts),
		newLogCmd(opts),
		newJournalCmd(opts),
		newBookCmd(opts),
		newFinanceCmd(opts),
		newInboxCmd(opts),
		newAchievementsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSeedCmd(opts),
		newResetCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render(IconError+" "+err.Error()))
		os.Exit(1)
	}
}
