package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/export"
	"github.com/sadopc/peakr/internal/seed"
	"github.com/sadopc/peakr/internal/tracker"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data as CSV or a JSON backup",
	}
	cmd.AddCommand(newExportCSVCmd(opts), newExportJSONCmd(opts))
	return cmd
}

// exportPath returns out, or a dated file name in the configured export dir.
func exportPath(sess *session, out, name, ext string) string {
	if out != "" {
		return out
	}
	return filepath.Join(sess.cfg.ExportDir, fmt.Sprintf("peakr-%s-%s.%s", name, sess.tracker.Today(), ext))
}

func newExportCSVCmd(opts *rootOptions) *cobra.Command {
	var finance bool
	var out string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export habits (or --finance entries) as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			st := sess.tracker.Snapshot()
			var path string
			if finance {
				path = exportPath(sess, out, "finance", "csv")
				err = export.FinanceCSV(st.Finance.Entries, path)
			} else {
				path = exportPath(sess, out, "habits", "csv")
				err = export.HabitsCSV(st.Habits, path)
			}
			if err != nil {
				return err
			}
			sess.log.Info("exported csv", "path", path, "finance", finance)
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", IconDone, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&finance, "finance", false, "Export finance entries instead of habits")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newExportJSONCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Write a full JSON backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			path := exportPath(sess, out, "backup", "json")
			if err := export.ToJSON(sess.tracker.Snapshot(), path); err != nil {
				return err
			}
			sess.log.Info("exported backup", "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", IconDone, path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Replace all data with a JSON backup",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("backup file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := export.FromJSON(args[0])
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.tracker.Replace(st)
			sess.tracker.RefreshStreaks()
			sess.log.Info("imported backup", "path", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s restored %s\n", IconDone, args[0])
			return sess.saved()
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if sess.seeded {
				fmt.Fprintf(cmd.OutOrStdout(), "%s demo data loaded\n", IconSparkle)
				return sess.saved()
			}
			if sess.tracker.HasUser() && !force {
				return fmt.Errorf("%w: data already exists (use --force to overwrite)", tracker.ErrInvalid)
			}
			sess.tracker.Replace(seed.Demo(time.Now()))
			sess.tracker.RefreshStreaks()
			fmt.Fprintf(cmd.OutOrStdout(), "%s demo data loaded\n", IconSparkle)
			return sess.saved()
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing data")
	return cmd
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("%w: reset deletes everything, pass --yes to confirm", tracker.ErrInvalid)
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.tracker.Reset()
			sess.log.Warn("state reset")
			fmt.Fprintf(cmd.OutOrStdout(), "%s all data cleared\n", IconWarn)
			return sess.saved()
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm")
	return cmd
}
