package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newJournalCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newJournalAddCmd(opts), newJournalListCmd(opts))
	return cmd
}

func newJournalAddCmd(opts *rootOptions) *cobra.Command {
	var kind, title string
	var mood int
	var gratitude, tags []string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a journal entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && len(gratitude) == 0 {
				return errors.New("text or --gratitude is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			jt, err := tracker.ParseJournalType(kind)
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			in := tracker.JournalInput{
				Type:           jt,
				Title:          title,
				Content:        strings.Join(args, " "),
				GratitudeItems: gratitude,
				Mood:           mood,
				Tags:           tags,
			}
			return track(cmd, sess, func() error {
				e, err := sess.tracker.AddJournalEntry(in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s entry for %s %s\n", IconPen, e.Type, e.Date, Muted.Render(shortID(e.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(tracker.JournalFree), "Entry type (morning|evening|gratitude|reflection|free)")
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().IntVar(&mood, "mood", 0, "Mood (0-10)")
	cmd.Flags().StringSliceVarP(&gratitude, "gratitude", "g", nil, "Things you are grateful for")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags")
	return cmd
}

func newJournalListCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show recent journal entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			entries := sess.tracker.Snapshot().JournalEntries
			if len(entries) == 0 {
				fmt.Fprintln(out, Muted.Render("The journal is empty."))
				return nil
			}
			sort.SliceStable(entries, func(i, j int) bool {
				if entries[i].Date != entries[j].Date {
					return entries[i].Date > entries[j].Date
				}
				return entries[i].CreatedAt.After(entries[j].CreatedAt)
			})
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, e := range entries {
				head := fmt.Sprintf("%s  %s", e.Date, e.Type)
				if e.Title != "" {
					head += "  " + e.Title
				}
				if e.Mood > 0 {
					head += fmt.Sprintf("  mood %d", e.Mood)
				}
				fmt.Fprintln(out, H2.Render(head))
				if e.Content != "" {
					fmt.Fprintln(out, "  "+e.Content)
				}
				for _, g := range e.GratitudeItems {
					fmt.Fprintln(out, "  "+Good.Render("+")+" "+g)
				}
				if len(e.Tags) > 0 {
					fmt.Fprintln(out, "  "+Muted.Render("#"+strings.Join(e.Tags, " #")))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries (0 for all)")
	return cmd
}
