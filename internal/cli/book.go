package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newBookCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Track your reading",
	}
	cmd.AddCommand(newBookAddCmd(opts), newBookEditCmd(opts), newBookListCmd(opts), newBookReadCmd(opts))
	return cmd
}

func newBookAddCmd(opts *rootOptions) *cobra.Command {
	var author, why, status string
	var pages, daily int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book",
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

			b, err := sess.tracker.AddBook(tracker.BookInput{
				Title:          strings.Join(args, " "),
				Author:         author,
				Why:            why,
				Status:         tracker.BookStatus(strings.ToLower(status)),
				TotalPages:     pages,
				DailyPagesGoal: daily,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", IconBook, b.Title, Muted.Render(shortID(b.ID)))
			return sess.saved()
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&why, "why", "", "Why you are reading it")
	cmd.Flags().StringVar(&status, "status", string(tracker.BookReading), "Status (reading|completed|wishlist)")
	cmd.Flags().IntVar(&pages, "pages", 0, "Total pages")
	cmd.Flags().IntVar(&daily, "daily", 0, "Daily pages goal")
	return cmd
}

func newBookEditCmd(opts *rootOptions) *cobra.Command {
	var title, author, why, status string
	var ideas []string
	var pages, daily, rating int
	var favorite bool

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a book's details or status",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("book id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			books := sess.tracker.Snapshot().Books
			id, err := resolveID("book", args[0], idsOf(books, func(b tracker.Book) string { return b.ID }))
			if err != nil {
				return err
			}
			var in tracker.BookInput
			for _, b := range books {
				if b.ID == id {
					in = tracker.BookInput{
						Title:          b.Title,
						Author:         b.Author,
						Why:            b.Why,
						TopIdeas:       b.TopIdeas,
						Rating:         b.Rating,
						Status:         b.Status,
						TotalPages:     b.TotalPages,
						DailyPagesGoal: b.DailyPagesGoal,
						Favorite:       b.Favorite,
					}
				}
			}
			if flags.Changed("title") {
				in.Title = title
			}
			if flags.Changed("author") {
				in.Author = author
			}
			if flags.Changed("why") {
				in.Why = why
			}
			if flags.Changed("idea") {
				in.TopIdeas = ideas
			}
			if flags.Changed("rating") {
				in.Rating = rating
			}
			if flags.Changed("status") {
				in.Status = tracker.BookStatus(strings.ToLower(status))
			}
			if flags.Changed("pages") {
				in.TotalPages = pages
			}
			if flags.Changed("daily") {
				in.DailyPagesGoal = daily
			}
			if flags.Changed("favorite") {
				in.Favorite = favorite
			}

			if err := sess.tracker.UpdateBook(id, in); err != nil {
				return err
			}
			for _, b := range sess.tracker.Snapshot().Books {
				if b.ID == id {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", IconBook, b.Title,
						Muted.Render(fmt.Sprintf("%d/%d  %s", b.PagesRead, b.TotalPages, b.Status)))
				}
			}
			return sess.saved()
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&author, "author", "", "Author")
	cmd.Flags().StringVar(&why, "why", "", "Why you are reading it")
	cmd.Flags().StringSliceVar(&ideas, "idea", nil, "Top ideas (repeatable, replaces the list)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating (0-5)")
	cmd.Flags().StringVar(&status, "status", "", "Status (reading|completed|wishlist)")
	cmd.Flags().IntVar(&pages, "pages", 0, "Total pages")
	cmd.Flags().IntVar(&daily, "daily", 0, "Daily pages goal")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark as favorite")
	return cmd
}

func newBookListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List books",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			books := sess.tracker.Snapshot().Books
			if len(books) == 0 {
				fmt.Fprintln(out, Muted.Render("No books yet."))
				return nil
			}
			fmt.Fprintln(out, Heading(IconBook, fmt.Sprintf("Books  %d pages read", tracker.TotalPagesRead(books))))
			for _, b := range books {
				progress := fmt.Sprintf("%d pages", b.PagesRead)
				var pct float64
				if b.TotalPages > 0 {
					pct = float64(b.PagesRead) / float64(b.TotalPages) * 100
					progress = fmt.Sprintf("%d/%d", b.PagesRead, b.TotalPages)
				}
				title := b.Title
				if b.Author != "" {
					title += Muted.Render(" by " + b.Author)
				}
				fmt.Fprintf(out, "  %s %s %s  %s\n", Muted.Render(shortID(b.ID)), Bar(pct, 10), title,
					Muted.Render(fmt.Sprintf("%s  %s", progress, b.Status)))
			}
			return nil
		},
	}
}

func newBookReadCmd(opts *rootOptions) *cobra.Command {
	var minutes, focus int
	var notes string

	cmd := &cobra.Command{
		Use:   "read <id> <pages>",
		Short: "Log a reading session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("book id and pages are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("pages must be an integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pages, _ := strconv.Atoi(args[1])
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			st := sess.tracker.Snapshot()
			id, err := resolveID("book", args[0], idsOf(st.Books, func(b tracker.Book) string { return b.ID }))
			if err != nil {
				return err
			}
			return track(cmd, sess, func() error {
				rs, err := sess.tracker.AddReadingSession(tracker.ReadingSessionInput{
					BookID:          id,
					PagesRead:       pages,
					DurationMinutes: minutes,
					FocusLevel:      focus,
					Notes:           notes,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s read %d pages\n", IconBook, rs.PagesRead)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Session length in minutes")
	cmd.Flags().IntVar(&focus, "focus", 0, "Focus level (0-10)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}
