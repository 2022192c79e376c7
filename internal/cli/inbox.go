package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newInboxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Capture thoughts to process later",
	}
	cmd.AddCommand(
		newInboxAddCmd(opts),
		newInboxListCmd(opts),
		newInboxRemoveCmd(opts),
		newInboxClearCmd(opts),
	)
	return cmd
}

func newInboxAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Capture an item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sess.tracker.AddToInbox(strings.Join(args, " ")); err != nil {
				return err
			}
			n := len(sess.tracker.Snapshot().Inbox)
			fmt.Fprintf(cmd.OutOrStdout(), "%s captured %s\n", IconInbox, Muted.Render(fmt.Sprintf("(%d in inbox)", n)))
			return sess.saved()
		},
	}
}

func newInboxListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List inbox items",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			items := sess.tracker.Snapshot().Inbox
			if len(items) == 0 {
				fmt.Fprintln(out, Muted.Render("Inbox zero."))
				return nil
			}
			fmt.Fprintln(out, Heading(IconInbox, "Inbox"))
			for i, item := range items {
				fmt.Fprintf(out, "  %s %s\n", Key.Render(strconv.Itoa(i+1)+"."), item)
			}
			return nil
		},
	}
}

func newInboxRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <n>",
		Aliases: []string{"rm"},
		Short:   "Remove the nth item (as numbered by list)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("item number is required")
			}
			if n, err := strconv.Atoi(args[0]); err != nil || n < 1 {
				return errors.New("item number must be a positive integer")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := strconv.Atoi(args[0])
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := sess.tracker.RemoveFromInbox(n - 1); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render(fmt.Sprintf("removed item %d", n)))
			return sess.saved()
		},
	}
}

func newInboxClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the inbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			sess.tracker.ClearInbox()
			fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("inbox cleared"))
			return sess.saved()
		},
	}
}
