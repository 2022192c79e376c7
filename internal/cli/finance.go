package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/peakr/internal/tracker"
)

func newFinanceCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "finance",
		Aliases: []string{"money"},
		Short:   "Track income, spending and money rules",
	}
	cmd.AddCommand(
		newFinanceAddCmd(opts),
		newFinanceEditCmd(opts),
		newFinanceListCmd(opts),
		newFinanceSummaryCmd(opts),
		newFinanceRuleCmd(opts),
	)
	return cmd
}

func newFinanceAddCmd(opts *rootOptions) *cobra.Command {
	var category, desc, date string

	cmd := &cobra.Command{
		Use:   "add <income|expense|saving|investment> <amount>",
		Short: "Record a finance entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("type and amount are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := tracker.ParseFinanceType(args[0])
			if err != nil {
				return err
			}
			cents, err := tracker.ParseCents(args[1])
			if err != nil {
				return err
			}
			var when time.Time
			if date != "" {
				if when, err = tracker.ParseDay(date); err != nil {
					return fmt.Errorf("%w: %v", tracker.ErrInvalid, err)
				}
			}
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			return track(cmd, sess, func() error {
				e, err := sess.tracker.AddFinanceEntry(tracker.FinanceInput{
					Type:        ft,
					Category:    category,
					Amount:      cents,
					Description: desc,
					Date:        when,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", IconMoney, e.Type, tracker.FormatCents(e.Amount), Muted.Render(e.Category))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default other)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	return cmd
}

func newFinanceEditCmd(opts *rootOptions) *cobra.Command {
	var kind, amount, category, desc, date string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a finance entry",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("entry id is required")
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

			entries := sess.tracker.Snapshot().Finance.Entries
			id, err := resolveID("finance entry", args[0], idsOf(entries, func(e tracker.FinanceEntry) string { return e.ID }))
			if err != nil {
				return err
			}
			var in tracker.FinanceInput
			for _, e := range entries {
				if e.ID == id {
					in = tracker.FinanceInput{Type: e.Type, Category: e.Category, Amount: e.Amount, Description: e.Description}
				}
			}
			if flags.Changed("type") {
				if in.Type, err = tracker.ParseFinanceType(kind); err != nil {
					return err
				}
			}
			if flags.Changed("amount") {
				if in.Amount, err = tracker.ParseCents(amount); err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				in.Category = category
			}
			if flags.Changed("desc") {
				in.Description = desc
			}
			if flags.Changed("date") {
				if in.Date, err = tracker.ParseDay(date); err != nil {
					return fmt.Errorf("%w: %v", tracker.ErrInvalid, err)
				}
			}
			if err := sess.tracker.UpdateFinanceEntry(id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated %s %s\n", IconMoney, in.Type, tracker.FormatCents(in.Amount))
			return sess.saved()
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "Entry type (income|expense|saving|investment)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, e.g. 12.50")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	return cmd
}

func newFinanceListCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent finance entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			entries := sess.tracker.Snapshot().Finance.Entries
			if len(entries) == 0 {
				fmt.Fprintln(out, Muted.Render("No finance entries yet."))
				return nil
			}
			sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			for _, e := range entries {
				amount := tracker.FormatCents(e.Amount)
				if e.Type == tracker.FinanceIncome {
					amount = Good.Render("+" + amount)
				} else {
					amount = Warn.Render("-" + amount)
				}
				fmt.Fprintf(out, "  %s %s %-10s %10s  %s %s\n", Muted.Render(shortID(e.ID)), Muted.Render(e.Date.Format(tracker.DayLayout)),
					e.Type, amount, e.Category, Muted.Render(e.Description))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries (0 for all)")
	return cmd
}

func newFinanceSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals and money rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			sum := sess.tracker.FinanceSummary()
			fmt.Fprintln(out, Heading(IconMoney, "Finance"))
			fmt.Fprintln(out, LabelValue("Income", tracker.FormatCents(sum.Income)))
			fmt.Fprintln(out, LabelValue("Expenses", tracker.FormatCents(sum.Expenses)))
			fmt.Fprintln(out, LabelValue("Savings", tracker.FormatCents(sum.Savings)))
			fmt.Fprintln(out, LabelValue("Investments", tracker.FormatCents(sum.Investments)))
			net := tracker.FormatCents(sum.Net())
			if sum.Net() < 0 {
				net = Bad.Render(net)
			} else {
				net = Good.Render(net)
			}
			fmt.Fprintln(out, LabelValue("Net", net))
			fmt.Fprintln(out, LabelValue("Savings rate", fmt.Sprintf("%d%%", sum.SavingsRate())))

			rules := sess.tracker.Snapshot().Finance.MoneyRules
			if len(rules) == 0 {
				return nil
			}
			keys := make([]string, 0, len(rules))
			for k := range rules {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(out)
			fmt.Fprintln(out, H2.Render("Money rules"))
			for _, k := range keys {
				fmt.Fprintf(out, "  %s %s\n", Check(rules[k]), strings.ReplaceAll(k, "_", " "))
			}
			return nil
		},
	}
}

func newFinanceRuleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rule <key>",
		Short: "Toggle a money rule, e.g. pay_yourself_first",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("rule key is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, cleanup, err := openSession(opts)
			if err != nil {
				return err
			}
			defer cleanup()

			return track(cmd, sess, func() error {
				on, err := sess.tracker.ToggleMoneyRule(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Check(on), strings.ReplaceAll(strings.TrimSpace(args[0]), "_", " "))
				return nil
			})
		},
	}
}
