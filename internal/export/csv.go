package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/peakr/internal/tracker"
)

func HabitsCSV(habits []tracker.Habit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Title", "Frequency", "Current Streak", "Longest Streak", "Total Completions", "Completed Days", "Created"}); err != nil {
		return err
	}

	for _, h := range habits {
		row := []string{
			h.ID,
			h.Title,
			string(h.Frequency),
			strconv.Itoa(h.CurrentStreak),
			strconv.Itoa(h.LongestStreak),
			strconv.Itoa(h.TotalCompletions),
			strings.Join(completedDays(h.History), ";"),
			h.CreatedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func FinanceCSV(entries []tracker.FinanceEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Date", "Type", "Category", "Amount", "Description"}); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			tracker.DayKey(e.Date.Local()),
			string(e.Type),
			e.Category,
			tracker.FormatCents(e.Amount),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func completedDays(h tracker.History) []string {
	days := make([]string, 0, len(h))
	for day, done := range h {
		if done {
			days = append(days, day)
		}
	}
	sort.Strings(days)
	return days
}
