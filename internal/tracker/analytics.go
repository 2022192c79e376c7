package tracker

import "fmt"

// DayCount is the number of habit completions on one day.
type DayCount struct {
	Day   string
	Count int
}

// CompletionsByDay counts completions across habits for days consecutive
// days starting at from.
func CompletionsByDay(habits []Habit, from string, days int) ([]DayCount, error) {
	if _, err := ParseDay(from); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	out := make([]DayCount, 0, days)
	for i := 0; i < days; i++ {
		day, _ := AddDays(from, i)
		n := 0
		for _, h := range habits {
			if h.History[day] {
				n++
			}
		}
		out = append(out, DayCount{Day: day, Count: n})
	}
	return out, nil
}

// CompletionRate is the percentage of scheduled days in the window of days
// ending at today on which the habit was completed.
func CompletionRate(h Habit, today string, days int) float64 {
	start, err := AddDays(today, -(days - 1))
	if err != nil || days <= 0 {
		return 0
	}
	scheduled, done := 0, 0
	for i := 0; i < days; i++ {
		day, _ := AddDays(start, i)
		d, _ := ParseDay(day)
		if !h.ScheduledOn(d.Weekday()) {
			continue
		}
		scheduled++
		if h.History[day] {
			done++
		}
	}
	if scheduled == 0 {
		return 0
	}
	return float64(done) * 100 / float64(scheduled)
}

// AverageGoalProgress averages progress over active goals; 0 when there are none.
func AverageGoalProgress(goals []Goal) float64 {
	var sum float64
	n := 0
	for _, g := range goals {
		if g.Status != GoalActive {
			continue
		}
		sum += g.Progress
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CompletedToday counts habits checked off on today.
func CompletedToday(habits []Habit, today string) int {
	n := 0
	for _, h := range habits {
		if h.History[today] {
			n++
		}
	}
	return n
}
