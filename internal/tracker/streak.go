package tracker

import (
	"bytes"
	"encoding/json"
	"sort"
)

// History maps a day key to whether the habit was completed that day.
type History map[string]bool

// UnmarshalJSON decodes a history object. Only the literal true counts as a
// completion; any other value for a key decodes as false.
func (h *History) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(History, len(raw))
	for day, v := range raw {
		out[day] = bytes.Equal(bytes.TrimSpace(v), []byte("true"))
	}
	*h = out
	return nil
}

// ComputeStreak counts consecutive completed days walking backward from today.
// If today itself is not completed the streak is 0, even when yesterday was.
func ComputeStreak(history History, today string) int {
	if !history[today] {
		return 0
	}
	t, err := ParseDay(today)
	if err != nil {
		return 0
	}
	streak := 0
	for history[DayKey(t)] {
		streak++
		t = t.AddDate(0, 0, -1)
	}
	return streak
}

// CompletedCount returns the number of completed days in history.
func CompletedCount(history History) int {
	n := 0
	for _, done := range history {
		if done {
			n++
		}
	}
	return n
}

// LongestRun returns the longest run of consecutive completed days anywhere in history.
func LongestRun(history History) int {
	days := make([]string, 0, len(history))
	for day, done := range history {
		if done {
			days = append(days, day)
		}
	}
	sort.Strings(days)

	best, run := 0, 0
	for i, day := range days {
		if i > 0 {
			if next, err := AddDays(days[i-1], 1); err == nil && next == day {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func (h History) clone() History {
	if h == nil {
		return History{}
	}
	out := make(History, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}
