package tracker

import (
	"encoding/json"
	"fmt"
	"time"
)

// SchemaVersion is written into every encoded snapshot.
const SchemaVersion = 1

// StorageKey names the persisted snapshot blob.
const StorageKey = "peak-performer-storage"

// State is a complete snapshot of the tracker. Snapshots handed out by the
// Tracker are deep copies and never change afterwards.
type State struct {
	Version         int              `json:"version"`
	User            *Profile         `json:"user"`
	Goals           []Goal           `json:"goals"`
	Habits          []Habit          `json:"habits"`
	Tasks           []Task           `json:"tasks"`
	Projects        []Project        `json:"projects"`
	DailyLogs       []DailyLog       `json:"daily_logs"`
	JournalEntries  []JournalEntry   `json:"journal_entries"`
	Achievements    []Achievement    `json:"achievements"`
	Inbox           []string         `json:"inbox"`
	Books           []Book           `json:"books"`
	ReadingSessions []ReadingSession `json:"reading_sessions"`
	Finance         Finance          `json:"finance"`
	CurrentView     string           `json:"current_view"`
	Theme           Theme            `json:"theme"`
}

// EmptyState is the state of a fresh install: no user, locked catalog.
func EmptyState() State {
	return State{
		Version:      SchemaVersion,
		Achievements: DefaultAchievements(),
		Finance:      Finance{MoneyRules: map[string]bool{}},
		CurrentView:  "dashboard",
		Theme:        ThemeAuto,
	}
}

// Encode serializes a snapshot as JSON.
func Encode(st State) ([]byte, error) {
	st.Version = SchemaVersion
	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return b, nil
}

// Decode parses a snapshot produced by Encode. Missing collections are
// normalized so callers never see a nil catalog or rules map, and each
// habit's completion total is recounted from its history.
func Decode(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	if len(st.Achievements) == 0 {
		st.Achievements = DefaultAchievements()
	}
	if st.Finance.MoneyRules == nil {
		st.Finance.MoneyRules = map[string]bool{}
	}
	for i := range st.Habits {
		h := &st.Habits[i]
		if h.History == nil {
			h.History = History{}
		}
		// Stored counters may disagree with a history that held junk values.
		h.TotalCompletions = CompletedCount(h.History)
		h.LongestStreak = max(h.LongestStreak, h.CurrentStreak, LongestRun(h.History))
	}
	if st.Theme == "" {
		st.Theme = ThemeAuto
	}
	if st.CurrentView == "" {
		st.CurrentView = "dashboard"
	}
	return st, nil
}

func (st State) clone() State {
	out := st
	if st.User != nil {
		u := *st.User
		u.CoreValues = cloneStrings(st.User.CoreValues)
		u.MorningRoutine = cloneStrings(st.User.MorningRoutine)
		u.EveningRoutine = cloneStrings(st.User.EveningRoutine)
		u.Achievements = cloneStrings(st.User.Achievements)
		if st.User.LifeRoles != nil {
			u.LifeRoles = make(map[string]string, len(st.User.LifeRoles))
			for k, v := range st.User.LifeRoles {
				u.LifeRoles[k] = v
			}
		}
		out.User = &u
	}

	out.Goals = cloneSlice(st.Goals, func(g Goal) Goal {
		g.TargetDate = clonePtr(g.TargetDate)
		return g
	})
	out.Habits = cloneSlice(st.Habits, func(h Habit) Habit {
		h.TargetDays = append([]time.Weekday(nil), h.TargetDays...)
		h.ReminderTime = clonePtr(h.ReminderTime)
		h.AfterHabit = clonePtr(h.AfterHabit)
		h.History = h.History.clone()
		return h
	})
	out.Tasks = cloneSlice(st.Tasks, func(t Task) Task {
		t.DueDate = clonePtr(t.DueDate)
		t.CompletedAt = clonePtr(t.CompletedAt)
		t.ProjectID = clonePtr(t.ProjectID)
		return t
	})
	out.Projects = cloneSlice(st.Projects, func(p Project) Project {
		p.Tasks = cloneStrings(p.Tasks)
		return p
	})
	out.DailyLogs = cloneSlice(st.DailyLogs, func(l DailyLog) DailyLog {
		l.FrogCompletedTime = clonePtr(l.FrogCompletedTime)
		l.GratitudeList = cloneStrings(l.GratitudeList)
		l.Wins = cloneStrings(l.Wins)
		l.Lessons = cloneStrings(l.Lessons)
		l.Improvements = cloneStrings(l.Improvements)
		l.TomorrowPriorities = cloneStrings(l.TomorrowPriorities)
		return l
	})
	out.JournalEntries = cloneSlice(st.JournalEntries, func(e JournalEntry) JournalEntry {
		e.GratitudeItems = cloneStrings(e.GratitudeItems)
		e.Tags = cloneStrings(e.Tags)
		return e
	})
	out.Achievements = cloneSlice(st.Achievements, func(a Achievement) Achievement {
		a.UnlockedAt = clonePtr(a.UnlockedAt)
		return a
	})
	out.Inbox = cloneStrings(st.Inbox)
	out.Books = cloneSlice(st.Books, func(b Book) Book {
		b.TopIdeas = cloneStrings(b.TopIdeas)
		b.CompletedAt = clonePtr(b.CompletedAt)
		return b
	})
	out.ReadingSessions = cloneSlice(st.ReadingSessions, func(s ReadingSession) ReadingSession { return s })
	out.Finance.Entries = cloneSlice(st.Finance.Entries, func(e FinanceEntry) FinanceEntry { return e })
	out.Finance.MoneyRules = make(map[string]bool, len(st.Finance.MoneyRules))
	for k, v := range st.Finance.MoneyRules {
		out.Finance.MoneyRules[k] = v
	}
	return out
}

func cloneSlice[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
