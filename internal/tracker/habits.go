package tracker

import (
	"fmt"
	"strings"
	"time"
)

// HabitInput carries the user-editable habit fields.
type HabitInput struct {
	Title        string
	Description  string
	Cue          string
	Craving      string
	Response     string
	Reward       string
	Identity     string
	Frequency    HabitFrequency
	CustomDays   []time.Weekday
	ReminderTime *string
	AfterHabit   *string
	Color        string
	Icon         string
}

func (in HabitInput) normalize() (HabitInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if in.Frequency == "" {
		in.Frequency = FrequencyDaily
	}
	if _, err := ParseFrequency(string(in.Frequency)); err != nil {
		return in, err
	}
	if in.Frequency == FrequencyCustom && len(in.CustomDays) == 0 {
		return in, fmt.Errorf("%w: custom frequency needs at least one day", ErrInvalid)
	}
	return in, nil
}

func (in HabitInput) apply(h *Habit) {
	h.Title = in.Title
	h.Description = in.Description
	h.Cue = in.Cue
	h.Craving = in.Craving
	h.Response = in.Response
	h.Reward = in.Reward
	h.Identity = in.Identity
	h.Frequency = in.Frequency
	h.TargetDays = TargetDaysFor(in.Frequency, in.CustomDays)
	h.ReminderTime = clonePtr(in.ReminderTime)
	h.AfterHabit = clonePtr(in.AfterHabit)
	h.Color = in.Color
	h.Icon = in.Icon
}

func findHabit(st *State, id string) int {
	for i := range st.Habits {
		if st.Habits[i].ID == id {
			return i
		}
	}
	return -1
}

// AddHabit creates a habit with an empty history. The first habit ever
// created unlocks habit_starter.
func (t *Tracker) AddHabit(in HabitInput) (Habit, error) {
	in, err := in.normalize()
	if err != nil {
		return Habit{}, err
	}
	var created Habit
	err = t.mutate(func(st *State) error {
		if in.AfterHabit != nil && findHabit(st, *in.AfterHabit) < 0 {
			return notFound("habit", *in.AfterHabit)
		}
		h := Habit{
			ID:        t.newID(),
			History:   History{},
			CreatedAt: t.clock(),
		}
		in.apply(&h)

		first := len(st.Habits) == 0
		st.Habits = append(st.Habits, h)
		if first {
			t.unlock(st, AchievementHabitStarter)
		}
		created = h
		return nil
	})
	return created, err
}

// UpdateHabit replaces the editable fields. Streaks and history are untouched.
func (t *Tracker) UpdateHabit(id string, in HabitInput) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findHabit(st, id)
		if i < 0 {
			return notFound("habit", id)
		}
		if in.AfterHabit != nil {
			if *in.AfterHabit == id {
				return fmt.Errorf("%w: habit cannot follow itself", ErrInvalid)
			}
			if findHabit(st, *in.AfterHabit) < 0 {
				return notFound("habit", *in.AfterHabit)
			}
		}
		in.apply(&st.Habits[i])
		return nil
	})
}

// DeleteHabit removes the habit and every reference to it as a predecessor.
func (t *Tracker) DeleteHabit(id string) error {
	return t.mutate(func(st *State) error {
		i := findHabit(st, id)
		if i < 0 {
			return notFound("habit", id)
		}
		st.Habits = append(st.Habits[:i], st.Habits[i+1:]...)
		for j := range st.Habits {
			if st.Habits[j].AfterHabit != nil && *st.Habits[j].AfterHabit == id {
				st.Habits[j].AfterHabit = nil
			}
		}
		return nil
	})
}

// ToggleHabitCompletion flips the habit's entry for day. The current streak
// is always recomputed from today, not from day. Turning a day on awards
// points and checks the streak achievements; turning it off takes nothing back.
func (t *Tracker) ToggleHabitCompletion(id, day string) (Habit, error) {
	if _, err := ParseDay(day); err != nil {
		return Habit{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var updated Habit
	err := t.mutate(func(st *State) error {
		i := findHabit(st, id)
		if i < 0 {
			return notFound("habit", id)
		}
		h := &st.Habits[i]
		if h.History == nil {
			h.History = History{}
		}
		wasCompleted := h.History[day]
		if wasCompleted {
			delete(h.History, day)
		} else {
			h.History[day] = true
		}

		h.CurrentStreak = ComputeStreak(h.History, Today(t.clock))
		if h.CurrentStreak > h.LongestStreak {
			h.LongestStreak = h.CurrentStreak
		}
		h.TotalCompletions = CompletedCount(h.History)

		if !wasCompleted {
			t.award(st, Points.CompleteHabit)
			if h.CurrentStreak >= streakWeek {
				t.unlock(st, AchievementStreak7)
			}
			if h.CurrentStreak >= streakMonth {
				t.unlock(st, AchievementStreak30)
			}
		}
		updated = st.Habits[i]
		updated.History = updated.History.clone()
		return nil
	})
	return updated, err
}

// RefreshStreaks recomputes every habit's current streak against today, e.g.
// after the app was closed for a few days, and recounts completion totals.
// No points are awarded.
func (t *Tracker) RefreshStreaks() {
	_ = t.mutate(func(st *State) error {
		today := Today(t.clock)
		changed := false
		for i := range st.Habits {
			h := &st.Habits[i]
			streak := ComputeStreak(h.History, today)
			if streak != h.CurrentStreak {
				h.CurrentStreak = streak
				changed = true
			}
			if h.CurrentStreak > h.LongestStreak {
				h.LongestStreak = h.CurrentStreak
				changed = true
			}
			if total := CompletedCount(h.History); total != h.TotalCompletions {
				h.TotalCompletions = total
				changed = true
			}
		}
		if !changed {
			return errNoChange
		}
		return nil
	})
}

// HabitsDueOn returns the habits scheduled for day's weekday.
func (t *Tracker) HabitsDueOn(day string) ([]Habit, error) {
	d, err := ParseDay(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	st := t.Snapshot()
	var due []Habit
	for _, h := range st.Habits {
		if h.ScheduledOn(d.Weekday()) {
			due = append(due, h)
		}
	}
	return due, nil
}
