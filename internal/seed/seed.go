// Package seed builds the demo data set offered on first run.
package seed

import (
	"fmt"
	"time"

	"github.com/sadopc/peakr/internal/tracker"
)

// historyDays is how far back demo habit histories reach.
const historyDays = 21

type demoHabit struct {
	in   tracker.HabitInput
	skip func(daysAgo int) bool
}

// Demo returns a deterministic state for the given moment: a user with a few
// weeks of habit history, goals, tasks, logs and entries. All derived fields
// (streaks, points, achievements) are produced by the tracker itself.
func Demo(now time.Time) tracker.State {
	clock := now
	n := 0
	tr := tracker.New(
		tracker.WithClock(func() time.Time { return clock }),
		tracker.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("demo-%03d", n)
		}),
	)

	must(tr.InitUser("Alex"))
	mission := "Make steady progress on what matters, one day at a time."
	wake := "05:30"
	mustDo(tr.UpdateProfile(tracker.ProfileInput{
		MissionStatement: &mission,
		CoreValues:       []string{"health", "curiosity", "craft", "family"},
		WakeUpTime:       &wake,
	}))

	habits := []demoHabit{
		{
			in: tracker.HabitInput{
				Title: "Morning meditation", Cue: "After coffee", Response: "Sit for 10 minutes",
				Reward: "Calm start", Identity: "I am a calm person", Color: "#7C3AED", Icon: "🧘",
			},
			skip: func(d int) bool { return d%6 == 5 },
		},
		{
			in: tracker.HabitInput{
				Title: "Read 20 pages", Cue: "Before bed", Response: "Read on the couch",
				Reward: "Learn something", Identity: "I am a reader", Color: "#2563EB", Icon: "📖",
			},
			skip: func(d int) bool { return d == 9 || d == 16 },
		},
		{
			in: tracker.HabitInput{
				Title: "Workout", Frequency: tracker.FrequencyWeekdays, Response: "30 minutes of exercise",
				Identity: "I am an athlete", Color: "#DC2626", Icon: "🏋️",
			},
			skip: func(d int) bool { return d%4 == 3 },
		},
		{
			in: tracker.HabitInput{
				Title: "Weekly review", Frequency: tracker.FrequencyCustom,
				CustomDays: []time.Weekday{time.Sunday}, Color: "#059669", Icon: "🗂️",
			},
			skip: func(int) bool { return false },
		},
	}

	today := tracker.DayKey(now)
	for _, dh := range habits {
		h := must(tr.AddHabit(dh.in))
		for daysAgo := historyDays - 1; daysAgo >= 0; daysAgo-- {
			day, _ := tracker.AddDays(today, -daysAgo)
			d, _ := tracker.ParseDay(day)
			if !h.ScheduledOn(d.Weekday()) || dh.skip(daysAgo) {
				continue
			}
			must(tr.ToggleHabitCompletion(h.ID, day))
		}
	}

	halfMarathon := dayOffset(now, 120)
	must(tr.AddGoal(tracker.GoalInput{
		Title: "Run a half marathon", LifeArea: tracker.LifeAreaHealth, Timeframe: tracker.TimeframeQuarterly,
		Priority: tracker.PriorityA, Why: "Prove I can train consistently", Measurable: "Longest run in km",
		TargetValue: 21, CurrentValue: 12, TargetDate: &halfMarathon,
	}))
	must(tr.AddGoal(tracker.GoalInput{
		Title: "Build an emergency fund", LifeArea: tracker.LifeAreaFinancial, Timeframe: tracker.TimeframeYearly,
		Priority: tracker.PriorityB, Measurable: "Dollars saved", TargetValue: 10000, CurrentValue: 4500,
	}))
	must(tr.AddGoal(tracker.GoalInput{
		Title: "Read 24 books", LifeArea: tracker.LifeAreaPersonalGrowth, Timeframe: tracker.TimeframeYearly,
		Priority: tracker.PriorityB, TargetValue: 24, CurrentValue: 7,
	}))

	project := must(tr.AddProject(tracker.ProjectInput{Title: "Launch side project", Description: "Ship the first public version"}))
	due := dayOffset(now, 2)
	must(tr.AddTask(tracker.TaskInput{
		Title: "Write landing page copy", Priority: tracker.PriorityA, Context: "@computer",
		EstimatedTime: 90, DueDate: &due, IsFrog: true, ProjectID: &project.ID,
	}))
	must(tr.AddTask(tracker.TaskInput{Title: "Fix signup bug", Priority: tracker.PriorityB, Context: "@computer", EstimatedTime: 45, ProjectID: &project.ID}))
	planned := must(tr.AddTask(tracker.TaskInput{Title: "Plan next week", Priority: tracker.PriorityC, Context: "@home", EstimatedTime: 20}))
	must(tr.AddTask(tracker.TaskInput{Title: "Call the dentist", Priority: tracker.PriorityD, Context: "@phone", EstimatedTime: 5}))
	must(tr.ToggleTaskCompletion(planned.ID))

	for daysAgo := 2; daysAgo >= 0; daysAgo-- {
		clock = now.AddDate(0, 0, -daysAgo)
		hours := float64(3 - daysAgo)
		must(tr.UpdateTodayLog(func(l *tracker.DailyLog) {
			l.SilenceCompleted = true
			l.SilenceDuration = 10
			l.AffirmationsCompleted = true
			l.ExerciseCompleted = daysAgo != 1
			l.ExerciseType = "run"
			l.ReadingCompleted = true
			l.ReadingPages = 20
			l.DeepWorkHours = hours
			l.DeepWorkSessions = int(hours)
			l.GratitudeList = []string{"good coffee", "a quiet morning"}
			l.ProductivityScore = 6 + daysAgo
			l.EnergyScore = 7
			l.MoodScore = 8
		}))
	}
	clock = now

	must(tr.AddJournalEntry(tracker.JournalInput{
		Date: dayOffset(now, -1), Type: tracker.JournalEvening, Title: "Good momentum",
		Content: "Finished the signup flow draft. Energy dipped after lunch.", Mood: 7, Tags: []string{"work"},
	}))
	must(tr.AddJournalEntry(tracker.JournalInput{
		Type: tracker.JournalGratitude, GratitudeItems: []string{"family dinner", "sunny walk", "a finished chapter"}, Mood: 8,
	}))

	book := must(tr.AddBook(tracker.BookInput{Title: "Atomic Habits", Author: "James Clear", TotalPages: 320, DailyPagesGoal: 20}))
	must(tr.AddReadingSession(tracker.ReadingSessionInput{BookID: book.ID, PagesRead: 45, DurationMinutes: 50, FocusLevel: 8}))
	must(tr.AddBook(tracker.BookInput{Title: "Deep Work", Author: "Cal Newport", Status: tracker.BookWishlist, TotalPages: 296}))

	monthStart := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, now.Location())
	must(tr.AddFinanceEntry(tracker.FinanceInput{Type: tracker.FinanceIncome, Category: "salary", Amount: 520000, Date: monthStart}))
	must(tr.AddFinanceEntry(tracker.FinanceInput{Type: tracker.FinanceExpense, Category: "rent", Amount: 180000, Date: monthStart}))
	must(tr.AddFinanceEntry(tracker.FinanceInput{Type: tracker.FinanceExpense, Category: "groceries", Amount: 23450, Date: monthStart.AddDate(0, 0, 3)}))
	must(tr.AddFinanceEntry(tracker.FinanceInput{Type: tracker.FinanceSaving, Category: "emergency fund", Amount: 50000, Date: monthStart}))
	must(tr.AddFinanceEntry(tracker.FinanceInput{Type: tracker.FinanceInvestment, Category: "index fund", Amount: 40000, Date: monthStart}))
	must(tr.ToggleMoneyRule("pay_yourself_first"))
	must(tr.ToggleMoneyRule("track_spending"))

	mustDo(tr.AddToInbox("Research standing desks"))
	mustDo(tr.AddToInbox("Book flights for the conference"))

	st := tr.Snapshot()
	for i := range st.Habits {
		if run := tracker.LongestRun(st.Habits[i].History); run > st.Habits[i].LongestStreak {
			st.Habits[i].LongestStreak = run
		}
	}
	return st
}

func dayOffset(now time.Time, days int) string {
	return tracker.DayKey(now.AddDate(0, 0, days))
}

// must panics on error; the demo inputs are fixed and always valid.
func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("seed: %v", err))
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(fmt.Sprintf("seed: %v", err))
	}
}
