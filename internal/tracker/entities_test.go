package tracker

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Habits
// ============================================================

func TestHabitScheduleAndChain(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")

	_, err := tr.AddHabit(HabitInput{Title: ""})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.AddHabit(HabitInput{Title: "Gym", Frequency: FrequencyCustom})
	assert.ErrorIs(t, err, ErrInvalid)

	coffee, err := tr.AddHabit(HabitInput{Title: "Coffee"})
	require.NoError(t, err)
	journal, err := tr.AddHabit(HabitInput{Title: "Journal", Frequency: FrequencyWeekdays, AfterHabit: &coffee.ID})
	require.NoError(t, err)
	_, err = tr.AddHabit(HabitInput{Title: "Hike", Frequency: FrequencyWeekends})
	require.NoError(t, err)

	// 2024-01-06 is a Saturday, 2024-01-08 a Monday.
	sat, err := tr.HabitsDueOn("2024-01-06")
	require.NoError(t, err)
	assert.Len(t, sat, 2)
	mon, err := tr.HabitsDueOn("2024-01-08")
	require.NoError(t, err)
	assert.Len(t, mon, 2)

	require.NoError(t, tr.DeleteHabit(coffee.ID))
	st := tr.Snapshot()
	require.Len(t, st.Habits, 2)
	assert.Equal(t, journal.ID, st.Habits[0].ID)
	assert.Nil(t, st.Habits[0].AfterHabit)
}

func TestUpdateHabitKeepsHistory(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	h, err := tr.AddHabit(HabitInput{Title: "Read"})
	require.NoError(t, err)
	_, err = tr.ToggleHabitCompletion(h.ID, "2024-01-07")
	require.NoError(t, err)

	require.NoError(t, tr.UpdateHabit(h.ID, HabitInput{Title: "Read 20 pages", Identity: "reader"}))
	assert.ErrorIs(t, tr.UpdateHabit(h.ID, HabitInput{Title: "Loop", AfterHabit: &h.ID}), ErrInvalid)

	got := tr.Snapshot().Habits[0]
	assert.Equal(t, "Read 20 pages", got.Title)
	assert.Equal(t, 1, got.CurrentStreak)
	assert.True(t, got.History["2024-01-07"])
}

// ============================================================
// Tasks
// ============================================================

func TestFrogIsUnique(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	a, err := tr.AddTask(TaskInput{Title: "Write report", Priority: PriorityA})
	require.NoError(t, err)
	b, err := tr.AddTask(TaskInput{Title: "Call bank", IsFrog: true})
	require.NoError(t, err)

	require.NoError(t, tr.SetFrogOfDay(a.ID))
	frog, ok := tr.Frog()
	require.True(t, ok)
	assert.Equal(t, a.ID, frog.ID)

	assert.ErrorIs(t, tr.SetFrogOfDay("missing"), ErrNotFound)
	frog, _ = tr.Frog()
	assert.Equal(t, a.ID, frog.ID)

	require.NoError(t, tr.UpdateTask(b.ID, TaskInput{Title: "Call bank", IsFrog: true}))
	frogs := 0
	for _, task := range tr.Snapshot().Tasks {
		if task.IsFrog {
			frogs++
			assert.Equal(t, b.ID, task.ID)
		}
	}
	assert.Equal(t, 1, frogs)
}

func TestToggleTaskCompletionPoints(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)
	frog, err := tr.AddTask(TaskInput{Title: "Taxes", IsFrog: true})
	require.NoError(t, err)
	plain, err := tr.AddTask(TaskInput{Title: "Email"})
	require.NoError(t, err)

	got, err := tr.ToggleTaskCompletion(frog.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, int64(30+50), tr.Snapshot().User.TotalPoints)

	got, err = tr.ToggleTaskCompletion(frog.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, int64(80), tr.Snapshot().User.TotalPoints)

	_, err = tr.ToggleTaskCompletion(frog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(110), tr.Snapshot().User.TotalPoints)

	_, err = tr.ToggleTaskCompletion(plain.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(115), tr.Snapshot().User.TotalPoints)

	_, err = tr.ToggleTaskCompletion("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskValidation(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	bad := "tomorrow"
	_, err := tr.AddTask(TaskInput{Title: "x", DueDate: &bad})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.AddTask(TaskInput{Title: "x", Priority: "Z"})
	assert.ErrorIs(t, err, ErrInvalid)
	missing := "p-404"
	_, err = tr.AddTask(TaskInput{Title: "x", ProjectID: &missing})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, tr.Snapshot().Tasks)
}

func TestSortTasks(t *testing.T) {
	d1, d2 := "2024-01-08", "2024-01-09"
	tasks := []Task{
		{ID: "done", Priority: PriorityA, Completed: true},
		{ID: "c", Priority: PriorityC},
		{ID: "a-late", Priority: PriorityA, DueDate: &d2},
		{ID: "a-none", Priority: PriorityA},
		{ID: "a-early", Priority: PriorityA, DueDate: &d1},
	}
	SortTasks(tasks)
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	assert.Equal(t, []string{"a-early", "a-late", "a-none", "c", "done"}, ids)
}

// ============================================================
// Projects
// ============================================================

func TestProjectTaskAssignment(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	p, err := tr.AddProject(ProjectInput{Title: "Launch"})
	require.NoError(t, err)
	assert.Equal(t, ProjectActive, p.Status)

	task, err := tr.AddTask(TaskInput{Title: "Landing page", ProjectID: &p.ID})
	require.NoError(t, err)
	require.NotNil(t, task.ProjectID)
	assert.Equal(t, []string{task.ID}, tr.Snapshot().Projects[0].Tasks)

	require.NoError(t, tr.AssignTask(task.ID, ""))
	st := tr.Snapshot()
	assert.Empty(t, st.Projects[0].Tasks)
	assert.Nil(t, st.Tasks[0].ProjectID)

	require.NoError(t, tr.AssignTask(task.ID, p.ID))
	require.NoError(t, tr.DeleteProject(p.ID))
	st = tr.Snapshot()
	assert.Empty(t, st.Projects)
	require.Len(t, st.Tasks, 1)
	assert.Nil(t, st.Tasks[0].ProjectID)
}

// ============================================================
// Goals
// ============================================================

func TestGoalLifecycle(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	g, err := tr.AddGoal(GoalInput{Title: "Run 10k", TargetValue: 10, CurrentValue: 5})
	require.NoError(t, err)
	assert.Equal(t, 50.0, g.Progress)
	assert.Equal(t, GoalActive, g.Status)
	assert.True(t, achievement(t, tr.Snapshot(), AchievementGoalSetter).Unlocked())

	g, err = tr.SetGoalValue(g.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.Progress)

	require.NoError(t, tr.CompleteGoal(g.ID))
	require.NoError(t, tr.CompleteGoal(g.ID))
	st := tr.Snapshot()
	assert.Equal(t, GoalCompleted, st.Goals[0].Status)
	assert.Equal(t, int64(25+200), st.User.TotalPoints)

	require.NoError(t, tr.SetGoalStatus(g.ID, GoalActive))
	assert.Equal(t, GoalActive, tr.Snapshot().Goals[0].Status)
	assert.ErrorIs(t, tr.SetGoalStatus(g.ID, "abandoned"), ErrInvalid)

	zero, err := tr.AddGoal(GoalInput{Title: "Be calmer"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero.Progress)
	assert.Equal(t, int64(225), tr.Snapshot().User.TotalPoints)

	require.NoError(t, tr.DeleteGoal(zero.ID))
	assert.ErrorIs(t, tr.DeleteGoal(zero.ID), ErrNotFound)
}

// ============================================================
// Daily log
// ============================================================

func fullMorning(l *DailyLog) {
	l.SilenceCompleted = true
	l.AffirmationsCompleted = true
	l.VisualizationCompleted = true
	l.ExerciseCompleted = true
	l.ReadingCompleted = true
	l.ScribingCompleted = true
}

func TestMorningRoutineWeekUnlocksMorningMaster(t *testing.T) {
	tr, clock := newTestTracker(t, "2024-01-01")
	newTestUser(t, tr)

	for i := 0; i < 7; i++ {
		day, _ := AddDays("2024-01-01", i)
		clock.setDay(t, day)
		_, err := tr.UpdateTodayLog(fullMorning)
		require.NoError(t, err)
		// re-saving a finished routine earns nothing more
		_, err = tr.UpdateTodayLog(func(l *DailyLog) { l.FocusToday = "ship" })
		require.NoError(t, err)

		unlocked := achievement(t, tr.Snapshot(), AchievementMorningMaster).Unlocked()
		assert.Equal(t, i == 6, unlocked, "day %s", day)
	}

	assert.Equal(t, 7, tr.MorningStreak())
	assert.Equal(t, int64(7*50+300), tr.Snapshot().User.TotalPoints)
	assert.Len(t, tr.Snapshot().DailyLogs, 7)
}

func TestDeepWorkAndScores(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	assert.Equal(t, "2024-01-07", tr.TodayLog().Date)

	l, err := tr.UpdateTodayLog(func(l *DailyLog) {
		l.DeepWorkHours = 2.5
		l.ProductivityScore = 8
		l.EnergyScore = 6
		l.FrogCompleted = true
	})
	require.NoError(t, err)
	assert.Equal(t, 7, l.OverallScore)
	require.NotNil(t, l.FrogCompletedTime)
	assert.Equal(t, int64(40), tr.Snapshot().User.TotalPoints)

	_, err = tr.UpdateTodayLog(func(l *DailyLog) { l.DeepWorkHours = 4.5 })
	require.NoError(t, err)
	assert.True(t, achievement(t, tr.Snapshot(), AchievementDeepWorker).Unlocked())
	assert.Equal(t, int64(40+40+150), tr.Snapshot().User.TotalPoints)

	log, ok := tr.LogFor("2024-01-07")
	require.True(t, ok)
	assert.Equal(t, 4.5, log.DeepWorkHours)
	_, ok = tr.LogFor("2024-01-06")
	assert.False(t, ok)
}

// ============================================================
// Journal
// ============================================================

func TestTenthJournalEntryUnlocksJournaler(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	_, err := tr.AddJournalEntry(JournalInput{Content: "  "})
	assert.ErrorIs(t, err, ErrInvalid)

	for i := 0; i < 9; i++ {
		_, err := tr.AddJournalEntry(JournalInput{Content: "note"})
		require.NoError(t, err)
	}
	assert.False(t, achievement(t, tr.Snapshot(), AchievementJournaler).Unlocked())

	e, err := tr.AddJournalEntry(JournalInput{Type: JournalGratitude, GratitudeItems: []string{"coffee"}})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", e.Date)
	assert.True(t, achievement(t, tr.Snapshot(), AchievementJournaler).Unlocked())
	assert.Equal(t, int64(10*15+100), tr.Snapshot().User.TotalPoints)

	require.NoError(t, tr.UpdateJournalEntry(e.ID, JournalInput{Content: "edited", Mood: 8}))
	require.NoError(t, tr.DeleteJournalEntry(e.ID))
	assert.Len(t, tr.Snapshot().JournalEntries, 9)
	assert.True(t, achievement(t, tr.Snapshot(), AchievementJournaler).Unlocked())
}

// ============================================================
// Reading
// ============================================================

func TestReadingSessionsClampAndComplete(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)
	b, err := tr.AddBook(BookInput{Title: "Deep Work", TotalPages: 120})
	require.NoError(t, err)

	s, err := tr.AddReadingSession(ReadingSessionInput{BookID: b.ID, PagesRead: 80})
	require.NoError(t, err)
	assert.Equal(t, 80, s.PagesRead)

	s, err = tr.AddReadingSession(ReadingSessionInput{BookID: b.ID, PagesRead: 60})
	require.NoError(t, err)
	assert.Equal(t, 40, s.PagesRead)

	st := tr.Snapshot()
	assert.Equal(t, BookCompleted, st.Books[0].Status)
	assert.Equal(t, 120, st.Books[0].PagesRead)
	assert.NotNil(t, st.Books[0].CompletedAt)
	assert.True(t, achievement(t, st, AchievementReader).Unlocked())
	assert.Equal(t, int64(120+100), st.User.TotalPoints)

	_, err = tr.AddReadingSession(ReadingSessionInput{BookID: b.ID, PagesRead: 5})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.AddReadingSession(ReadingSessionInput{BookID: "missing", PagesRead: 5})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tr.DeleteBook(b.ID))
	st = tr.Snapshot()
	assert.Empty(t, st.Books)
	assert.Empty(t, st.ReadingSessions)
}

func TestReadingSessionsAreCapped(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	b, err := tr.AddBook(BookInput{Title: "Open-ended"})
	require.NoError(t, err)

	var sixth string
	for i := 0; i < maxReadingSessions+5; i++ {
		s, err := tr.AddReadingSession(ReadingSessionInput{BookID: b.ID, PagesRead: 1})
		require.NoError(t, err)
		if i == 5 {
			sixth = s.ID
		}
	}
	st := tr.Snapshot()
	require.Len(t, st.ReadingSessions, maxReadingSessions)
	assert.Equal(t, sixth, st.ReadingSessions[0].ID)
	assert.Equal(t, maxReadingSessions+5, st.Books[0].PagesRead)
}

func TestUpdateBookClampsAndTracksCompletion(t *testing.T) {
	tr, clock := newTestTracker(t, "2024-01-07")
	b, err := tr.AddBook(BookInput{Title: "Atomic Habits", TotalPages: 300})
	require.NoError(t, err)
	_, err = tr.AddReadingSession(ReadingSessionInput{BookID: b.ID, PagesRead: 150})
	require.NoError(t, err)

	// Shrinking the total clamps pages read; the status stays as given.
	require.NoError(t, tr.UpdateBook(b.ID, BookInput{Title: "Atomic Habits", Author: "James Clear", TotalPages: 100}))
	got := tr.Snapshot().Books[0]
	assert.Equal(t, 100, got.PagesRead)
	assert.Equal(t, "James Clear", got.Author)
	assert.Equal(t, BookReading, got.Status)
	assert.Nil(t, got.CompletedAt)

	clock.setDay(t, "2024-01-08")
	require.NoError(t, tr.UpdateBook(b.ID, BookInput{Title: "Atomic Habits", TotalPages: 320, Status: BookCompleted}))
	got = tr.Snapshot().Books[0]
	assert.Equal(t, BookCompleted, got.Status)
	assert.Equal(t, 320, got.PagesRead)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, "2024-01-08", DayKey(*got.CompletedAt))

	// Saving a completed book again keeps the original completion time.
	clock.setDay(t, "2024-01-09")
	require.NoError(t, tr.UpdateBook(b.ID, BookInput{Title: "Atomic Habits", TotalPages: 320, Status: BookCompleted, Rating: 5}))
	got = tr.Snapshot().Books[0]
	assert.Equal(t, "2024-01-08", DayKey(*got.CompletedAt))
	assert.Equal(t, 5, got.Rating)

	require.NoError(t, tr.UpdateBook(b.ID, BookInput{Title: "Atomic Habits", TotalPages: 320, Status: BookReading}))
	assert.Nil(t, tr.Snapshot().Books[0].CompletedAt)

	assert.ErrorIs(t, tr.UpdateBook(b.ID, BookInput{Title: " "}), ErrInvalid)
	assert.ErrorIs(t, tr.UpdateBook(b.ID, BookInput{Title: "x", Rating: 6}), ErrInvalid)
	assert.ErrorIs(t, tr.UpdateBook(b.ID, BookInput{Title: "x", Status: "lost"}), ErrInvalid)
	assert.ErrorIs(t, tr.UpdateBook("missing", BookInput{Title: "x"}), ErrNotFound)
}

// ============================================================
// Inbox
// ============================================================

func TestInbox(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	require.NoError(t, tr.AddToInbox("buy milk"))
	require.NoError(t, tr.AddToInbox("renew passport"))
	assert.ErrorIs(t, tr.AddToInbox(" "), ErrInvalid)

	assert.ErrorIs(t, tr.RemoveFromInbox(5), ErrNotFound)
	require.NoError(t, tr.RemoveFromInbox(0))
	assert.Equal(t, []string{"renew passport"}, tr.Snapshot().Inbox)

	tr.ClearInbox()
	assert.Empty(t, tr.Snapshot().Inbox)
}

// ============================================================
// Finance
// ============================================================

func TestFinanceSummary(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	for _, in := range []FinanceInput{
		{Type: FinanceIncome, Amount: 500000, Category: "salary"},
		{Type: FinanceExpense, Amount: 200000, Category: "rent"},
		{Type: FinanceSaving, Amount: 50000},
		{Type: FinanceInvestment, Amount: 50000},
	} {
		_, err := tr.AddFinanceEntry(in)
		require.NoError(t, err)
	}
	_, err := tr.AddFinanceEntry(FinanceInput{Type: FinanceExpense, Amount: 0})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = tr.AddFinanceEntry(FinanceInput{Type: "gift", Amount: 10})
	assert.ErrorIs(t, err, ErrInvalid)

	sum := tr.FinanceSummary()
	assert.Equal(t, int64(500000), sum.Income)
	assert.Equal(t, int64(200000), sum.Expenses)
	assert.Equal(t, int64(200000), sum.Net())
	assert.Equal(t, 20, sum.SavingsRate())
	assert.Equal(t, int64(20), tr.Snapshot().User.TotalPoints)

	st := tr.Snapshot()
	assert.Equal(t, "other", st.Finance.Entries[2].Category)

	later := SummarizeFinance(st.Finance.Entries, tr.clock().Add(time.Hour), time.Time{})
	assert.Equal(t, FinanceTotals{}, later)

	require.NoError(t, tr.DeleteFinanceEntry(st.Finance.Entries[0].ID))
	assert.Equal(t, 0, tr.FinanceSummary().SavingsRate())
}

func TestUpdateFinanceEntry(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)
	march, err := ParseDay("2024-03-01")
	require.NoError(t, err)
	e, err := tr.AddFinanceEntry(FinanceInput{Type: FinanceExpense, Amount: 1250, Category: "food", Date: march})
	require.NoError(t, err)
	points := tr.Snapshot().User.TotalPoints

	require.NoError(t, tr.UpdateFinanceEntry(e.ID, FinanceInput{Type: FinanceSaving, Amount: 4000, Description: "rainy day"}))
	got := tr.Snapshot().Finance.Entries[0]
	assert.Equal(t, FinanceSaving, got.Type)
	assert.Equal(t, int64(4000), got.Amount)
	assert.Equal(t, "other", got.Category)
	assert.Equal(t, "rainy day", got.Description)
	assert.True(t, got.Date.Equal(march), "zero date keeps the original")
	assert.Equal(t, points, tr.Snapshot().User.TotalPoints)

	april, err := ParseDay("2024-04-01")
	require.NoError(t, err)
	require.NoError(t, tr.UpdateFinanceEntry(e.ID, FinanceInput{Type: FinanceSaving, Amount: 4000, Date: april}))
	assert.True(t, tr.Snapshot().Finance.Entries[0].Date.Equal(april))

	assert.ErrorIs(t, tr.UpdateFinanceEntry(e.ID, FinanceInput{Type: FinanceSaving}), ErrInvalid)
	assert.ErrorIs(t, tr.UpdateFinanceEntry("missing", FinanceInput{Type: FinanceSaving, Amount: 1}), ErrNotFound)
}

func TestToggleMoneyRule(t *testing.T) {
	tr, _ := newTestTracker(t, "2024-01-07")
	newTestUser(t, tr)

	on, err := tr.ToggleMoneyRule("emergency_fund")
	require.NoError(t, err)
	assert.True(t, on)
	on, err = tr.ToggleMoneyRule("emergency_fund")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, int64(5), tr.Snapshot().User.TotalPoints)

	_, err = tr.ToggleMoneyRule("")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCents(t *testing.T) {
	for in, want := range map[string]int64{"12.34": 1234, "12.3": 1230, "12": 1200, "-1.05": -105, "0.07": 7} {
		got, err := ParseCents(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "abc", "1.234", "1.", "1,50", "99999999999999999999", "-92233720368547758.08"} {
		_, err := ParseCents(in)
		assert.ErrorIs(t, err, ErrInvalid, in)
	}
	got, err := ParseCents("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-8), got)

	assert.Equal(t, "-12.34", FormatCents(-1234))
	assert.Equal(t, "0.05", FormatCents(5))
}

// ============================================================
// Analytics
// ============================================================

func TestAnalytics(t *testing.T) {
	habits := []Habit{
		{Title: "a", TargetDays: TargetDaysFor(FrequencyDaily, nil), History: History{"2024-01-06": true, "2024-01-07": true, "2024-01-03": true, "2024-01-01": true}},
		{Title: "b", TargetDays: TargetDaysFor(FrequencyWeekends, nil), History: History{"2024-01-07": true}},
	}

	counts, err := CompletionsByDay(habits, "2024-01-05", 3)
	require.NoError(t, err)
	assert.Equal(t, []DayCount{{"2024-01-05", 0}, {"2024-01-06", 1}, {"2024-01-07", 2}}, counts)

	assert.InDelta(t, 4.0/7*100, CompletionRate(habits[0], "2024-01-07", 7), 0.001)
	// weekends only: 2024-01-06 and 2024-01-07 are scheduled, one was done
	assert.InDelta(t, 50.0, CompletionRate(habits[1], "2024-01-07", 7), 0.001)
	assert.Equal(t, 0.0, CompletionRate(habits[0], "2024-01-07", 0))
	assert.Equal(t, 2, CompletedToday(habits, "2024-01-07"))

	goals := []Goal{{Status: GoalActive, Progress: 40}, {Status: GoalActive, Progress: 80}, {Status: GoalCompleted, Progress: 100}}
	assert.Equal(t, 60.0, AverageGoalProgress(goals))
	assert.Equal(t, 0.0, AverageGoalProgress(nil))
}
