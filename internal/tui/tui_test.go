package tui

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

const testToday = "2024-03-13" // a Wednesday

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	day, err := tracker.ParseDay(testToday)
	if err != nil {
		t.Fatal(err)
	}
	now := day.Add(9 * time.Hour)
	n := 0
	return tracker.New(
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func newTestUser(t *testing.T, tr *tracker.Tracker) {
	t.Helper()
	if _, err := tr.InitUser("Ada"); err != nil {
		t.Fatal(err)
	}
}

func newTestApp(t *testing.T) (App, *tracker.Tracker, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	tr := newTestTracker(t)
	return NewApp(tr, s, t.TempDir(), 7), tr, s
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace}

// ============================================================
// Helpers
// ============================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct   float64
		width int
	}{
		{0, 10},
		{50, 10},
		{100, 10},
		{150, 10},
		{-5, 4},
	}
	for _, tt := range tests {
		bar := progressBar(tt.pct, tt.width)
		cells := strings.Count(bar, "█") + strings.Count(bar, "░")
		if cells != tt.width {
			t.Errorf("progressBar(%v, %d) has %d cells", tt.pct, tt.width, cells)
		}
	}
	if got := strings.Count(progressBar(50, 10), "█"); got != 5 {
		t.Errorf("half bar filled %d cells, want 5", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 5, "much…"},
		{"日本語テキスト", 3, "日本…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestClampCursor(t *testing.T) {
	if got := clampCursor(5, 3); got != 2 {
		t.Errorf("clampCursor(5, 3) = %d", got)
	}
	if got := clampCursor(2, 0); got != 0 {
		t.Errorf("clampCursor(2, 0) = %d", got)
	}
	if got := clampCursor(1, 3); got != 1 {
		t.Errorf("clampCursor(1, 3) = %d", got)
	}
}

func TestViewFromKey(t *testing.T) {
	for i, k := range viewKeys {
		if viewFromKey(k) != viewState(i) {
			t.Errorf("viewFromKey(%q) = %d", k, viewFromKey(k))
		}
	}
	if viewFromKey("journal") != viewDashboard {
		t.Error("unknown view should fall back to dashboard")
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != len(viewKeys) {
		t.Fatalf("%d names for %d keys", len(viewNames), len(viewKeys))
	}
	if viewNames[viewSettings] != "Settings" {
		t.Errorf("last tab = %q", viewNames[viewSettings])
	}
}

func TestValidators(t *testing.T) {
	if validateDay("") != nil || validateDay("2024-02-29") != nil {
		t.Error("valid dates rejected")
	}
	if validateDay("2024-02-30") == nil || validateDay("tomorrow") == nil {
		t.Error("invalid dates accepted")
	}
	if validateScore("10") != nil || validateScore("") != nil {
		t.Error("valid scores rejected")
	}
	if validateScore("11") == nil || validateScore("-1") == nil || validateScore("x") == nil {
		t.Error("invalid scores accepted")
	}
	if validateFloat("2.5") != nil || validateFloat("-1") == nil {
		t.Error("float validation wrong")
	}
	if validateMinutes("30") != nil || validateMinutes("1.5") == nil {
		t.Error("minutes validation wrong")
	}
	if validateReportDays("14") != nil || validateReportDays("0") == nil || validateReportDays("90") == nil {
		t.Error("report days validation wrong")
	}
	if requireText("title")("  ") == nil || requireText("title")("x") != nil {
		t.Error("requireText wrong")
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"report_days", "14", "14 days"},
		{"show_completed", "true", "yes"},
		{"show_completed", "false", "no"},
		{"week_start", "monday", "monday"},
		{"report_days", "abc", "abc"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.val); got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardWithoutUser(t *testing.T) {
	tr := newTestTracker(t)
	d := newDashboardModel(tr)
	d.setSize(100, 40)
	d, _ = d.update(d.loadData()())

	if d.user != nil {
		t.Fatal("no user expected")
	}
	if !strings.Contains(d.view(), "No profile yet") {
		t.Fatal("dashboard should prompt for a profile")
	}

	d, _ = d.update(runeKey('n'))
	if !d.formActive {
		t.Fatal("n should open the onboarding form")
	}
	if d.formType != "onboard" {
		t.Fatalf("form type = %q", d.formType)
	}

	d, _ = d.update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.formActive {
		t.Fatal("esc should cancel the form")
	}
}

func TestDashboardLoadsToday(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	h, _ := tr.AddHabit(tracker.HabitInput{Title: "Meditate"})
	tr.AddHabit(tracker.HabitInput{Title: "Long run", Frequency: tracker.FrequencyWeekends})
	tr.ToggleHabitCompletion(h.ID, testToday)
	frog, _ := tr.AddTask(tracker.TaskInput{Title: "Ship release", IsFrog: true})
	tr.AddToInbox("call bank")

	d := newDashboardModel(tr)
	d.setSize(100, 40)
	d, _ = d.update(d.loadData()())

	if d.user == nil || d.user.Name != "Ada" {
		t.Fatalf("user = %+v", d.user)
	}
	if len(d.due) != 1 || d.due[0].Title != "Meditate" {
		t.Fatalf("due on a Wednesday = %+v", d.due)
	}
	if d.frog == nil || d.frog.ID != frog.ID {
		t.Fatal("frog not loaded")
	}
	if d.inbox != 1 {
		t.Fatalf("inbox = %d", d.inbox)
	}
	if d.unlocked != 1 {
		t.Fatalf("unlocked = %d, want habit_starter only", d.unlocked)
	}

	out := d.view()
	for _, want := range []string{"Hi, Ada", "Ship release", "Meditate", "Morning Routine"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}
}

func TestDashboardFrogKey(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	tr.AddTask(tracker.TaskInput{Title: "Ship release", IsFrog: true})

	d := newDashboardModel(tr)
	d, _ = d.update(d.loadData()())
	_, cmd := d.update(runeKey('f'))
	if cmd == nil {
		t.Fatal("f should report the change")
	}
	msg, ok := cmd().(stateChangedMsg)
	if !ok || !strings.Contains(msg.status, "Frog eaten") {
		t.Fatalf("msg = %#v", msg)
	}

	st := tr.Snapshot()
	if !st.Tasks[0].Completed {
		t.Fatal("frog should be completed")
	}
	// 30 for the frog plus the first_frog bonus.
	if st.User.TotalPoints != 80 {
		t.Fatalf("points = %d, want 80", st.User.TotalPoints)
	}
}

func TestDashboardSaveLog(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)

	d := newDashboardModel(tr)
	*d.formRoutine = append([]string{}, routineSteps...)
	*d.formDeepWork = "2.5"
	*d.formEnergy = "8"
	*d.formMood = "6"
	if _, cmd := d.saveLog(); cmd == nil {
		t.Fatal("saveLog should report the change")
	}

	l := tr.TodayLog()
	if !l.MorningRoutineDone() {
		t.Fatal("routine should be done")
	}
	if l.DeepWorkHours != 2.5 || l.OverallScore != 7 {
		t.Fatalf("log = %+v", l)
	}
	// 50 for the routine, 2 whole deep-work hours at 20.
	if got := tr.Snapshot().User.TotalPoints; got != 90 {
		t.Fatalf("points = %d, want 90", got)
	}
}

// ============================================================
// Habits
// ============================================================

func TestHabitsToggleToday(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	tr.AddHabit(tracker.HabitInput{Title: "Read"})

	m := newHabitsModel(tr)
	m.setSize(120, 40)
	m, _ = m.update(m.refresh()())
	if len(m.habits) != 1 || m.today != testToday {
		t.Fatalf("habits = %+v today = %q", m.habits, m.today)
	}

	m, cmd := m.update(spaceKey)
	if cmd == nil {
		t.Fatal("toggle should report the change")
	}
	h := tr.Snapshot().Habits[0]
	if !h.History[testToday] || h.CurrentStreak != 1 {
		t.Fatalf("habit after toggle = %+v", h)
	}

	m, _ = m.update(m.refresh()())
	if !strings.Contains(m.view(), "Read") {
		t.Fatal("view should list the habit")
	}

	m.update(spaceKey)
	if tr.Snapshot().Habits[0].History[testToday] {
		t.Fatal("second toggle should uncheck today")
	}
}

func TestHabitsDelete(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	tr.AddHabit(tracker.HabitInput{Title: "Read"})

	m := newHabitsModel(tr)
	m, _ = m.update(m.refresh()())
	m.update(runeKey('d'))
	if n := len(tr.Snapshot().Habits); n != 0 {
		t.Fatalf("%d habits left", n)
	}
}

func TestHabitsFormInputKeepsHiddenFields(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	h, _ := tr.AddHabit(tracker.HabitInput{Title: "Read", Description: "20 pages", Icon: "📚"})

	m := newHabitsModel(tr)
	m, _ = m.update(m.refresh()())
	m, _ = m.showForm(&m.habits[0])
	if !m.formActive || m.formType != "edit" || m.editingID != h.ID {
		t.Fatal("edit form not opened")
	}
	*m.formTitle = "Read more"

	in := m.formInput()
	if in.Title != "Read more" || in.Description != "20 pages" || in.Icon != "📚" {
		t.Fatalf("input = %+v", in)
	}
	if in.AfterHabit != nil {
		t.Fatal("no predecessor expected")
	}
}

func TestHabitsHistoryStrip(t *testing.T) {
	m := habitsModel{today: testToday}
	h := tracker.Habit{History: tracker.History{testToday: true, "2024-03-11": true}}
	strip := m.historyStrip(h)
	if got := strings.Count(strip, "■"); got != 2 {
		t.Fatalf("strip marks %d days, want 2", got)
	}
	if got := strings.Count(strip, "·"); got != historyDays-2 {
		t.Fatalf("strip blanks %d days", got)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestTasksToggleAndFrog(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	s := newTestStore(t)
	tr.AddTask(tracker.TaskInput{Title: "Email", Priority: tracker.PriorityC})
	tr.AddTask(tracker.TaskInput{Title: "Budget", Priority: tracker.PriorityA})

	m := newTasksModel(tr, s)
	m, _ = m.update(m.refresh()())
	if m.tasks[0].Title != "Budget" {
		t.Fatalf("tasks should sort by priority, first = %q", m.tasks[0].Title)
	}

	m.update(runeKey('f'))
	frog, ok := tr.Frog()
	if !ok || frog.Title != "Budget" {
		t.Fatal("f should make the selected task the frog")
	}

	m.update(spaceKey)
	st := tr.Snapshot()
	for _, task := range st.Tasks {
		if task.Title == "Budget" && !task.Completed {
			t.Fatal("space should complete the task")
		}
	}
}

func TestTasksHideCompleted(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	s := newTestStore(t)
	done, _ := tr.AddTask(tracker.TaskInput{Title: "Old"})
	tr.ToggleTaskCompletion(done.ID)
	tr.AddTask(tracker.TaskInput{Title: "New"})

	m := newTasksModel(tr, s)
	m.setSize(120, 40)
	m, _ = m.update(m.refresh()())
	if len(m.tasks) != 2 {
		t.Fatalf("got %d tasks with completed shown", len(m.tasks))
	}

	if err := s.SetSetting("show_completed", "false"); err != nil {
		t.Fatal(err)
	}
	m, _ = m.update(m.refresh()())
	if len(m.tasks) != 1 || m.tasks[0].Title != "New" {
		t.Fatalf("tasks = %+v", m.tasks)
	}
	if !strings.Contains(m.view(), "completed tasks hidden") {
		t.Fatal("view should say completed tasks are hidden")
	}
}

func TestInboxPromoteAndClear(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	s := newTestStore(t)
	tr.AddToInbox("call bank")
	tr.AddToInbox("buy stamps")

	m := newTasksModel(tr, s)
	m, _ = m.update(m.refresh()())
	m, _ = m.update(runeKey('l'))
	if m.mode != modeInbox {
		t.Fatal("right should switch to the inbox")
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEnter})
	st := tr.Snapshot()
	if len(st.Inbox) != 1 || st.Inbox[0] != "buy stamps" {
		t.Fatalf("inbox = %v", st.Inbox)
	}
	if len(st.Tasks) != 1 || st.Tasks[0].Title != "call bank" {
		t.Fatalf("tasks = %+v", st.Tasks)
	}

	m, _ = m.update(m.refresh()())
	m.update(runeKey('c'))
	if n := len(tr.Snapshot().Inbox); n != 0 {
		t.Fatalf("inbox has %d items after clear", n)
	}
}

// ============================================================
// Goals
// ============================================================

func TestGoalsCompleteAndPause(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	tr.AddGoal(tracker.GoalInput{Title: "Run a marathon", TargetValue: 42})
	tr.AddGoal(tracker.GoalInput{Title: "Learn Go", TargetValue: 10})

	m := newGoalsModel(tr)
	m.setSize(140, 40)
	m, _ = m.update(m.refresh()())

	m, _ = m.update(spaceKey)
	if g := tr.Snapshot().Goals[0]; g.Status != tracker.GoalPaused {
		t.Fatalf("status = %q, want paused", g.Status)
	}

	m, _ = m.update(m.refresh()())
	m, _ = m.update(runeKey('j'))
	m.update(runeKey('c'))
	g := tr.Snapshot().Goals[1]
	if g.Status != tracker.GoalCompleted || g.Progress != 100 {
		t.Fatalf("goal = %+v", g)
	}
}

func TestGoalsView(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	g, _ := tr.AddGoal(tracker.GoalInput{Title: "Save", TargetValue: 100, Why: "freedom"})
	tr.SetGoalValue(g.ID, 25)

	m := newGoalsModel(tr)
	m.setSize(140, 40)
	m, _ = m.update(m.refresh()())
	out := m.view()
	for _, want := range []string{"Save", "25%", "why: freedom"} {
		if !strings.Contains(out, want) {
			t.Errorf("goals view missing %q", want)
		}
	}
}

// ============================================================
// Reports
// ============================================================

func TestReportsDateRange(t *testing.T) {
	r := reportsModel{today: testToday, days: 7, weekStart: time.Monday}

	from, days := r.dateRange()
	if from != "2024-03-07" || days != 7 {
		t.Fatalf("daily range = %s +%d", from, days)
	}

	r.offset = 1
	if from, _ := r.dateRange(); from != "2024-02-29" {
		t.Fatalf("previous daily range starts %s", from)
	}

	r.mode = reportWeekly
	r.offset = 0
	if from, days := r.dateRange(); from != "2024-03-11" || days != 7 {
		t.Fatalf("weekly range = %s +%d", from, days)
	}

	r.weekStart = time.Sunday
	if from, _ := r.dateRange(); from != "2024-03-10" {
		t.Fatalf("sunday week starts %s", from)
	}
}

func TestReportsLoadsSettings(t *testing.T) {
	tr := newTestTracker(t)
	newTestUser(t, tr)
	s := newTestStore(t)
	h, _ := tr.AddHabit(tracker.HabitInput{Title: "Read"})
	tr.ToggleHabitCompletion(h.ID, testToday)
	tr.ToggleHabitCompletion(h.ID, "2024-03-12")
	s.SetSetting("report_days", "14")
	s.SetSetting("week_start", "sunday")

	r := newReportsModel(tr, s, 7)
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())

	if r.days != 14 || r.weekStart != time.Sunday {
		t.Fatalf("days = %d week start = %v", r.days, r.weekStart)
	}
	if len(r.counts) != 14 {
		t.Fatalf("%d bars, want 14", len(r.counts))
	}
	total := 0
	for _, c := range r.counts {
		total += c.Count
	}
	if total != 2 {
		t.Fatalf("total completions = %d", total)
	}
	out := r.view()
	if !strings.Contains(out, "Achievements 1/") {
		t.Fatal("achievements section missing")
	}
}

func TestReportsFallBackToConfiguredWindow(t *testing.T) {
	tr := newTestTracker(t)
	s := newTestStore(t)

	r := newReportsModel(tr, s, 10)
	r.setSize(120, 40)
	r, _ = r.update(r.refresh()())
	if r.days != 10 || len(r.counts) != 10 {
		t.Fatalf("days = %d bars = %d, want 10", r.days, len(r.counts))
	}

	s.SetSetting("report_days", "5")
	r, _ = r.update(r.refresh()())
	if r.days != 5 {
		t.Fatalf("saved setting should win, days = %d", r.days)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsShowConfiguredReportWindow(t *testing.T) {
	tr := newTestTracker(t)
	s := newTestStore(t)

	m := newSettingsModel(tr, s, 10)
	m.setSize(100, 30)
	m, _ = m.update(m.refresh()())
	if !strings.Contains(m.view(), "10 days") {
		t.Fatal("view should show the configured report window")
	}
	m, _ = m.showForm()
	if *m.reportDays != "10" {
		t.Fatalf("form report days = %q", *m.reportDays)
	}
}

func TestSettingsSurfaceLoadError(t *testing.T) {
	tr := newTestTracker(t)
	s, err := store.NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	m := newSettingsModel(tr, s, 7)
	m.setSize(120, 30)
	m, cmd := m.update(m.refresh()())
	if cmd == nil {
		t.Fatal("a failed load should report an error")
	}
	if msg, ok := cmd().(statusMsg); !ok || !msg.isError {
		t.Fatalf("msg = %#v", msg)
	}
	out := m.view()
	if strings.Contains(out, "Nothing saved yet") || !strings.Contains(out, "Could not read saved data") {
		t.Fatalf("view = %q", out)
	}
}

func TestSettingsSave(t *testing.T) {
	tr := newTestTracker(t)
	s := newTestStore(t)

	m := newSettingsModel(tr, s, 7)
	m, _ = m.update(m.refresh()())
	if m.theme != tracker.ThemeAuto {
		t.Fatalf("theme = %q", m.theme)
	}

	m, _ = m.showForm()
	if !m.formActive {
		t.Fatal("form should open")
	}
	*m.themeValue = string(tracker.ThemeDark)
	*m.weekStart = "sunday"
	*m.reportDays = "14"
	*m.showCompleted = false
	if err := m.saveSettings(); err != nil {
		t.Fatal(err)
	}

	if tr.Snapshot().Theme != tracker.ThemeDark {
		t.Fatal("theme not saved on the tracker")
	}
	for k, want := range map[string]string{"week_start": "sunday", "report_days": "14", "show_completed": "false"} {
		if got, _ := s.GetSetting(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestSettingsViewShowsSnapshot(t *testing.T) {
	tr := newTestTracker(t)
	s := newTestStore(t)
	newTestUser(t, tr)
	if err := s.SaveState(tr.Snapshot()); err != nil {
		t.Fatal(err)
	}

	m := newSettingsModel(tr, s, 7)
	m.setSize(100, 30)
	m, _ = m.update(m.refresh()())
	if !m.saved {
		t.Fatal("snapshot should be reported as saved")
	}
	if !strings.Contains(m.view(), "schema v1") {
		t.Fatal("view should show the schema version")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.user != nil {
		t.Fatal("fresh install has no user")
	}
}

func TestNewAppRestoresCurrentView(t *testing.T) {
	tr := newTestTracker(t)
	tr.SetCurrentView("goals")
	app := NewApp(tr, newTestStore(t), "", 0)

	if app.activeView != viewGoals {
		t.Fatalf("active view = %d, want goals", app.activeView)
	}
	if app.exportDir != "." {
		t.Fatalf("export dir = %q", app.exportDir)
	}
}

func TestAppSwitchViewPersists(t *testing.T) {
	app, tr, _ := newTestApp(t)

	model, cmd := app.Update(runeKey('3'))
	app = model.(App)
	if app.activeView != viewTasks {
		t.Fatalf("active view = %d", app.activeView)
	}
	if cmd == nil {
		t.Fatal("switching views should refresh")
	}
	if tr.Snapshot().CurrentView != "tasks" {
		t.Fatalf("current view = %q", tr.Snapshot().CurrentView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.(App).activeView != viewGoals {
		t.Fatal("tab should move to the next view")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	app, _, _ := newTestApp(t)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, tr, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	render := func() {
		for v := range viewNames {
			app.activeView = viewState(v)
			if output := app.View(); output == "" {
				t.Fatalf("view %d rendered empty", v)
			}
		}
	}
	render()

	newTestUser(t, tr)
	tr.AddHabit(tracker.HabitInput{Title: "Read"})
	tr.AddTask(tracker.TaskInput{Title: "Email"})
	tr.AddGoal(tracker.GoalInput{Title: "Save", TargetValue: 10})
	render()
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 160
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppHeaderShowsLevel(t *testing.T) {
	app, tr, _ := newTestApp(t)
	app.width = 160
	newTestUser(t, tr)
	tr.AddPoints(1200)

	model, _ := app.Update(app.loadProfile()())
	header := model.(App).renderHeader()
	if !strings.Contains(header, "L2") || !strings.Contains(header, "1200 pts") {
		t.Fatalf("header = %q", header)
	}
}

func TestAppLevelUpStatus(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.user = &tracker.Profile{Name: "Ada", Level: 1}

	model, _ := app.Update(profileMsg{user: &tracker.Profile{Name: "Ada", Level: 2, TotalPoints: 120}})
	app = model.(App)
	if !strings.Contains(app.status, "Level up") {
		t.Fatalf("status = %q", app.status)
	}
	if app.user.Level != 2 {
		t.Fatal("profile not replaced")
	}
}

func TestAppStateChangedRefreshes(t *testing.T) {
	app, _, _ := newTestApp(t)
	model, cmd := app.Update(stateChangedMsg{status: "Added habit Read"})
	if model.(App).status != "Added habit Read" {
		t.Fatal("status not shown")
	}
	if cmd == nil {
		t.Fatal("a change should trigger a refresh")
	}
}

func TestAppRenderFooter(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _, _ := newTestApp(t)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status", isError: true})
	app = model.(App)
	if !app.isErr {
		t.Fatal("error flag not kept")
	}
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(runeKey('e'))
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("e should open the export picker")
	}
	model, _ = app.Update(runeKey('j'))
	app = model.(App)
	if app.exportCursor != 1 {
		t.Fatalf("cursor = %d", app.exportCursor)
	}
	if !strings.Contains(app.View(), "Finance CSV") {
		t.Fatal("picker should list formats")
	}
	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if model.(App).exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppDoExport(t *testing.T) {
	app, tr, _ := newTestApp(t)
	newTestUser(t, tr)
	tr.AddHabit(tracker.HabitInput{Title: "Read"})

	for i := range exportFormats {
		msg := app.doExport(i)()
		done, ok := msg.(exportDoneMsg)
		if !ok {
			t.Fatalf("format %d: got %#v", i, msg)
		}
		if _, err := os.Stat(done.path); err != nil {
			t.Fatalf("format %d: %v", i, err)
		}
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	for _, th := range []tracker.Theme{tracker.ThemeLight, tracker.ThemeDark, tracker.ThemeAuto} {
		applyTheme(th)
		styles := []struct {
			name string
			fn   func() string
		}{
			{"activeTab", func() string { return activeTabStyle.Render("test") }},
			{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
			{"panel", func() string { return panelStyle.Render("test") }},
			{"activePanel", func() string { return activePanelStyle.Render("test") }},
			{"level", func() string { return levelStyle.Render("test") }},
			{"points", func() string { return pointsStyle.Render("test") }},
			{"title", func() string { return titleStyle.Render("test") }},
			{"subtitle", func() string { return subtitleStyle.Render("test") }},
			{"accent", func() string { return accentStyle.Render("test") }},
			{"success", func() string { return successStyle.Render("test") }},
			{"warning", func() string { return warningStyle.Render("test") }},
			{"error", func() string { return errorStyle.Render("test") }},
			{"muted", func() string { return mutedStyle.Render("test") }},
			{"highlight", func() string { return highlightStyle.Render("test") }},
			{"header", func() string { return headerStyle.Render("test") }},
			{"footer", func() string { return footerStyle.Render("test") }},
			{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
			{"normalItem", func() string { return normalItemStyle.Render("test") }},
			{"doneItem", func() string { return doneItemStyle.Render("test") }},
			{"priority", func() string { return priorityStyle(tracker.PriorityA).Render("test") }},
		}

		for _, s := range styles {
			if result := s.fn(); result == "" {
				t.Fatalf("style %q rendered empty under %s", s.name, th)
			}
		}
	}
}
