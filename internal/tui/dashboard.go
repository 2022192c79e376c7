package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/tracker"
)

// routineSteps are the morning routine checkboxes, in display order.
var routineSteps = []string{"silence", "affirmations", "visualization", "exercise", "reading", "scribing"}

type dashboardModel struct {
	tr     *tracker.Tracker
	width  int
	height int

	user          *tracker.Profile
	today         string
	frog          *tracker.Task
	due           []tracker.Habit
	log           tracker.DailyLog
	morningStreak int
	inbox         int
	unlocked      int
	achievements  int
	finance       tracker.FinanceTotals

	formActive bool
	form       *huh.Form
	formType   string // "onboard", "log"

	// Form field pointers (survive value copies)
	formName     *string
	formRoutine  *[]string
	formDeepWork *string
	formEnergy   *string
	formMood     *string
}

func newDashboardModel(tr *tracker.Tracker) dashboardModel {
	name, deep, energy, mood := "", "", "", ""
	routine := []string{}
	return dashboardModel{
		tr:           tr,
		formName:     &name,
		formRoutine:  &routine,
		formDeepWork: &deep,
		formEnergy:   &energy,
		formMood:     &mood,
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	user          *tracker.Profile
	today         string
	frog          *tracker.Task
	due           []tracker.Habit
	log           tracker.DailyLog
	morningStreak int
	inbox         int
	unlocked      int
	achievements  int
	finance       tracker.FinanceTotals
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		st := d.tr.Snapshot()
		today := d.tr.Today()
		msg := dashboardDataMsg{
			user:          st.User,
			today:         today,
			log:           d.tr.TodayLog(),
			morningStreak: d.tr.MorningStreak(),
			inbox:         len(st.Inbox),
			unlocked:      tracker.UnlockedCount(st.Achievements),
			achievements:  len(st.Achievements),
			finance:       d.tr.FinanceSummary(),
		}
		if frog, ok := d.tr.Frog(); ok {
			msg.frog = &frog
		}
		msg.due, _ = d.tr.HabitsDueOn(today)
		return msg
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.user = msg.user
		d.today = msg.today
		d.frog = msg.frog
		d.due = msg.due
		d.log = msg.log
		d.morningStreak = msg.morningStreak
		d.inbox = msg.inbox
		d.unlocked = msg.unlocked
		d.achievements = msg.achievements
		d.finance = msg.finance
		return d, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			if d.user == nil {
				return d.showOnboardForm()
			}
		case key.Matches(msg, keys.Update):
			if d.user != nil {
				return d.showLogForm()
			}
		case key.Matches(msg, keys.Frog):
			if d.frog != nil {
				task, err := d.tr.ToggleTaskCompletion(d.frog.ID)
				if err != nil {
					return d, errStatus(err)
				}
				if task.Completed {
					return d, changed("Frog eaten: " + task.Title)
				}
				return d, changed("Frog reopened")
			}
		}
	}
	return d, nil
}

func (d dashboardModel) showOnboardForm() (dashboardModel, tea.Cmd) {
	*d.formName = ""
	d.formType = "onboard"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What should we call you?").Value(d.formName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) showLogForm() (dashboardModel, tea.Cmd) {
	l := d.log
	done := map[string]bool{
		"silence":       l.SilenceCompleted,
		"affirmations":  l.AffirmationsCompleted,
		"visualization": l.VisualizationCompleted,
		"exercise":      l.ExerciseCompleted,
		"reading":       l.ReadingCompleted,
		"scribing":      l.ScribingCompleted,
	}
	*d.formRoutine = (*d.formRoutine)[:0]
	options := make([]huh.Option[string], len(routineSteps))
	for i, step := range routineSteps {
		options[i] = huh.NewOption(step, step)
		if done[step] {
			*d.formRoutine = append(*d.formRoutine, step)
		}
	}
	*d.formDeepWork = strconv.FormatFloat(l.DeepWorkHours, 'f', -1, 64)
	*d.formEnergy = strconv.Itoa(l.EnergyScore)
	*d.formMood = strconv.Itoa(l.MoodScore)
	d.formType = "log"

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().Title("Morning routine").Options(options...).Value(d.formRoutine),
		),
		huh.NewGroup(
			huh.NewInput().Title("Deep work hours").Value(d.formDeepWork).Validate(validateFloat),
			huh.NewInput().Title("Energy (0-10)").Value(d.formEnergy).Validate(validateScore),
			huh.NewInput().Title("Mood (0-10)").Value(d.formMood).Validate(validateScore),
		),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		switch d.formType {
		case "onboard":
			p, err := d.tr.InitUser(*d.formName)
			if err != nil {
				return d, errStatus(err)
			}
			return d, changed("Welcome, " + p.Name)
		case "log":
			return d.saveLog()
		}
	}
	return d, cmd
}

func (d dashboardModel) saveLog() (dashboardModel, tea.Cmd) {
	done := map[string]bool{}
	for _, step := range *d.formRoutine {
		done[step] = true
	}
	deep, _ := strconv.ParseFloat(strings.TrimSpace(*d.formDeepWork), 64)
	energy, _ := strconv.Atoi(strings.TrimSpace(*d.formEnergy))
	mood, _ := strconv.Atoi(strings.TrimSpace(*d.formMood))

	_, err := d.tr.UpdateTodayLog(func(l *tracker.DailyLog) {
		l.SilenceCompleted = done["silence"]
		l.AffirmationsCompleted = done["affirmations"]
		l.VisualizationCompleted = done["visualization"]
		l.ExerciseCompleted = done["exercise"]
		l.ReadingCompleted = done["reading"]
		l.ScribingCompleted = done["scribing"]
		l.DeepWorkHours = deep
		l.EnergyScore = energy
		l.MoodScore = mood
	})
	if err != nil {
		return d, errStatus(err)
	}
	return d, changed("Daily log saved")
}

func validateFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateScore(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 || v > 10 {
		return fmt.Errorf("enter a whole number from 0 to 10")
	}
	return nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	if d.formActive && d.form != nil {
		title := titleStyle.Render("Today's Log")
		if d.formType == "onboard" {
			title = titleStyle.Render("Welcome to peakr")
		}
		return panelStyle.Width(contentWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", d.form.View()),
		)
	}

	if d.user == nil {
		content := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("No profile yet"),
			"",
			mutedStyle.Render("Press n to create one"),
		)
		return panelStyle.Width(contentWidth).Align(lipgloss.Center).Render(content)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderLevelPanel(contentWidth),
		d.renderFrogPanel(contentWidth),
		d.renderHabitsPanel(contentWidth),
		d.renderRoutinePanel(contentWidth),
	)
}

func (d dashboardModel) renderLevelPanel(w int) string {
	u := d.user
	level := levelStyle.Render(fmt.Sprintf("Level %d · %s", u.Level, tracker.LevelName(u.Level)))
	points := pointsStyle.Render(formatPoints(u.TotalPoints))
	header := fmt.Sprintf("%s  %s", level, points)

	pct := tracker.LevelProgress(u.TotalPoints)
	next := "max level"
	if threshold, ok := tracker.NextLevelThreshold(u.Level); ok {
		next = fmt.Sprintf("%d to next level", threshold-u.TotalPoints)
	}
	bar := fmt.Sprintf("%s %3d%%  %s", progressBar(float64(pct), min(40, w-20)), pct, mutedStyle.Render(next))

	stats := mutedStyle.Render(fmt.Sprintf("Achievements %d/%d   Inbox %d   Net %s",
		d.unlocked, d.achievements, d.inbox, tracker.FormatCents(d.finance.Net())))

	title := titleStyle.Render("Hi, " + u.Name)
	return activePanelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, header, bar, stats),
	)
}

func (d dashboardModel) renderFrogPanel(w int) string {
	title := titleStyle.Render("Eat That Frog")
	if d.frog == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No frog picked. Press f on a task in the Tasks view."),
		))
	}
	line := accentStyle.Render("🐸 " + d.frog.Title)
	if d.frog.Completed {
		line = doneItemStyle.Render("🐸 "+d.frog.Title) + successStyle.Render("  eaten")
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, line, mutedStyle.Render("f: toggle frog"),
	))
}

func (d dashboardModel) renderHabitsPanel(w int) string {
	done := tracker.CompletedToday(d.due, d.today)
	title := titleStyle.Render("Today's Habits")
	header := fmt.Sprintf("%s  %s", title, highlightStyle.Render(fmt.Sprintf("%d/%d", done, len(d.due))))

	if len(d.due) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			header,
			mutedStyle.Render("Nothing scheduled today"),
		))
	}

	var rows []string
	rows = append(rows, header)
	for _, h := range d.due {
		streak := ""
		if h.CurrentStreak > 0 {
			streak = warningStyle.Render(fmt.Sprintf("  🔥 %d", h.CurrentStreak))
		}
		rows = append(rows, fmt.Sprintf("  %s %s%s", checkbox(h.History[d.today]), h.Title, streak))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRoutinePanel(w int) string {
	l := d.log
	marks := []bool{
		l.SilenceCompleted, l.AffirmationsCompleted, l.VisualizationCompleted,
		l.ExerciseCompleted, l.ReadingCompleted, l.ScribingCompleted,
	}
	var steps []string
	for i, step := range routineSteps {
		steps = append(steps, checkbox(marks[i])+" "+step)
	}
	title := titleStyle.Render("Morning Routine")
	streak := mutedStyle.Render(fmt.Sprintf("streak %d", d.morningStreak))
	deep := mutedStyle.Render(fmt.Sprintf("Deep work %.1fh   Score %d/10", l.DeepWorkHours, l.OverallScore))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", title, streak),
		"  "+strings.Join(steps, "  "),
		deep,
		mutedStyle.Render("u: log today"),
	))
}
