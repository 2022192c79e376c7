package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/tracker"
)

var habitFrequencies = []tracker.HabitFrequency{tracker.FrequencyDaily, tracker.FrequencyWeekdays, tracker.FrequencyWeekends}

// historyDays is the width of the per-habit completion strip.
const historyDays = 7

type habitsModel struct {
	tr     *tracker.Tracker
	width  int
	height int

	habits []tracker.Habit
	today  string
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "edit"

	// Form field pointers (survive value copies)
	formTitle     *string
	formIdentity  *string
	formCue       *string
	formReward    *string
	formFrequency *string
	formAfter     *string

	editingID string
}

func newHabitsModel(tr *tracker.Tracker) habitsModel {
	title, identity, cue, reward, freq, after := "", "", "", "", string(tracker.FrequencyDaily), ""
	return habitsModel{
		tr:            tr,
		formTitle:     &title,
		formIdentity:  &identity,
		formCue:       &cue,
		formReward:    &reward,
		formFrequency: &freq,
		formAfter:     &after,
	}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type habitsDataMsg struct {
	habits []tracker.Habit
	today  string
}

func (m habitsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return habitsDataMsg{habits: m.tr.Snapshot().Habits, today: m.tr.Today()}
	}
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		m.today = msg.today
		m.cursor = clampCursor(m.cursor, len(m.habits))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(m.habits) > 0 {
				h, err := m.tr.ToggleHabitCompletion(m.habits[m.cursor].ID, m.today)
				if err != nil {
					return m, errStatus(err)
				}
				if h.History[m.today] {
					return m, changed(fmt.Sprintf("%s done, streak %d", h.Title, h.CurrentStreak))
				}
				return m, changed(h.Title + " unchecked")
			}
		case key.Matches(msg, keys.New):
			return m.showForm(nil)
		case key.Matches(msg, keys.Update):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				return m.showForm(&h)
			}
		case key.Matches(msg, keys.Delete):
			if len(m.habits) > 0 {
				h := m.habits[m.cursor]
				if err := m.tr.DeleteHabit(h.ID); err != nil {
					return m, errStatus(err)
				}
				return m, changed("Deleted " + h.Title)
			}
		}
	}
	return m, nil
}

func (m habitsModel) showForm(h *tracker.Habit) (habitsModel, tea.Cmd) {
	*m.formTitle, *m.formIdentity, *m.formCue, *m.formReward = "", "", "", ""
	*m.formFrequency = string(tracker.FrequencyDaily)
	*m.formAfter = ""
	m.formType = "new"
	m.editingID = ""
	if h != nil {
		*m.formTitle = h.Title
		*m.formIdentity = h.Identity
		*m.formCue = h.Cue
		*m.formReward = h.Reward
		*m.formFrequency = string(h.Frequency)
		if h.AfterHabit != nil {
			*m.formAfter = *h.AfterHabit
		}
		m.formType = "edit"
		m.editingID = h.ID
	}

	freqOptions := make([]huh.Option[string], len(habitFrequencies))
	for i, f := range habitFrequencies {
		freqOptions[i] = huh.NewOption(string(f), string(f))
	}
	if h != nil && h.Frequency == tracker.FrequencyCustom {
		freqOptions = append(freqOptions, huh.NewOption("custom", string(tracker.FrequencyCustom)))
	}
	afterOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, other := range m.habits {
		if h != nil && other.ID == h.ID {
			continue
		}
		afterOptions = append(afterOptions, huh.NewOption(other.Title, other.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit").Value(m.formTitle).Validate(requireText("title")),
			huh.NewInput().Title("Identity (I am someone who…)").Value(m.formIdentity),
			huh.NewSelect[string]().Title("Frequency").Options(freqOptions...).Value(m.formFrequency),
		),
		huh.NewGroup(
			huh.NewInput().Title("Cue").Value(m.formCue),
			huh.NewInput().Title("Reward").Value(m.formReward),
			huh.NewSelect[string]().Title("After habit").Options(afterOptions...).Value(m.formAfter),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		in := m.formInput()
		if m.formType == "edit" {
			if err := m.tr.UpdateHabit(m.editingID, in); err != nil {
				return m, errStatus(err)
			}
			return m, changed("Updated " + in.Title)
		}
		h, err := m.tr.AddHabit(in)
		if err != nil {
			return m, errStatus(err)
		}
		return m, changed("Added habit " + h.Title)
	}
	return m, cmd
}

// formInput builds the habit input from the form, keeping the fields the
// form does not show when editing.
func (m habitsModel) formInput() tracker.HabitInput {
	var in tracker.HabitInput
	for _, h := range m.habits {
		if h.ID == m.editingID {
			in = tracker.HabitInput{
				Description:  h.Description,
				Craving:      h.Craving,
				Response:     h.Response,
				CustomDays:   h.TargetDays,
				ReminderTime: h.ReminderTime,
				Color:        h.Color,
				Icon:         h.Icon,
			}
		}
	}
	in.Title = *m.formTitle
	in.Identity = *m.formIdentity
	in.Cue = *m.formCue
	in.Reward = *m.formReward
	in.Frequency = tracker.HabitFrequency(*m.formFrequency)
	if *m.formAfter != "" {
		after := *m.formAfter
		in.AfterHabit = &after
	}
	return in
}

func requireText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func (m habitsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Habit")
		if m.formType == "edit" {
			title = titleStyle.Render("Edit Habit")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	title := titleStyle.Render("Habits")
	if len(m.habits) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits yet. Press n to create one."),
		))
	}

	var rows []string
	rows = append(rows, title, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-26s %-9s %7s %7s  %s", "Habit", "Freq", "Streak", "Best", "Last 7 days")))

	for i, h := range m.habits {
		cursor, render := cursorPrefix(i == m.cursor)
		line := fmt.Sprintf("%s%s %-26s %-9s %7d %7d  ",
			cursor, checkbox(h.History[m.today]), truncate(h.Title, 26), h.Frequency, h.CurrentStreak, h.LongestStreak)
		rows = append(rows, render(line)+m.historyStrip(h))
	}

	if m.cursor < len(m.habits) {
		if detail := m.renderDetail(m.habits[m.cursor]); detail != "" {
			rows = append(rows, "", detail)
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle today  n: new  u: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

// historyStrip renders the last historyDays days, oldest first.
func (m habitsModel) historyStrip(h tracker.Habit) string {
	var cells []string
	for i := historyDays - 1; i >= 0; i-- {
		day, err := tracker.AddDays(m.today, -i)
		if err != nil {
			return ""
		}
		switch {
		case h.History[day]:
			cells = append(cells, successStyle.Render("■"))
		default:
			cells = append(cells, mutedStyle.Render("·"))
		}
	}
	return strings.Join(cells, " ")
}

func (m habitsModel) renderDetail(h tracker.Habit) string {
	var parts []string
	if h.Identity != "" {
		parts = append(parts, subtitleStyle.Render("I am "+h.Identity))
	}
	if h.Cue != "" {
		parts = append(parts, mutedStyle.Render("cue: ")+h.Cue)
	}
	if h.AfterHabit != nil {
		for _, other := range m.habits {
			if other.ID == *h.AfterHabit {
				parts = append(parts, mutedStyle.Render("after: ")+other.Title)
			}
		}
	}
	rate := tracker.CompletionRate(h, m.today, 30)
	parts = append(parts, mutedStyle.Render(fmt.Sprintf("30-day rate %.0f%%  total %d", rate, h.TotalCompletions)))
	return "  " + strings.Join(parts, "   ")
}
