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

type goalsModel struct {
	tr     *tracker.Tracker
	width  int
	height int

	goals  []tracker.Goal
	cursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "value"

	// Form field pointers (survive value copies)
	formTitle     *string
	formWhy       *string
	formArea      *string
	formTimeframe *string
	formTarget    *string
	formCurrent   *string

	editingID string
}

func newGoalsModel(tr *tracker.Tracker) goalsModel {
	title, why, area, tf, target, current := "", "", string(tracker.LifeAreaPersonalGrowth), string(tracker.TimeframeYearly), "", ""
	return goalsModel{
		tr:            tr,
		formTitle:     &title,
		formWhy:       &why,
		formArea:      &area,
		formTimeframe: &tf,
		formTarget:    &target,
		formCurrent:   &current,
	}
}

func (m *goalsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type goalsDataMsg struct {
	goals []tracker.Goal
}

func (m goalsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return goalsDataMsg{goals: m.tr.Snapshot().Goals}
	}
}

func (m goalsModel) update(msg tea.Msg) (goalsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case goalsDataMsg:
		m.goals = msg.goals
		m.cursor = clampCursor(m.cursor, len(m.goals))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.showNewForm()
		case key.Matches(msg, keys.Update), key.Matches(msg, keys.Enter):
			if len(m.goals) > 0 {
				return m.showValueForm(m.goals[m.cursor])
			}
		case key.Matches(msg, keys.Complete):
			if len(m.goals) > 0 {
				g := m.goals[m.cursor]
				if err := m.tr.CompleteGoal(g.ID); err != nil {
					return m, errStatus(err)
				}
				return m, changed("Goal completed: " + g.Title)
			}
		case key.Matches(msg, keys.Toggle):
			// Pause and resume active goals.
			if len(m.goals) > 0 {
				g := m.goals[m.cursor]
				next := tracker.GoalPaused
				if g.Status == tracker.GoalPaused {
					next = tracker.GoalActive
				}
				if g.Status == tracker.GoalCompleted || g.Status == tracker.GoalCancelled {
					return m, nil
				}
				if err := m.tr.SetGoalStatus(g.ID, next); err != nil {
					return m, errStatus(err)
				}
				return m, changed(fmt.Sprintf("%s is %s", g.Title, next))
			}
		case key.Matches(msg, keys.Delete):
			if len(m.goals) > 0 {
				g := m.goals[m.cursor]
				if err := m.tr.DeleteGoal(g.ID); err != nil {
					return m, errStatus(err)
				}
				return m, changed("Deleted " + g.Title)
			}
		}
	}
	return m, nil
}

func (m goalsModel) showNewForm() (goalsModel, tea.Cmd) {
	*m.formTitle, *m.formWhy, *m.formTarget, *m.formCurrent = "", "", "", ""
	*m.formArea = string(tracker.LifeAreaPersonalGrowth)
	*m.formTimeframe = string(tracker.TimeframeYearly)
	m.formType = "new"

	areaOptions := make([]huh.Option[string], len(tracker.LifeAreas))
	for i, a := range tracker.LifeAreas {
		areaOptions[i] = huh.NewOption(strings.ReplaceAll(string(a), "_", " "), string(a))
	}
	tfOptions := make([]huh.Option[string], len(tracker.Timeframes))
	for i, tf := range tracker.Timeframes {
		tfOptions[i] = huh.NewOption(strings.ReplaceAll(string(tf), "_", " "), string(tf))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Goal").Value(m.formTitle).Validate(requireText("title")),
			huh.NewInput().Title("Why does it matter?").Value(m.formWhy),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Life area").Options(areaOptions...).Value(m.formArea),
			huh.NewSelect[string]().Title("Timeframe").Options(tfOptions...).Value(m.formTimeframe),
			huh.NewInput().Title("Target value").Value(m.formTarget).Validate(validateFloat),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) showValueForm(g tracker.Goal) (goalsModel, tea.Cmd) {
	*m.formCurrent = strconv.FormatFloat(g.CurrentValue, 'f', -1, 64)
	m.formType = "value"
	m.editingID = g.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Current value (target %s)", strconv.FormatFloat(g.TargetValue, 'f', -1, 64))).
				Value(m.formCurrent).
				Validate(validateFloat),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m goalsModel) updateForm(msg tea.Msg) (goalsModel, tea.Cmd) {
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
		switch m.formType {
		case "value":
			v, _ := strconv.ParseFloat(strings.TrimSpace(*m.formCurrent), 64)
			g, err := m.tr.SetGoalValue(m.editingID, v)
			if err != nil {
				return m, errStatus(err)
			}
			return m, changed(fmt.Sprintf("%s at %.0f%%", g.Title, g.Progress))
		default:
			target, _ := strconv.ParseFloat(strings.TrimSpace(*m.formTarget), 64)
			g, err := m.tr.AddGoal(tracker.GoalInput{
				Title:       *m.formTitle,
				Why:         *m.formWhy,
				LifeArea:    tracker.LifeArea(*m.formArea),
				Timeframe:   tracker.GoalTimeframe(*m.formTimeframe),
				TargetValue: target,
			})
			if err != nil {
				return m, errStatus(err)
			}
			return m, changed("Added goal " + g.Title)
		}
	}
	return m, cmd
}

func (m goalsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Goal")
		if m.formType == "value" {
			title = titleStyle.Render("Update Progress")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	avg := tracker.AverageGoalProgress(m.goals)
	title := titleStyle.Render("Goals") + "  " + mutedStyle.Render(fmt.Sprintf("avg %.0f%% across active goals", avg))

	if len(m.goals) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No goals yet. Press n to set one."),
		))
	}

	barWidth := min(30, max(10, w-70))
	var rows []string
	rows = append(rows, title, "")
	for i, g := range m.goals {
		cursor, render := cursorPrefix(i == m.cursor)
		status := ""
		switch g.Status {
		case tracker.GoalCompleted:
			status = successStyle.Render(" ✓ done")
		case tracker.GoalPaused:
			status = warningStyle.Render(" paused")
		case tracker.GoalCancelled:
			status = mutedStyle.Render(" cancelled")
		}
		line := fmt.Sprintf("%s%-30s %-16s %-10s ", cursor, truncate(g.Title, 30),
			truncate(strings.ReplaceAll(string(g.LifeArea), "_", " "), 16), g.Timeframe)
		rows = append(rows, render(line)+progressBar(g.Progress, barWidth)+fmt.Sprintf(" %3.0f%%", g.Progress)+status)
	}

	if m.cursor < len(m.goals) {
		if why := m.goals[m.cursor].Why; why != "" {
			rows = append(rows, "", subtitleStyle.Render("  why: "+why))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  u: update value  c: complete  space: pause/resume  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
