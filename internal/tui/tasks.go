package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

type tasksMode int

const (
	modeTasks tasksMode = iota
	modeInbox
)

type tasksModel struct {
	tr     *tracker.Tracker
	store  *store.Store
	width  int
	height int

	mode          tasksMode
	tasks         []tracker.Task
	projects      map[string]string
	inbox         []string
	showCompleted bool
	cursor        int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formPriority *string
	formContext  *string
	formDue      *string
	formEstimate *string
	formFrog     *bool
}

func newTasksModel(tr *tracker.Tracker, s *store.Store) tasksModel {
	title, prio, ctx, due, est := "", string(tracker.PriorityC), "", "", ""
	frog := false
	return tasksModel{
		tr:           tr,
		store:        s,
		formTitle:    &title,
		formPriority: &prio,
		formContext:  &ctx,
		formDue:      &due,
		formEstimate: &est,
		formFrog:     &frog,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type tasksDataMsg struct {
	tasks         []tracker.Task
	projects      map[string]string
	inbox         []string
	showCompleted bool
}

func (m tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st := m.tr.Snapshot()
		show := true
		if v, err := m.store.GetSetting("show_completed"); err == nil {
			show, _ = strconv.ParseBool(v)
		}
		tasks := make([]tracker.Task, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			if t.Completed && !show {
				continue
			}
			tasks = append(tasks, t)
		}
		tracker.SortTasks(tasks)
		projects := make(map[string]string, len(st.Projects))
		for _, p := range st.Projects {
			projects[p.ID] = p.Title
		}
		return tasksDataMsg{tasks: tasks, projects: projects, inbox: st.Inbox, showCompleted: show}
	}
}

func (m tasksModel) itemCount() int {
	if m.mode == modeInbox {
		return len(m.inbox)
	}
	return len(m.tasks)
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		m.tasks = msg.tasks
		m.projects = msg.projects
		m.inbox = msg.inbox
		m.showCompleted = msg.showCompleted
		m.cursor = clampCursor(m.cursor, m.itemCount())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left), key.Matches(msg, keys.Right):
			if m.mode == modeTasks {
				m.mode = modeInbox
			} else {
				m.mode = modeTasks
			}
			m.cursor = 0
			return m, nil
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, keys.Down):
			if m.cursor < m.itemCount()-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, keys.New):
			return m.showForm()
		}
		if m.mode == modeInbox {
			return m.updateInbox(msg)
		}
		return m.updateTasks(msg)
	}
	return m, nil
}

func (m tasksModel) updateTasks(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if len(m.tasks) == 0 {
		return m, nil
	}
	task := m.tasks[m.cursor]
	switch {
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		t, err := m.tr.ToggleTaskCompletion(task.ID)
		if err != nil {
			return m, errStatus(err)
		}
		if t.Completed {
			return m, changed("Completed " + t.Title)
		}
		return m, changed("Reopened " + t.Title)
	case key.Matches(msg, keys.Frog):
		if err := m.tr.SetFrogOfDay(task.ID); err != nil {
			return m, errStatus(err)
		}
		return m, changed("Frog of the day: " + task.Title)
	case key.Matches(msg, keys.Delete):
		if err := m.tr.DeleteTask(task.ID); err != nil {
			return m, errStatus(err)
		}
		return m, changed("Deleted " + task.Title)
	}
	return m, nil
}

func (m tasksModel) updateInbox(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Delete):
		if len(m.inbox) > 0 {
			if err := m.tr.RemoveFromInbox(m.cursor); err != nil {
				return m, errStatus(err)
			}
			return m, changed("Removed from inbox")
		}
	case key.Matches(msg, keys.Enter):
		// Promote the captured item to a task.
		if len(m.inbox) > 0 {
			item := m.inbox[m.cursor]
			if _, err := m.tr.AddTask(tracker.TaskInput{Title: item}); err != nil {
				return m, errStatus(err)
			}
			if err := m.tr.RemoveFromInbox(m.cursor); err != nil {
				return m, errStatus(err)
			}
			return m, changed("Moved to tasks: " + item)
		}
	case key.Matches(msg, keys.Complete):
		m.tr.ClearInbox()
		return m, changed("Inbox cleared")
	}
	return m, nil
}

func (m tasksModel) showForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formPriority = string(tracker.PriorityC)
	*m.formContext = ""
	*m.formDue = ""
	*m.formEstimate = ""
	*m.formFrog = false

	if m.mode == modeInbox {
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().Title("Capture").Value(m.formTitle).Validate(requireText("item")),
			),
		).WithShowHelp(true).WithShowErrors(true)
		m.formActive = true
		return m, m.form.Init()
	}

	prioOptions := make([]huh.Option[string], len(tracker.Priorities))
	for i, p := range tracker.Priorities {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTitle).Validate(requireText("title")),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(m.formPriority),
			huh.NewInput().Title("Context (@home, @office…)").Value(m.formContext),
		),
		huh.NewGroup(
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDue).Validate(validateDay),
			huh.NewInput().Title("Estimate (minutes)").Value(m.formEstimate).Validate(validateMinutes),
			huh.NewConfirm().Title("Eat this frog first?").Value(m.formFrog),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		if m.mode == modeInbox {
			if err := m.tr.AddToInbox(*m.formTitle); err != nil {
				return m, errStatus(err)
			}
			return m, changed("Captured")
		}
		in := tracker.TaskInput{
			Title:    *m.formTitle,
			Priority: tracker.Priority(*m.formPriority),
			Context:  strings.TrimSpace(*m.formContext),
			IsFrog:   *m.formFrog,
		}
		if due := strings.TrimSpace(*m.formDue); due != "" {
			in.DueDate = &due
		}
		in.EstimatedTime, _ = strconv.Atoi(strings.TrimSpace(*m.formEstimate))
		t, err := m.tr.AddTask(in)
		if err != nil {
			return m, errStatus(err)
		}
		return m, changed("Added task " + t.Title)
	}
	return m, cmd
}

func validateDay(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := tracker.ParseDay(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("enter whole minutes")
	}
	return nil
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.mode == modeInbox {
			title = titleStyle.Render("Capture to Inbox")
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	tasksTab := inactiveTabStyle.Render("Tasks")
	inboxTab := inactiveTabStyle.Render(fmt.Sprintf("Inbox (%d)", len(m.inbox)))
	if m.mode == modeTasks {
		tasksTab = activeTabStyle.Render("Tasks")
	} else {
		inboxTab = activeTabStyle.Render(fmt.Sprintf("Inbox (%d)", len(m.inbox)))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tasksTab, inboxTab)

	var body string
	if m.mode == modeInbox {
		body = m.renderInbox()
	} else {
		body = m.renderTasks()
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func (m tasksModel) renderTasks() string {
	if len(m.tasks) == 0 {
		return mutedStyle.Render("No tasks. Press n to add one.")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("    %-3s %-32s %-12s %-10s %s", "Pri", "Task", "Context", "Due", "Project")))
	for i, t := range m.tasks {
		cursor, render := cursorPrefix(i == m.cursor)
		title := truncate(t.Title, 32)
		if t.IsFrog {
			title = truncate("🐸 "+t.Title, 32)
		}
		due := ""
		if t.DueDate != nil {
			due = *t.DueDate
		}
		project := ""
		if t.ProjectID != nil {
			project = m.projects[*t.ProjectID]
		}
		line := fmt.Sprintf("%-32s %-12s %-10s %s", title, truncate(t.Context, 12), due, project)
		if t.Completed {
			line = doneItemStyle.Render(line)
		} else {
			line = render(line)
		}
		rows = append(rows, render(cursor)+checkbox(t.Completed)+" "+priorityStyle(t.Priority).Render(fmt.Sprintf("%-3s", t.Priority))+" "+line)
	}
	if !m.showCompleted {
		rows = append(rows, "", mutedStyle.Render("  completed tasks hidden"))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  f: frog  n: new  d: delete  ←/→: inbox"))
	return strings.Join(rows, "\n")
}

func (m tasksModel) renderInbox() string {
	if len(m.inbox) == 0 {
		return mutedStyle.Render("Inbox zero. Press n to capture something.")
	}
	var rows []string
	for i, item := range m.inbox {
		cursor, render := cursorPrefix(i == m.cursor)
		rows = append(rows, render(cursor+item))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: capture  enter: make task  d: remove  c: clear  ←/→: tasks"))
	return strings.Join(rows, "\n")
}
