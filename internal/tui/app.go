package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/export"
	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

var exportFormats = []string{"Habits CSV", "Finance CSV", "JSON backup"}

// App is the root Bubble Tea model.
type App struct {
	tracker   *tracker.Tracker
	store     *store.Store
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	habits    habitsModel
	tasks     tasksModel
	goals     goalsModel
	reports   reportsModel
	settings  settingsModel

	user   *tracker.Profile
	help   help.Model
	status string
	isErr  bool
}

// NewApp builds the root model. reportDays is the report window used until
// the user saves one in settings.
func NewApp(tr *tracker.Tracker, s *store.Store, exportDir string, reportDays int) App {
	h := help.New()
	h.ShowAll = false

	if exportDir == "" {
		exportDir = "."
	}

	st := tr.Snapshot()
	return App{
		tracker:    tr,
		store:      s,
		exportDir:  exportDir,
		activeView: viewFromKey(st.CurrentView),
		dashboard:  newDashboardModel(tr),
		habits:     newHabitsModel(tr),
		tasks:      newTasksModel(tr, s),
		goals:      newGoalsModel(tr),
		reports:    newReportsModel(tr, s, reportDays),
		settings:   newSettingsModel(tr, s, reportDays),
		user:       st.User,
		help:       h,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(a App) error {
	autoDark = lipgloss.HasDarkBackground()
	applyTheme(a.tracker.Snapshot().Theme)

	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.loadProfile(),
		a.refreshCurrentView(),
	)
}

func (a App) loadProfile() tea.Cmd {
	return func() tea.Msg {
		st := a.tracker.Snapshot()
		return profileMsg{user: st.User, theme: st.Theme}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.goals.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		if a.activeView == viewReports {
			a.reports.buildChart()
		}
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewHabits)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewGoals)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewReports)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case statusMsg:
		a.status = msg.text
		a.isErr = msg.isError
		return a, nil

	case stateChangedMsg:
		a.status = msg.status
		a.isErr = false
		return a, tea.Batch(a.loadProfile(), a.refreshCurrentView())

	case profileMsg:
		if a.user != nil && msg.user != nil && msg.user.Level > a.user.Level {
			a.status = fmt.Sprintf("Level up! You are now level %d, %s", msg.user.Level, tracker.LevelName(msg.user.Level))
			a.isErr = false
		}
		a.user = msg.user
		applyTheme(msg.theme)
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.isErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	a.tracker.SetCurrentView(viewKeys[v])
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	// Data messages go to their owner whatever view is showing.
	case dashboardDataMsg:
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case habitsDataMsg:
		a.habits, cmd = a.habits.update(msg)
		return a, cmd
	case tasksDataMsg:
		a.tasks, cmd = a.tasks.update(msg)
		return a, cmd
	case goalsDataMsg:
		a.goals, cmd = a.goals.update(msg)
		return a, cmd
	case reportsDataMsg:
		a.reports, cmd = a.reports.update(msg)
		return a, cmd
	case settingsDataMsg:
		a.settings, cmd = a.settings.update(msg)
		return a, cmd
	}

	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewGoals:
		a.goals, cmd = a.goals.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewHabits:
		return a.habits.formActive
	case viewTasks:
		return a.tasks.formActive
	case viewGoals:
		return a.goals.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewHabits:
		return a.habits.refresh()
	case viewTasks:
		return a.tasks.refresh()
	case viewGoals:
		return a.goals.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewHabits:
		content = a.habits.view()
	case viewTasks:
		content = a.tasks.view()
	case viewGoals:
		content = a.goals.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("peakr")
	if a.user != nil {
		title += " " + levelStyle.Render(fmt.Sprintf("L%d", a.user.Level)) +
			" " + pointsStyle.Render(formatPoints(a.user.TotalPoints))
	}
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.isErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render("to "+a.exportDir))
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor, render := cursorPrefix(i == a.exportCursor)
		rows = append(rows, render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		st := a.tracker.Snapshot()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		var err error
		switch format {
		case 0:
			path = filepath.Join(a.exportDir, fmt.Sprintf("peakr-habits-%s.csv", dateStr))
			err = export.HabitsCSV(st.Habits, path)
		case 1:
			path = filepath.Join(a.exportDir, fmt.Sprintf("peakr-finance-%s.csv", dateStr))
			err = export.FinanceCSV(st.Finance.Entries, path)
		default:
			path = filepath.Join(a.exportDir, fmt.Sprintf("peakr-backup-%s.json", dateStr))
			err = export.ToJSON(st, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
