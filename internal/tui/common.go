package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/peakr/internal/tracker"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewHabits
	viewTasks
	viewGoals
	viewReports
	viewSettings
)

var viewNames = []string{"Dashboard", "Habits", "Tasks", "Goals", "Reports", "Settings"}

// viewKeys are persisted as the tracker's current view.
var viewKeys = []string{"dashboard", "habits", "tasks", "goals", "reports", "settings"}

func viewFromKey(k string) viewState {
	for i, v := range viewKeys {
		if v == k {
			return viewState(i)
		}
	}
	return viewDashboard
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// stateChangedMsg is sent by a view after it committed a mutation.
type stateChangedMsg struct {
	status string
}

type profileMsg struct {
	user  *tracker.Profile
	theme tracker.Theme
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func changed(status string) tea.Cmd {
	return func() tea.Msg { return stateChangedMsg{status: status} }
}

func errStatus(err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func progressBar(pct float64, width int) string {
	if width < 1 {
		width = 1
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

func checkbox(done bool) string {
	if done {
		return successStyle.Render("✓")
	}
	return mutedStyle.Render("○")
}

func formatPoints(p int64) string {
	return fmt.Sprintf("%d pts", p)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func cursorPrefix(selected bool) (string, func(...string) string) {
	if selected {
		return "> ", selectedItemStyle.Render
	}
	return "  ", normalItemStyle.Render
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
