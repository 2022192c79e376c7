package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/tracker"
)

// Color palette. Each color carries a light and a dark variant; which one is
// rendered follows the tracker theme (see applyTheme).
var (
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A4FE0", Dark: "#6C63FF"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#1E9A8F", Dark: "#2EC4B6"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#D94848", Dark: "#FF6B6B"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#666666"}
	colorSuccess   = lipgloss.AdaptiveColor{Light: "#1F9D55", Dark: "#2ECC71"}
	colorWarning   = lipgloss.AdaptiveColor{Light: "#C27C0E", Dark: "#F39C12"}
	colorError     = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#E74C3C"}
	colorGold      = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#F6C453"}
	colorFg        = lipgloss.AdaptiveColor{Light: "#24283B", Dark: "#C0CAF5"}
	colorSubtle    = lipgloss.AdaptiveColor{Light: "#C8CCE0", Dark: "#414868"}
	colorHighlight = lipgloss.AdaptiveColor{Light: "#3D6FD9", Dark: "#7AA2F7"}
)

// autoDark is the terminal's own background, detected once at startup.
var autoDark = true

// applyTheme points every adaptive color at the palette for th.
func applyTheme(th tracker.Theme) {
	switch th {
	case tracker.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case tracker.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	default:
		lipgloss.SetHasDarkBackground(autoDark)
	}
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Level banner
	levelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGold)

	pointsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	doneItemStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)
)

// priorityStyle colors a task or goal priority, A loudest.
func priorityStyle(p tracker.Priority) lipgloss.Style {
	switch p {
	case tracker.PriorityA:
		return errorStyle.Bold(true)
	case tracker.PriorityB:
		return warningStyle
	case tracker.PriorityC:
		return highlightStyle
	default:
		return mutedStyle
	}
}
