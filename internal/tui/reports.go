package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

type reportMode int

const (
	reportDaily reportMode = iota
	reportWeekly
)

type reportsModel struct {
	tr     *tracker.Tracker
	store  *store.Store
	width  int
	height int

	mode         reportMode
	offset       int // blocks back from today (0 = current)
	defaultDays  int
	days         int
	weekStart    time.Weekday
	today        string
	habits       []tracker.Habit
	counts       []tracker.DayCount
	achievements []tracker.Achievement

	chart barchart.Model
}

func newReportsModel(tr *tracker.Tracker, s *store.Store, defaultDays int) reportsModel {
	if defaultDays < 1 {
		defaultDays = 7
	}
	return reportsModel{
		tr:          tr,
		store:       s,
		defaultDays: defaultDays,
		days:        defaultDays,
		weekStart:   time.Monday,
		chart:       barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	today        string
	days         int
	weekStart    time.Weekday
	habits       []tracker.Habit
	achievements []tracker.Achievement
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		st := r.tr.Snapshot()
		weekStart := time.Monday
		if v, err := r.store.GetSetting("week_start"); err == nil && v == "sunday" {
			weekStart = time.Sunday
		}
		return reportsDataMsg{
			today:        r.tr.Today(),
			days:         r.store.GetIntSetting("report_days", r.defaultDays),
			weekStart:    weekStart,
			habits:       st.Habits,
			achievements: st.Achievements,
		}
	}
}

// dateRange returns the first day and the number of days in the window.
func (r reportsModel) dateRange() (string, int) {
	today, err := tracker.ParseDay(r.today)
	if err != nil {
		return r.today, 0
	}

	switch r.mode {
	case reportWeekly:
		back := (int(today.Weekday()) - int(r.weekStart) + 7) % 7
		start := today.AddDate(0, 0, -back-7*r.offset)
		return tracker.DayKey(start), 7
	default:
		days := r.days
		if days < 1 {
			days = 7
		}
		end := today.AddDate(0, 0, -days*r.offset)
		return tracker.DayKey(end.AddDate(0, 0, 1-days)), days
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.today = msg.today
		r.days = msg.days
		r.weekStart = msg.weekStart
		r.habits = msg.habits
		r.achievements = msg.achievements
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.buildChart()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			r.buildChart()
		case key.Matches(msg, keys.Toggle):
			if r.mode == reportDaily {
				r.mode = reportWeekly
			} else {
				r.mode = reportDaily
			}
			r.offset = 0
			r.buildChart()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 34 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, days := r.dateRange()
	r.counts, _ = tracker.CompletionsByDay(r.habits, from, days)

	var bars []barchart.BarData
	for _, c := range r.counts {
		d, _ := tracker.ParseDay(c.Day)
		label := d.Format("Mon 02")
		if days > 10 {
			label = d.Format("02")
		}
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if len(r.habits) > 0 && c.Count == len(r.habits) {
			style = lipgloss.NewStyle().Foreground(colorSuccess)
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "completions",
				Value: float64(c.Count),
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	dailyTab := inactiveTabStyle.Render("Daily")
	weeklyTab := inactiveTabStyle.Render("Weekly")
	if r.mode == reportDaily {
		dailyTab = activeTabStyle.Render("Daily")
	} else {
		weeklyTab = activeTabStyle.Render("Weekly")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, dailyTab, weeklyTab)

	from, days := r.dateRange()
	to, _ := tracker.AddDays(from, days-1)
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s", from, to))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	total := 0
	for _, c := range r.counts {
		total += c.Count
	}
	summary := mutedStyle.Render(fmt.Sprintf("  %d completions in %d days", total, days))

	nav := mutedStyle.Render("  ←/→: navigate  space: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), summary, "",
			r.renderRates(w), "",
			r.renderAchievements(), "", nav,
		),
	)
}

func (r reportsModel) renderRates(w int) string {
	if len(r.habits) == 0 {
		return mutedStyle.Render("  No habits to report on")
	}
	var rows []string
	rows = append(rows, titleStyle.Render("Completion rate (30 days)"))
	for _, h := range r.habits {
		rate := tracker.CompletionRate(h, r.today, 30)
		rows = append(rows, fmt.Sprintf("  %-24s %s %3.0f%%",
			truncate(h.Title, 24), progressBar(rate, min(30, max(10, w-40))), rate))
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderAchievements() string {
	unlocked := tracker.UnlockedCount(r.achievements)
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Achievements %d/%d", unlocked, len(r.achievements))))
	for _, a := range r.achievements {
		if a.Unlocked() {
			rows = append(rows, fmt.Sprintf("  %s %s %s  %s",
				a.Icon, levelStyle.Render(a.Name), mutedStyle.Render("+"+formatPoints(a.Points)),
				mutedStyle.Render(a.UnlockedAt.Local().Format("Jan 02"))))
		} else {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  🔒 %s  %s", a.Name, a.Description)))
		}
	}
	return strings.Join(rows, "\n")
}
