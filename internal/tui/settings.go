package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/peakr/internal/store"
	"github.com/sadopc/peakr/internal/tracker"
)

type settingsModel struct {
	tr     *tracker.Tracker
	store  *store.Store
	width  int
	height int

	theme             tracker.Theme
	defaultReportDays int
	settings          []store.Setting
	snapshot          store.SnapshotInfo
	saved             bool
	loadErr           error
	formActive        bool
	form              *huh.Form

	// Form values as pointers (survive value copies)
	themeValue    *string
	weekStart     *string
	reportDays    *string
	showCompleted *bool
}

func newSettingsModel(tr *tracker.Tracker, s *store.Store, defaultReportDays int) settingsModel {
	th, ws, rd := "", "", ""
	sc := true
	if defaultReportDays < 1 {
		defaultReportDays = 7
	}
	return settingsModel{
		tr:                tr,
		store:             s,
		defaultReportDays: defaultReportDays,
		themeValue:        &th,
		weekStart:         &ws,
		reportDays:        &rd,
		showCompleted:     &sc,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	theme    tracker.Theme
	settings []store.Setting
	snapshot store.SnapshotInfo
	saved    bool
	err      error
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		msg := settingsDataMsg{theme: s.tr.Snapshot().Theme}
		settings, err := s.store.GetAllSettings()
		if err != nil {
			msg.err = err
			return msg
		}
		msg.settings = withDefault(settings, "report_days", strconv.Itoa(s.defaultReportDays))
		msg.snapshot, msg.saved, msg.err = s.store.SnapshotInfo()
		return msg
	}
}

// withDefault adds key with value when the user never saved it.
func withDefault(settings []store.Setting, key, value string) []store.Setting {
	for _, st := range settings {
		if st.Key == key {
			return settings
		}
	}
	settings = append(settings, store.Setting{Key: key, Value: value})
	sort.Slice(settings, func(i, j int) bool { return settings[i].Key < settings[j].Key })
	return settings
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.theme = msg.theme
		s.settings = msg.settings
		s.snapshot = msg.snapshot
		s.saved = msg.saved
		s.loadErr = msg.err
		if msg.err != nil {
			return s, errStatus(msg.err)
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.themeValue = string(s.theme)
	if *s.themeValue == "" {
		*s.themeValue = string(tracker.ThemeAuto)
	}
	*s.weekStart = s.getVal("week_start", "monday")
	*s.reportDays = s.getVal("report_days", strconv.Itoa(s.defaultReportDays))
	*s.showCompleted = s.getVal("show_completed", "true") == "true"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Theme").
				Options(
					huh.NewOption("Auto", string(tracker.ThemeAuto)),
					huh.NewOption("Dark", string(tracker.ThemeDark)),
					huh.NewOption("Light", string(tracker.ThemeLight)),
				).Value(s.themeValue),
		).Title("Appearance"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewInput().Title("Report window (days)").Value(s.reportDays).Validate(validateReportDays),
			huh.NewConfirm().Title("Show completed tasks?").Value(s.showCompleted),
		).Title("General"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, errStatus(err)
		}
		return s, tea.Batch(s.refresh(), changed("Settings saved"))
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	if err := s.tr.SetTheme(tracker.Theme(*s.themeValue)); err != nil {
		return err
	}
	if err := s.store.SetSetting("week_start", *s.weekStart); err != nil {
		return err
	}
	if err := s.store.SetSetting("report_days", strings.TrimSpace(*s.reportDays)); err != nil {
		return err
	}
	return s.store.SetSetting("show_completed", strconv.FormatBool(*s.showCompleted))
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil {
		return fallback
	}
	return v
}

func validateReportDays(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 31 {
		return fmt.Errorf("enter 1 to 31 days")
	}
	return nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	label := lipgloss.NewStyle().Width(24)
	rows = append(rows, fmt.Sprintf("  %s %s", label.Render("theme"), highlightStyle.Render(string(s.theme))))
	for _, setting := range s.settings {
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label.Render(setting.Key), value))
	}

	rows = append(rows, "")
	switch {
	case s.loadErr != nil:
		rows = append(rows, errorStyle.Render(fmt.Sprintf("  Could not read saved data: %v", s.loadErr)))
	case s.saved:
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  Saved %s · schema v%d · %d bytes",
			s.snapshot.UpdatedAt.Local().Format("Jan 02 15:04"), s.snapshot.SchemaVersion, s.snapshot.Size)))
	default:
		rows = append(rows, mutedStyle.Render("  Nothing saved yet"))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	switch k {
	case "report_days":
		if n, err := strconv.Atoi(v); err == nil {
			return fmt.Sprintf("%d days", n)
		}
	case "show_completed":
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "yes"
			}
			return "no"
		}
	}
	return v
}
