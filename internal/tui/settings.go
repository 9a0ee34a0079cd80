package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"spendcal/internal/colorscale"
	"spendcal/internal/money"
	"spendcal/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	currency    *string
	scheme      *string
	customHex   *string
	weekNumbers *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	cur, scheme, hex := "", "", ""
	wk := false
	return settingsModel{
		store:       s,
		currency:    &cur,
		scheme:      &scheme,
		customHex:   &hex,
		weekNumbers: &wk,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
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
	snap := s.store.Snapshot()
	*s.currency = snap.CurrencyCode
	*s.scheme = snap.ColorScheme
	*s.customHex = snap.CustomColorHex
	*s.weekNumbers = snap.ShowWeekNumbers

	schemeOptions := make([]huh.Option[string], 0, len(colorscale.Schemes)+1)
	for _, sc := range colorscale.Schemes {
		schemeOptions = append(schemeOptions, huh.NewOption(sc.Name, sc.Name))
	}
	schemeOptions = append(schemeOptions, huh.NewOption("custom", "custom"))

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default currency (ISO code)").Value(s.currency),
			huh.NewSelect[string]().Title("Calendar color scheme").Options(schemeOptions...).Value(s.scheme),
			huh.NewInput().Title("Custom color (hex)").Value(s.customHex),
			huh.NewConfirm().Title("Show ISO week numbers").Value(s.weekNumbers),
		),
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
		s.saveSettings()
		return s, tea.Batch(s.refresh(), func() tea.Msg { return settingsSavedMsg{} })
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	code := strings.ToUpper(strings.TrimSpace(*s.currency))
	if code == "" {
		code = money.DefaultCode
	}
	s.store.SetSetting("default_currency", code)
	s.store.SetSetting("calendar_color_scheme", *s.scheme)
	s.store.SetSetting("custom_calendar_color", strings.TrimSpace(*s.customHex))
	wk := "0"
	if *s.weekNumbers {
		wk = "1"
	}
	s.store.SetSetting("show_week_numbers", wk)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(setting.Value)
		if setting.Key == "custom_calendar_color" {
			swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(setting.Value)).Render("●")
			value += " " + swatch
		}
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
