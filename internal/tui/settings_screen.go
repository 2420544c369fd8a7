package tui

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/andy/clientdesk/internal/app"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldServerURL = iota
	settingsFieldTimeout
	settingsFieldExportDir
	settingsFieldLogLevel
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	// Backend URL
	m.fields[settingsFieldServerURL] = textinput.New()
	m.fields[settingsFieldServerURL].Placeholder = "http://localhost:5000"
	m.fields[settingsFieldServerURL].CharLimit = 256
	m.fields[settingsFieldServerURL].Width = 60
	m.fields[settingsFieldServerURL].SetValue(cfg.Server.URL)

	// Request timeout
	m.fields[settingsFieldTimeout] = textinput.New()
	m.fields[settingsFieldTimeout].Placeholder = "10"
	m.fields[settingsFieldTimeout].CharLimit = 5
	m.fields[settingsFieldTimeout].Width = 10
	m.fields[settingsFieldTimeout].SetValue(strconv.Itoa(cfg.Server.TimeoutSeconds))

	// Export directory
	m.fields[settingsFieldExportDir] = textinput.New()
	m.fields[settingsFieldExportDir].Placeholder = "/path/to/invoices"
	m.fields[settingsFieldExportDir].CharLimit = 256
	m.fields[settingsFieldExportDir].Width = 60
	m.fields[settingsFieldExportDir].SetValue(cfg.Export.OutputDir)

	// Log level
	m.fields[settingsFieldLogLevel] = textinput.New()
	m.fields[settingsFieldLogLevel].Placeholder = "info"
	m.fields[settingsFieldLogLevel].CharLimit = 10
	m.fields[settingsFieldLogLevel].Width = 10
	m.fields[settingsFieldLogLevel].SetValue(cfg.Log.Level)

	m.fieldFocus = settingsFieldServerURL
	m.fields[settingsFieldServerURL].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		serverURL := m.fields[settingsFieldServerURL].Value()
		timeoutStr := m.fields[settingsFieldTimeout].Value()
		exportDir := m.fields[settingsFieldExportDir].Value()
		logLevel := m.fields[settingsFieldLogLevel].Value()

		if _, err := url.ParseRequestURI(serverURL); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("backend URL must be a valid URL")}
		}
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil || timeout <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("timeout must be a positive number of seconds")}
		}
		if exportDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("export directory is required")}
		}

		m.app.Config.Server.URL = serverURL
		m.app.Config.Server.TimeoutSeconds = timeout
		m.app.Config.Export.OutputDir = exportDir
		m.app.Config.Log.Level = logLevel

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch {
		case msg.String() == "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved. Restart to apply the backend URL."
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Backend URL:"), valueStyle.Render(cfg.Server.URL))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Timeout (s):"), valueStyle.Render(strconv.Itoa(cfg.Server.TimeoutSeconds)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Export Directory:"), valueStyle.Render(cfg.Export.OutputDir))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Log Level:"), valueStyle.Render(cfg.Log.Level))

	s += "\n" + helpStyle.Render("  enter: edit settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Backend URL:", "Timeout (s):", "Export Directory:", "Log Level:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
