package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	fieldName = iota
	fieldCompany
	fieldEmail
	fieldPhone
	fieldAddress
	fieldNotes
	fieldCount
)

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app     *app.App
	clients []*domain.Client
	cursor  int

	loading   bool
	err       error
	statusMsg string

	// Form state
	mode       clientMode
	fields     []textinput.Model
	fieldFocus int
	editingID  domain.ID
}

type clientsDataMsg struct {
	clients []*domain.Client
	err     error
}

type clientSavedMsg struct {
	name string
	err  error
}

type clientDeletedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		clients, err := m.app.ClientRepo.List(context.Background())
		return clientsDataMsg{clients: clients, err: err}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldName] = textinput.New()
	m.fields[fieldName].Placeholder = "Client name"
	m.fields[fieldName].CharLimit = 100
	m.fields[fieldName].Width = 40

	m.fields[fieldCompany] = textinput.New()
	m.fields[fieldCompany].Placeholder = "Company"
	m.fields[fieldCompany].CharLimit = 100
	m.fields[fieldCompany].Width = 40

	m.fields[fieldEmail] = textinput.New()
	m.fields[fieldEmail].Placeholder = "email@example.com"
	m.fields[fieldEmail].CharLimit = 100
	m.fields[fieldEmail].Width = 40

	m.fields[fieldPhone] = textinput.New()
	m.fields[fieldPhone].Placeholder = "(555) 123-4567"
	m.fields[fieldPhone].CharLimit = 20
	m.fields[fieldPhone].Width = 20

	m.fields[fieldAddress] = textinput.New()
	m.fields[fieldAddress].Placeholder = "Address"
	m.fields[fieldAddress].CharLimit = 200
	m.fields[fieldAddress].Width = 50

	m.fields[fieldNotes] = textinput.New()
	m.fields[fieldNotes].Placeholder = "Optional notes"
	m.fields[fieldNotes].CharLimit = 200
	m.fields[fieldNotes].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[fieldName].SetValue(editing.Name)
		m.fields[fieldCompany].SetValue(editing.Company)
		m.fields[fieldEmail].SetValue(editing.Email)
		m.fields[fieldPhone].SetValue(editing.Phone)
		m.fields[fieldAddress].SetValue(editing.Address)
		m.fields[fieldNotes].SetValue(editing.Notes)
		m.editingID = editing.ID
	} else {
		m.editingID = ""
	}

	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		client := domain.NewClient(m.fields[fieldName].Value(), m.fields[fieldEmail].Value())
		client.Company = m.fields[fieldCompany].Value()
		client.Phone = m.fields[fieldPhone].Value()
		client.Address = m.fields[fieldAddress].Value()
		client.Notes = m.fields[fieldNotes].Value()

		if !m.editingID.IsZero() {
			client.ID = m.editingID
			// Zero createdAt: the save path restores it from the stored record.
			client.CreatedAt = time.Time{}
		}

		if err := m.app.DraftService.SaveClient(ctx, client); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.Name}
	}
}

func (m *ClientsModel) deleteClient() tea.Cmd {
	client := m.clients[m.cursor]
	return func() tea.Msg {
		err := m.app.DraftService.DeleteClient(context.Background(), client.ID)
		return clientDeletedMsg{name: client.Name, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		return m, nil

	case clientDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[fieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, m.fields[fieldName].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				return m, m.deleteClient()
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save; otherwise advance
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		s += titleStyle.Render("New Client") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"Name:", "Company:", "Email:", "Phone:", "Address:", "Notes:"}
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

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += titleStyle.Render("Clients") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	contact := client.Email
	if client.Phone != "" {
		contact += "  " + client.Phone
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	line1 := nameStyle.Render(fmt.Sprintf("%s%s", indicator, client.Name))
	if client.Company != "" {
		line1 += subtitleStyle.Render("  (" + client.Company + ")")
	}
	line2 := subtitleStyle.Render(fmt.Sprintf("    %s", contact))

	result := line1 + "\n" + line2
	if client.Notes != "" {
		result += "\n" + subtitleStyle.Render("    "+truncateStr(client.Notes, 50))
	}

	return result
}
