package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ProjectsModel displays a navigable list of projects with create/edit forms
type ProjectsModel struct {
	app      *app.App
	projects []*domain.Project
	clients  []*domain.Client
	cursor   int

	loading   bool
	err       error
	statusMsg string

	// Form state
	formActive bool
	form       *huh.Form
	editingID  domain.ID

	// Form field pointers (survive value copies)
	formTitle       *string
	formClientIDs   *[]string
	formDescription *string
	formStatus      *string
	formAmount      *string
	formStart       *string
	formEnd         *string
}

type projectsDataMsg struct {
	projects []*domain.Project
	clients  []*domain.Client
	err      error
}

type projectSavedMsg struct {
	title string
	err   error
}

type projectDeletedMsg struct {
	title string
	err   error
}

// NewProjectsModel creates a new projects screen model
func NewProjectsModel(a *app.App) tea.Model {
	title, desc, status, amount, start, end := "", "", "", "", "", ""
	clientIDs := []string{}
	return &ProjectsModel{
		app:             a,
		loading:         true,
		formTitle:       &title,
		formClientIDs:   &clientIDs,
		formDescription: &desc,
		formStatus:      &status,
		formAmount:      &amount,
		formStart:       &start,
		formEnd:         &end,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ProjectsModel) IsCapturingInput() bool {
	return m.formActive
}

func (m *ProjectsModel) Init() tea.Cmd {
	return m.loadProjects()
}

func (m *ProjectsModel) loadProjects() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		projects, err := m.app.ProjectRepo.List(ctx)
		if err != nil {
			return projectsDataMsg{err: err}
		}
		clients, err := m.app.ClientRepo.List(ctx)
		if err != nil {
			return projectsDataMsg{err: err}
		}

		return projectsDataMsg{projects: projects, clients: clients}
	}
}

func (m *ProjectsModel) initForm(editing *domain.Project) tea.Cmd {
	*m.formTitle = ""
	*m.formClientIDs = []string{}
	*m.formDescription = ""
	*m.formStatus = string(domain.ProjectStatusNotStarted)
	*m.formAmount = ""
	*m.formStart = ""
	*m.formEnd = ""
	m.editingID = ""

	if editing != nil {
		*m.formTitle = editing.Title
		ids := make([]string, len(editing.ClientIDs))
		for i, id := range editing.ClientIDs {
			ids[i] = id.String()
		}
		*m.formClientIDs = ids
		*m.formDescription = editing.Description
		*m.formStatus = string(editing.Status)
		*m.formAmount = strconv.FormatFloat(float64(editing.Amount), 'f', -1, 64)
		if !editing.StartDate.IsZero() {
			*m.formStart = editing.StartDate.Format("2006-01-02")
		}
		if !editing.EndDate.IsZero() {
			*m.formEnd = editing.EndDate.Format("2006-01-02")
		}
		m.editingID = editing.ID
	}

	clientOptions := make([]huh.Option[string], len(m.clients))
	for i, c := range m.clients {
		label := c.Name
		if c.Company != "" {
			label += " (" + c.Company + ")"
		}
		clientOptions[i] = huh.NewOption(label, c.ID.String())
	}

	statusOptions := make([]huh.Option[string], len(domain.ProjectStatuses))
	for i, s := range domain.ProjectStatuses {
		statusOptions[i] = huh.NewOption(s.Label(), string(s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(m.formTitle),
			huh.NewMultiSelect[string]().Title("Clients").Options(clientOptions...).Value(m.formClientIDs),
			huh.NewInput().Title("Amount").Value(m.formAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Start date (YYYY-MM-DD)").Value(m.formStart),
			huh.NewInput().Title("End date (YYYY-MM-DD)").Value(m.formEnd),
			huh.NewInput().Title("Description").Value(m.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m.form.Init()
}

func (m *ProjectsModel) saveProject() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clientIDs := make([]domain.ID, 0, len(*m.formClientIDs))
		for _, s := range *m.formClientIDs {
			clientIDs = append(clientIDs, domain.ID(s))
		}

		project := domain.NewProject(*m.formTitle, clientIDs)
		project.Description = *m.formDescription
		project.Status = domain.ProjectStatus(*m.formStatus)

		if *m.formAmount != "" {
			amount, err := strconv.ParseFloat(strings.TrimSpace(*m.formAmount), 64)
			if err != nil {
				return projectSavedMsg{err: fmt.Errorf("invalid amount: %s", *m.formAmount)}
			}
			project.Amount = domain.Amount(amount)
		}
		if *m.formStart != "" {
			start, err := time.Parse("2006-01-02", strings.TrimSpace(*m.formStart))
			if err != nil {
				return projectSavedMsg{err: fmt.Errorf("invalid start date: %s", *m.formStart)}
			}
			project.StartDate = start
		}
		if *m.formEnd != "" {
			end, err := time.Parse("2006-01-02", strings.TrimSpace(*m.formEnd))
			if err != nil {
				return projectSavedMsg{err: fmt.Errorf("invalid end date: %s", *m.formEnd)}
			}
			project.EndDate = end
		}

		if !m.editingID.IsZero() {
			project.ID = m.editingID
			project.CreatedAt = time.Time{}
		}

		if err := m.app.DraftService.SaveProject(ctx, project); err != nil {
			return projectSavedMsg{err: err}
		}
		return projectSavedMsg{title: project.Title}
	}
}

func (m *ProjectsModel) deleteProject() tea.Cmd {
	project := m.projects[m.cursor]
	return func() tea.Msg {
		err := m.app.DraftService.DeleteProject(context.Background(), project.ID)
		return projectDeletedMsg{title: project.Title, err: err}
	}
}

func (m *ProjectsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadProjects()

	case projectsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.projects = msg.projects
			m.clients = msg.clients
			if m.cursor >= len(m.projects) {
				m.cursor = max(0, len(m.projects)-1)
			}
		}
		return m, nil

	case projectSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.title)
		m.loading = true
		return m, m.loadProjects()

	case projectDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.title)
		m.loading = true
		return m, m.loadProjects()

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
			if m.cursor < len(m.projects)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			if len(m.clients) == 0 {
				m.err = fmt.Errorf("add a client before creating a project")
				return m, nil
			}
			return m, m.initForm(nil)
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.projects) > 0 && m.cursor < len(m.projects) {
				return m, m.initForm(m.projects[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.projects) > 0 && m.cursor < len(m.projects) {
				return m, m.deleteProject()
			}
		}
	}

	return m, nil
}

func (m *ProjectsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
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
		m.form = nil
		return m, m.saveProject()
	}

	return m, cmd
}

func (m *ProjectsModel) View() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Project")
		if !m.editingID.IsZero() {
			title = titleStyle.Render("Edit Project")
		}
		return lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
	}

	if m.loading {
		return "Loading projects..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Projects") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.projects) == 0 {
		s += subtitleStyle.Render("  No projects yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, project := range m.projects {
		s += m.renderProject(i, project) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete")

	return s
}

func (m *ProjectsModel) renderProject(index int, project *domain.Project) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	titleLine := lipgloss.NewStyle()
	if selected {
		titleLine = titleLine.Bold(true).Foreground(primaryColor)
	}

	roster := make([]string, 0, len(project.ClientIDs))
	for _, cid := range project.ClientIDs {
		name := "#" + cid.String()
		for _, c := range m.clients {
			if c.ID == cid {
				name = c.Name
				break
			}
		}
		roster = append(roster, name)
	}

	line1 := titleLine.Render(fmt.Sprintf("%s%s", indicator, project.Title))
	line2 := subtitleStyle.Render(fmt.Sprintf("    %s  |  %s  |  %s",
		project.Status.Label(),
		formatMoney(project.Amount),
		truncateStr(strings.Join(roster, ", "), 40),
	))

	return line1 + "\n" + line2
}
