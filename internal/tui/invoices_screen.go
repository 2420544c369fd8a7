package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/export"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// invoiceStep is the form step: an invoice is always built against a
// project first, because the billable client choice depends on it.
type invoiceStep int

const (
	stepNone invoiceStep = iota
	stepProject
	stepDetails
)

// InvoicesModel displays a navigable list of invoices with a two-step
// create/edit form and text export
type InvoicesModel struct {
	app      *app.App
	invoices []*domain.Invoice
	projects []*domain.Project
	clients  []*domain.Client
	cursor   int

	loading   bool
	err       error
	statusMsg string

	// Form state
	step      invoiceStep
	form      *huh.Form
	editingID domain.ID
	eligible  []*domain.Client
	booked    domain.Amount

	// Form field pointers (survive value copies)
	formProjectID   *string
	formClientID    *string
	formNumber      *string
	formAmount      *string
	formDate        *string
	formDue         *string
	formStatus      *string
	formDescription *string
}

type invoicesDataMsg struct {
	invoices []*domain.Invoice
	projects []*domain.Project
	clients  []*domain.Client
	err      error
}

type eligibleClientsMsg struct {
	eligible []*domain.Client
	revenue  domain.Amount
	err      error
}

type invoiceSavedMsg struct {
	number string
	err    error
}

type invoiceDeletedMsg struct {
	number string
	err    error
}

type invoiceExportedMsg struct {
	path string
	err  error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	pid, cid, number, amount, date, due, status, desc := "", "", "", "", "", "", "", ""
	return &InvoicesModel{
		app:             a,
		loading:         true,
		formProjectID:   &pid,
		formClientID:    &cid,
		formNumber:      &number,
		formAmount:      &amount,
		formDate:        &date,
		formDue:         &due,
		formStatus:      &status,
		formDescription: &desc,
	}
}

// IsCapturingInput returns true when the form is active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.step != stepNone
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		invoices, err := m.app.InvoiceRepo.List(ctx)
		if err != nil {
			return invoicesDataMsg{err: err}
		}
		projects, err := m.app.ProjectRepo.List(ctx)
		if err != nil {
			return invoicesDataMsg{err: err}
		}
		clients, err := m.app.ClientRepo.List(ctx)
		if err != nil {
			return invoicesDataMsg{err: err}
		}

		return invoicesDataMsg{invoices: invoices, projects: projects, clients: clients}
	}
}

// startForm opens step one: the project picker. For edits the current
// values are carried into the field pointers first.
func (m *InvoicesModel) startForm(editing *domain.Invoice) tea.Cmd {
	*m.formProjectID = ""
	*m.formClientID = ""
	*m.formNumber = domain.NewInvoiceNumber()
	*m.formAmount = ""
	*m.formDate = time.Now().Format("2006-01-02")
	*m.formDue = ""
	*m.formStatus = string(domain.InvoiceStatusPending)
	*m.formDescription = ""
	m.editingID = ""

	if editing != nil {
		*m.formProjectID = editing.ProjectID.String()
		*m.formClientID = editing.ClientID.String()
		*m.formNumber = editing.InvoiceNumber
		*m.formAmount = strconv.FormatFloat(float64(editing.Amount), 'f', -1, 64)
		if !editing.Date.IsZero() {
			*m.formDate = editing.Date.Format("2006-01-02")
		}
		if !editing.DueDate.IsZero() {
			*m.formDue = editing.DueDate.Format("2006-01-02")
		}
		*m.formStatus = string(editing.Status)
		*m.formDescription = editing.Description
		m.editingID = editing.ID
	}

	projectOptions := make([]huh.Option[string], len(m.projects))
	for i, p := range m.projects {
		projectOptions[i] = huh.NewOption(p.Title, p.ID.String())
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(projectOptions...).Value(m.formProjectID),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.step = stepProject
	return m.form.Init()
}

// loadEligible resolves the billable roster of the chosen project, plus
// its already-booked revenue for the step-two header.
func (m *InvoicesModel) loadEligible() tea.Cmd {
	projectID := domain.ID(*m.formProjectID)
	return func() tea.Msg {
		ctx := context.Background()

		eligible, err := m.app.RelationService.EligibleClientsFor(ctx, projectID)
		if err != nil {
			return eligibleClientsMsg{err: err}
		}
		revenue, err := m.app.RelationService.ProjectRevenueFor(ctx, projectID)
		if err != nil {
			return eligibleClientsMsg{err: err}
		}

		return eligibleClientsMsg{eligible: eligible, revenue: revenue}
	}
}

// openDetailsForm builds step two. The client options are only the chosen
// project's roster; a client selection carried over from an edit is
// dropped when that client is no longer on the roster.
func (m *InvoicesModel) openDetailsForm() tea.Cmd {
	*m.formClientID = reconciledClientID(*m.formClientID, m.eligible)

	clientOptions := make([]huh.Option[string], len(m.eligible))
	for i, c := range m.eligible {
		clientOptions[i] = huh.NewOption(c.Name, c.ID.String())
	}

	statusOptions := make([]huh.Option[string], len(domain.InvoiceStatuses))
	for i, s := range domain.InvoiceStatuses {
		statusOptions[i] = huh.NewOption(string(s), string(s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Bill to").Options(clientOptions...).Value(m.formClientID),
			huh.NewInput().Title("Invoice number").Value(m.formNumber),
			huh.NewInput().Title("Amount").Value(m.formAmount),
		),
		huh.NewGroup(
			huh.NewInput().Title("Invoice date (YYYY-MM-DD)").Value(m.formDate),
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(m.formDue),
			huh.NewSelect[string]().Title("Status").Options(statusOptions...).Value(m.formStatus),
			huh.NewInput().Title("Description").Value(m.formDescription),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.step = stepDetails
	return m.form.Init()
}

func (m *InvoicesModel) saveInvoice() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		invoice := domain.NewInvoice(domain.ID(*m.formProjectID), domain.ID(*m.formClientID))
		invoice.InvoiceNumber = *m.formNumber
		invoice.Status = domain.InvoiceStatus(*m.formStatus)
		invoice.Description = *m.formDescription

		if *m.formAmount != "" {
			amount, err := strconv.ParseFloat(strings.TrimSpace(*m.formAmount), 64)
			if err != nil {
				return invoiceSavedMsg{err: fmt.Errorf("invalid amount: %s", *m.formAmount)}
			}
			invoice.Amount = domain.Amount(amount)
		}
		if *m.formDate != "" {
			date, err := time.Parse("2006-01-02", strings.TrimSpace(*m.formDate))
			if err != nil {
				return invoiceSavedMsg{err: fmt.Errorf("invalid invoice date: %s", *m.formDate)}
			}
			invoice.Date = date
		}
		if *m.formDue != "" {
			due, err := time.Parse("2006-01-02", strings.TrimSpace(*m.formDue))
			if err != nil {
				return invoiceSavedMsg{err: fmt.Errorf("invalid due date: %s", *m.formDue)}
			}
			invoice.DueDate = due
		}

		if !m.editingID.IsZero() {
			invoice.ID = m.editingID
			// Zero createdAt: the save path restores it from the stored record.
			invoice.CreatedAt = time.Time{}
		}

		if err := m.app.DraftService.SaveInvoice(ctx, invoice); err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{number: invoice.InvoiceNumber}
	}
}

func (m *InvoicesModel) deleteInvoice() tea.Cmd {
	invoice := m.invoices[m.cursor]
	return func() tea.Msg {
		err := m.app.DraftService.DeleteInvoice(context.Background(), invoice.ID)
		return invoiceDeletedMsg{number: invoice.InvoiceNumber, err: err}
	}
}

func (m *InvoicesModel) exportInvoice() tea.Cmd {
	invoice := m.invoices[m.cursor]

	// A missing client record renders as "Unknown" in the document
	clientName := ""
	for _, c := range m.clients {
		if c.ID == invoice.ClientID {
			clientName = c.Name
			break
		}
	}

	dir := m.app.Config.Export.OutputDir
	return func() tea.Msg {
		path, err := export.WriteFile(dir, invoice, clientName)
		return invoiceExportedMsg{path: path, err: err}
	}
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.step != stepNone {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			m.projects = msg.projects
			m.clients = msg.clients
			if m.cursor >= len(m.invoices) {
				m.cursor = max(0, len(m.invoices)-1)
			}
		}
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.number)
		m.loading = true
		return m, m.loadInvoices()

	case invoiceDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.number)
		m.loading = true
		return m, m.loadInvoices()

	case invoiceExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Exported: %s", msg.path)
		return m, nil

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
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			if len(m.projects) == 0 {
				m.err = fmt.Errorf("add a project before creating an invoice")
				return m, nil
			}
			return m, m.startForm(nil)
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.invoices) > 0 && m.cursor < len(m.invoices) {
				return m, m.startForm(m.invoices[m.cursor])
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.invoices) > 0 && m.cursor < len(m.invoices) {
				return m, m.deleteInvoice()
			}
		case key.Matches(msg, DefaultKeyMap.Export):
			if len(m.invoices) > 0 && m.cursor < len(m.invoices) {
				return m, m.exportInvoice()
			}
		}
	}

	return m, nil
}

func (m *InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eligibleClientsMsg:
		if msg.err != nil {
			m.step = stepNone
			m.form = nil
			m.err = msg.err
			return m, nil
		}
		if len(msg.eligible) == 0 {
			m.step = stepNone
			m.form = nil
			m.err = fmt.Errorf("the selected project has no clients to bill")
			return m, nil
		}
		m.eligible = msg.eligible
		m.booked = msg.revenue
		return m, m.openDetailsForm()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			m.step = stepNone
			m.form = nil
			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		switch m.step {
		case stepProject:
			m.form = nil
			return m, m.loadEligible()
		case stepDetails:
			m.step = stepNone
			m.form = nil
			return m, m.saveInvoice()
		}
	}

	return m, cmd
}

func (m *InvoicesModel) View() string {
	if m.step != stepNone {
		return m.viewForm()
	}

	if m.loading {
		return "Loading invoices..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Invoices") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, invoice := range m.invoices {
		s += m.renderInvoice(i, invoice) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete  o: export")

	return s
}

func (m *InvoicesModel) viewForm() string {
	title := titleStyle.Render("New Invoice")
	if !m.editingID.IsZero() {
		title = titleStyle.Render("Edit Invoice")
	}

	if m.form == nil {
		return title + "\n\nLoading project roster..."
	}

	header := ""
	if m.step == stepDetails {
		header = subtitleStyle.Render(fmt.Sprintf("  Project: %s  |  Booked: %s",
			m.projectTitle(domain.ID(*m.formProjectID)), formatMoney(m.booked))) + "\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header, m.form.View())
}

func (m *InvoicesModel) renderInvoice(index int, invoice *domain.Invoice) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	numberStyle := lipgloss.NewStyle()
	if selected {
		numberStyle = numberStyle.Bold(true).Foreground(primaryColor)
	}

	var statusStyle lipgloss.Style
	switch invoice.Status {
	case domain.InvoiceStatusPaid:
		statusStyle = paidStyle
	case domain.InvoiceStatusOverdue:
		statusStyle = overdueStyle
	default:
		statusStyle = pendingStyle
	}

	line1 := numberStyle.Render(fmt.Sprintf("%s%s", indicator, invoice.InvoiceNumber)) +
		"  " + statusStyle.Render(string(invoice.Status))
	line2 := subtitleStyle.Render(fmt.Sprintf("    %s  |  %s  |  %s  due %s",
		truncateStr(m.clientName(invoice.ClientID), 25),
		truncateStr(m.projectTitle(invoice.ProjectID), 25),
		formatMoney(invoice.Amount),
		formatDate(invoice.DueDate),
	))

	return line1 + "\n" + line2
}

func (m *InvoicesModel) clientName(id domain.ID) string {
	for _, c := range m.clients {
		if c.ID == id {
			return c.Name
		}
	}
	return "#" + id.String()
}

func (m *InvoicesModel) projectTitle(id domain.ID) string {
	for _, p := range m.projects {
		if p.ID == id {
			return p.Title
		}
	}
	return "#" + id.String()
}

// reconciledClientID drops a client selection that is not on the roster
func reconciledClientID(current string, eligible []*domain.Client) string {
	for _, c := range eligible {
		if c.ID.String() == current {
			return current
		}
	}
	return ""
}
