package tui

import (
	"context"
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/andy/clientdesk/internal/app"
	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	summary *service.DashboardSummary
	chart   barchart.Model

	loading bool
	err     error
}

type dashboardDataMsg struct {
	summary *service.DashboardSummary
	err     error
}

var statusBarColors = map[domain.ProjectStatus]lipgloss.Color{
	domain.ProjectStatusNotStarted: mutedColor,
	domain.ProjectStatusInProgress: primaryColor,
	domain.ProjectStatusCompleted:  successColor,
	domain.ProjectStatusOnHold:     warningColor,
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		chart:   barchart.New(40, 8),
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.app.ReportService.Dashboard(context.Background())
		return dashboardDataMsg{summary: summary, err: err}
	}
}

func (m *DashboardModel) rebuildChart() {
	m.chart = barchart.New(40, 8)

	var bars []barchart.BarData
	for _, status := range domain.ProjectStatuses {
		share := m.summary.ProjectsByStatus[status]
		style := lipgloss.NewStyle().Foreground(statusBarColors[status])
		bars = append(bars, barchart.BarData{
			Label: status.Label(),
			Values: []barchart.BarValue{
				{Name: status.Label(), Value: float64(share.Count), Style: style},
			},
		})
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.summary = msg.summary
			m.rebuildChart()
		}
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.summary

	var out string

	// Record counts
	out += fmt.Sprintf("  Clients: %d   Projects: %d   Invoices: %d\n\n",
		s.ClientCount, s.ProjectCount, s.InvoiceCount)

	// Revenue split
	out += titleStyle.Render("  Revenue") + "\n"
	out += fmt.Sprintf("  Total:    %s\n", formatMoney(s.TotalRevenue))
	out += fmt.Sprintf("  %s  %s (%.0f%%)\n",
		paidStyle.Render("Paid:   "), formatMoney(s.PaidRevenue), s.PaidPercent)
	out += fmt.Sprintf("  %s  %s (%.0f%%)\n",
		pendingStyle.Render("Pending:"), formatMoney(s.PendingRevenue), s.PendingPercent)

	// Project status chart
	out += "\n" + titleStyle.Render("  Projects by Status") + "\n"
	out += m.chart.View() + "\n"
	for _, status := range domain.ProjectStatuses {
		share := s.ProjectsByStatus[status]
		out += subtitleStyle.Render(fmt.Sprintf("  %-12s %3d (%.0f%%)", status.Label(), share.Count, share.Percent)) + "\n"
	}

	// Recent records
	out += "\n" + m.renderRecent()

	return out
}

func (m *DashboardModel) renderRecent() string {
	s := m.summary
	out := titleStyle.Render("  Recent") + "\n"

	if len(s.RecentClients) == 0 && len(s.RecentProjects) == 0 && len(s.RecentInvoices) == 0 {
		return out + subtitleStyle.Render("  Nothing yet") + "\n"
	}

	for _, c := range s.RecentClients {
		out += fmt.Sprintf("  client   %-25s %s\n", truncateStr(c.Name, 25), subtitleStyle.Render(c.Email))
	}
	for _, p := range s.RecentProjects {
		out += fmt.Sprintf("  project  %-25s %s\n", truncateStr(p.Title, 25), subtitleStyle.Render(p.Status.Label()))
	}
	for _, inv := range s.RecentInvoices {
		out += fmt.Sprintf("  invoice  %-25s %s\n", inv.InvoiceNumber, subtitleStyle.Render(formatMoney(inv.Amount)))
	}

	return out
}
