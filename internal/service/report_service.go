package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
)

// recentCount is how many records each "recent" list shows.
const recentCount = 3

// StatusShare is one bucket of the project status breakdown
type StatusShare struct {
	Count   int
	Percent float64
}

// DashboardSummary is a single snapshot of everything the dashboard shows
type DashboardSummary struct {
	ClientCount  int
	ProjectCount int
	InvoiceCount int

	TotalRevenue   domain.Amount
	PaidRevenue    domain.Amount
	PendingRevenue domain.Amount
	PaidPercent    float64
	PendingPercent float64

	ProjectsByStatus map[domain.ProjectStatus]StatusShare

	RecentClients  []*domain.Client
	RecentProjects []*domain.Project
	RecentInvoices []*domain.Invoice
}

// ReportService computes dashboard statistics from full entity snapshots
type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardSummary, error)
}

type reportService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
) ReportService {
	return &reportService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *reportService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	summary := &DashboardSummary{
		ClientCount:      len(clients),
		ProjectCount:     len(projects),
		InvoiceCount:     len(invoices),
		ProjectsByStatus: StatusBreakdown(projects),
	}

	for _, inv := range invoices {
		summary.TotalRevenue += inv.Amount
		switch inv.Status {
		case domain.InvoiceStatusPaid:
			summary.PaidRevenue += inv.Amount
		case domain.InvoiceStatusPending:
			summary.PendingRevenue += inv.Amount
		}
	}
	summary.PaidPercent = PercentOf(float64(summary.PaidRevenue), float64(summary.TotalRevenue))
	summary.PendingPercent = PercentOf(float64(summary.PendingRevenue), float64(summary.TotalRevenue))

	summary.RecentClients = newestFirst(clients, func(c *domain.Client) time.Time { return c.CreatedAt })
	summary.RecentProjects = newestFirst(projects, func(p *domain.Project) time.Time { return p.CreatedAt })
	summary.RecentInvoices = newestFirst(invoices, func(i *domain.Invoice) time.Time { return i.CreatedAt })

	return summary, nil
}

// PercentOf returns part/total as a percentage, with a zero total yielding
// 0 rather than NaN.
func PercentOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// StatusBreakdown counts projects per status over the fixed status set.
// With zero projects every bucket reports 0%.
func StatusBreakdown(projects []*domain.Project) map[domain.ProjectStatus]StatusShare {
	total := len(projects)
	denominator := total
	if denominator == 0 {
		denominator = 1
	}

	breakdown := make(map[domain.ProjectStatus]StatusShare, len(domain.ProjectStatuses))
	for _, status := range domain.ProjectStatuses {
		count := 0
		for _, p := range projects {
			if p.Status == status {
				count++
			}
		}
		breakdown[status] = StatusShare{
			Count:   count,
			Percent: float64(count) / float64(denominator) * 100,
		}
	}
	return breakdown
}

// newestFirst returns the most recently created records, sorted by
// createdAt descending. The sort is explicit and stable so the result
// doesn't depend on the backend's response order (ties keep it).
func newestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return createdAt(sorted[i]).After(createdAt(sorted[j]))
	})
	if len(sorted) > recentCount {
		sorted = sorted[:recentCount]
	}
	return sorted
}
