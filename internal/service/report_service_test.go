package service

import (
	"context"
	"testing"
	"time"

	"github.com/andy/clientdesk/internal/domain"
)

func TestDashboard_RevenueSplit(t *testing.T) {
	svc := NewReportService(
		&mockClientRepo{},
		&mockProjectRepo{},
		&mockInvoiceRepo{invoices: []*domain.Invoice{
			{ID: "1", Amount: 600, Status: domain.InvoiceStatusPaid},
			{ID: "2", Amount: 300, Status: domain.InvoiceStatusPending},
			{ID: "3", Amount: 100, Status: domain.InvoiceStatusCancelled},
		}},
	)

	summary, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if summary.TotalRevenue != 1000 {
		t.Errorf("total = %v, want 1000", summary.TotalRevenue)
	}
	if summary.PaidRevenue != 600 {
		t.Errorf("paid = %v, want 600", summary.PaidRevenue)
	}
	if summary.PendingRevenue != 300 {
		t.Errorf("pending = %v, want 300", summary.PendingRevenue)
	}
	if summary.PaidPercent != 60 {
		t.Errorf("paid%% = %v, want 60", summary.PaidPercent)
	}
}

func TestDashboard_ZeroInvoicesNoNaN(t *testing.T) {
	svc := NewReportService(&mockClientRepo{}, &mockProjectRepo{}, &mockInvoiceRepo{})

	summary, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	// The percentage must be exactly 0, not NaN.
	if summary.PaidPercent != 0 {
		t.Errorf("paid%% with no invoices = %v, want 0", summary.PaidPercent)
	}
	if summary.PendingPercent != 0 {
		t.Errorf("pending%% with no invoices = %v, want 0", summary.PendingPercent)
	}
}

func TestStatusBreakdown(t *testing.T) {
	projects := []*domain.Project{
		{ID: "1", Status: domain.ProjectStatusInProgress},
		{ID: "2", Status: domain.ProjectStatusInProgress},
		{ID: "3", Status: domain.ProjectStatusCompleted},
		{ID: "4", Status: domain.ProjectStatusOnHold},
	}

	breakdown := StatusBreakdown(projects)

	if got := breakdown[domain.ProjectStatusInProgress]; got.Count != 2 || got.Percent != 50 {
		t.Errorf("in-progress = %+v, want {2 50}", got)
	}
	if got := breakdown[domain.ProjectStatusNotStarted]; got.Count != 0 || got.Percent != 0 {
		t.Errorf("not-started = %+v, want {0 0}", got)
	}
	// Every bucket in the fixed set is present even with zero members.
	if len(breakdown) != len(domain.ProjectStatuses) {
		t.Errorf("breakdown has %d buckets, want %d", len(breakdown), len(domain.ProjectStatuses))
	}
}

func TestStatusBreakdown_ZeroProjects(t *testing.T) {
	breakdown := StatusBreakdown(nil)
	for status, share := range breakdown {
		if share.Percent != 0 {
			t.Errorf("%s percent = %v with zero projects, want 0", status, share.Percent)
		}
	}
}

func TestDashboard_RecentSortedByCreatedAt(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewReportService(
		&mockClientRepo{clients: []*domain.Client{
			{ID: "old", CreatedAt: base},
			{ID: "newest", CreatedAt: base.AddDate(0, 3, 0)},
			{ID: "mid", CreatedAt: base.AddDate(0, 1, 0)},
			{ID: "newer", CreatedAt: base.AddDate(0, 2, 0)},
		}},
		&mockProjectRepo{},
		&mockInvoiceRepo{},
	)

	summary, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(summary.RecentClients) != 3 {
		t.Fatalf("recent clients = %d, want 3", len(summary.RecentClients))
	}
	want := []domain.ID{"newest", "newer", "mid"}
	for i, id := range want {
		if summary.RecentClients[i].ID != id {
			t.Errorf("recent[%d] = %s, want %s", i, summary.RecentClients[i].ID, id)
		}
	}
}

func TestPercentOf(t *testing.T) {
	if got := PercentOf(25, 100); got != 25 {
		t.Errorf("PercentOf(25,100) = %v", got)
	}
	if got := PercentOf(0, 0); got != 0 {
		t.Errorf("PercentOf(0,0) = %v, want 0", got)
	}
}
