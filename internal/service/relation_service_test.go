package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/andy/clientdesk/internal/domain"
)

func testClients() []*domain.Client {
	return []*domain.Client{
		{ID: "1", Name: "Ada"},
		{ID: "2", Name: "Grace"},
		{ID: "3", Name: "Edsger"},
	}
}

func TestEligibleClients(t *testing.T) {
	project := &domain.Project{ID: "7", ClientIDs: []domain.ID{"1", "3"}}

	eligible := EligibleClients(project, testClients())
	if len(eligible) != 2 {
		t.Fatalf("got %d eligible clients, want 2", len(eligible))
	}
	// Input order is preserved.
	if eligible[0].ID != "1" || eligible[1].ID != "3" {
		t.Fatalf("eligible = [%s %s], want [1 3]", eligible[0].ID, eligible[1].ID)
	}
}

func TestEligibleClients_NilProject(t *testing.T) {
	eligible := EligibleClients(nil, testClients())
	if len(eligible) != 0 {
		t.Fatalf("nil project should have no eligible clients, got %d", len(eligible))
	}
}

func TestEligibleClients_LegacyShape(t *testing.T) {
	// A stored legacy record with singular clientId goes through the
	// decode boundary and behaves like a one-element roster.
	var project domain.Project
	if err := json.Unmarshal([]byte(`{"id":"7","clientId":"2","title":"X","amount":10}`), &project); err != nil {
		t.Fatal(err)
	}

	eligible := EligibleClients(&project, testClients())
	if len(eligible) != 1 || eligible[0].ID != "2" {
		t.Fatalf("legacy project eligible = %v, want just client 2", eligible)
	}
}

func TestProjectRevenue(t *testing.T) {
	invoices := []*domain.Invoice{
		{ID: "1", ProjectID: "7", Amount: 100},
		{ID: "2", ProjectID: "8", Amount: 999},
		{ID: "3", ProjectID: "7", Amount: 250.5},
		{ID: "4", ProjectID: "7", Amount: 0}, // malformed amount coerced at decode
	}

	if got := ProjectRevenue("7", invoices); got != 350.5 {
		t.Errorf("revenue = %v, want 350.5", got)
	}
	if got := ProjectRevenue("99", invoices); got != 0 {
		t.Errorf("revenue for unknown project = %v, want 0", got)
	}
	if got := ProjectRevenue("7", nil); got != 0 {
		t.Errorf("revenue over empty set = %v, want 0", got)
	}
}

func TestReconcileClientSelection(t *testing.T) {
	eligible := []*domain.Client{{ID: "1"}, {ID: "2"}}

	if got := ReconcileClientSelection("2", eligible); got != "2" {
		t.Errorf("still-eligible selection changed to %q", got)
	}
	// Switching from a project with {1,2} to one with {3} clears the pick.
	if got := ReconcileClientSelection("1", []*domain.Client{{ID: "3"}}); got != "" {
		t.Errorf("stale selection = %q, want cleared", got)
	}
	if got := ReconcileClientSelection("", eligible); got != "" {
		t.Errorf("empty selection = %q, want empty", got)
	}
}

func TestEligibleClientsFor_MissingProject(t *testing.T) {
	svc := NewRelationService(
		&mockClientRepo{clients: testClients()},
		&mockProjectRepo{},
		&mockInvoiceRepo{},
	)

	eligible, err := svc.EligibleClientsFor(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(eligible) != 0 {
		t.Fatalf("missing project should yield no clients, got %d", len(eligible))
	}
}

func TestProjectRevenueFor(t *testing.T) {
	svc := NewRelationService(
		&mockClientRepo{},
		&mockProjectRepo{},
		&mockInvoiceRepo{invoices: []*domain.Invoice{
			{ID: "1", ProjectID: "7", Amount: 40},
			{ID: "2", ProjectID: "7", Amount: 60},
		}},
	)

	revenue, err := svc.ProjectRevenueFor(context.Background(), "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revenue != 100 {
		t.Fatalf("revenue = %v, want 100", revenue)
	}
}

func TestClientBlockers(t *testing.T) {
	svc := NewRelationService(
		&mockClientRepo{},
		&mockProjectRepo{projects: []*domain.Project{
			{ID: "7", ClientIDs: []domain.ID{"1", "2"}},
			{ID: "8", ClientIDs: []domain.ID{"3"}},
		}},
		&mockInvoiceRepo{invoices: []*domain.Invoice{
			{ID: "a", ProjectID: "7", ClientID: "1"},
			{ID: "b", ProjectID: "8", ClientID: "3"},
		}},
	)

	ctx := context.Background()

	blockers, err := svc.ClientBlockers(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(blockers.Projects) != 1 || len(blockers.Invoices) != 1 {
		t.Fatalf("blockers = %d projects, %d invoices; want 1 and 1",
			len(blockers.Projects), len(blockers.Invoices))
	}

	free, err := svc.ClientBlockers(ctx, "99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !free.Empty() {
		t.Fatal("unreferenced client should have no blockers")
	}
}
