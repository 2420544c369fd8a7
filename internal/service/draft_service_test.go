package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/clientdesk/internal/domain"
)

func newDraftFixture() (DraftService, *mockClientRepo, *mockProjectRepo, *mockInvoiceRepo) {
	clients := &mockClientRepo{}
	projects := &mockProjectRepo{}
	invoices := &mockInvoiceRepo{}
	relations := NewRelationService(clients, projects, invoices)
	return NewDraftService(clients, projects, invoices, relations), clients, projects, invoices
}

func TestSaveClient_NormalizesBeforeCreate(t *testing.T) {
	svc, clients, _, _ := newDraftFixture()

	draft := &domain.Client{Name: " Ada ", Email: " A@B.COM ", Phone: "(555) 123-4567"}
	if err := svc.SaveClient(context.Background(), draft); err != nil {
		t.Fatalf("SaveClient: %v", err)
	}

	if clients.created == nil {
		t.Fatal("create never reached the repository")
	}
	if clients.created.Email != "a@b.com" {
		t.Errorf("persisted email = %q, want a@b.com", clients.created.Email)
	}
	if clients.created.Phone != "5551234567" {
		t.Errorf("persisted phone = %q, want 5551234567", clients.created.Phone)
	}
	if clients.created.CreatedAt.IsZero() {
		t.Error("createdAt was not stamped on create")
	}
}

func TestSaveClient_InvalidNeverWrites(t *testing.T) {
	svc, clients, _, _ := newDraftFixture()

	err := svc.SaveClient(context.Background(), &domain.Client{Name: "Ada", Email: "bad-email"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if clients.created != nil || clients.updated != nil {
		t.Fatal("invalid draft must not be written")
	}
}

func TestSaveClient_EditPreservesCreatedAt(t *testing.T) {
	svc, clients, _, _ := newDraftFixture()

	origin := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	clients.clients = []*domain.Client{{ID: "5", Name: "Ada", Email: "ada@example.com", CreatedAt: origin}}

	// Draft arrives without a createdAt, as forms often lose it.
	draft := &domain.Client{ID: "5", Name: "Ada L.", Email: "ada@example.com"}
	if err := svc.SaveClient(context.Background(), draft); err != nil {
		t.Fatalf("SaveClient: %v", err)
	}

	if clients.updated == nil {
		t.Fatal("update never reached the repository")
	}
	if !clients.updated.CreatedAt.Equal(origin) {
		t.Errorf("createdAt = %v, want original %v", clients.updated.CreatedAt, origin)
	}
}

func TestSaveProject_Valid(t *testing.T) {
	svc, _, projects, _ := newDraftFixture()

	draft := &domain.Project{
		ClientIDs: []domain.ID{"1"},
		Title:     "  Site redesign  ",
		Amount:    2500,
	}
	if err := svc.SaveProject(context.Background(), draft); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	if projects.created == nil {
		t.Fatal("create never reached the repository")
	}
	if projects.created.Title != "Site redesign" {
		t.Errorf("title = %q", projects.created.Title)
	}
	if projects.created.Status != domain.ProjectStatusNotStarted {
		t.Errorf("status defaulted to %q", projects.created.Status)
	}
}

func TestSaveInvoice_StaleClientRejectedAtSubmit(t *testing.T) {
	svc, _, projects, invoices := newDraftFixture()

	// Client 1 belongs to project X but not to project Y. The draft was
	// assembled against X, then the project field was switched to Y.
	projects.projects = []*domain.Project{
		{ID: "X", ClientIDs: []domain.ID{"1", "2"}, Title: "X", Amount: 100},
		{ID: "Y", ClientIDs: []domain.ID{"3"}, Title: "Y", Amount: 100},
	}

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	draft := &domain.Invoice{
		InvoiceNumber: "INV-2024-001",
		ProjectID:     "Y",
		ClientID:      "1",
		Amount:        500,
		Date:          date,
		DueDate:       date,
	}

	err := svc.SaveInvoice(context.Background(), draft)
	if err == nil {
		t.Fatal("expected roster violation at submit time")
	}
	if invoices.created != nil {
		t.Fatal("rejected draft must not be written")
	}
}

func TestSaveInvoice_ProjectGone(t *testing.T) {
	svc, _, _, _ := newDraftFixture()

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	draft := &domain.Invoice{
		InvoiceNumber: "INV-2024-001",
		ProjectID:     "deleted-meanwhile",
		ClientID:      "1",
		Amount:        500,
		Date:          date,
		DueDate:       date,
	}

	err := svc.SaveInvoice(context.Background(), draft)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestSaveInvoice_Valid(t *testing.T) {
	svc, _, projects, invoices := newDraftFixture()

	projects.projects = []*domain.Project{
		{ID: "X", ClientIDs: []domain.ID{"1"}, Title: "X", Amount: 100},
	}

	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	draft := &domain.Invoice{
		InvoiceNumber: " INV-2024-001 ",
		ProjectID:     "X",
		ClientID:      "1",
		Amount:        500,
		Date:          date,
		DueDate:       date.AddDate(0, 0, 14),
	}

	if err := svc.SaveInvoice(context.Background(), draft); err != nil {
		t.Fatalf("SaveInvoice: %v", err)
	}
	if invoices.created == nil {
		t.Fatal("create never reached the repository")
	}
	if invoices.created.InvoiceNumber != "INV-2024-001" {
		t.Errorf("invoiceNumber = %q", invoices.created.InvoiceNumber)
	}
	if invoices.created.Status != domain.InvoiceStatusPending {
		t.Errorf("status = %q, want pending default", invoices.created.Status)
	}
}

func TestDeleteClient_BlockedByReferences(t *testing.T) {
	svc, clients, projects, _ := newDraftFixture()

	projects.projects = []*domain.Project{
		{ID: "7", ClientIDs: []domain.ID{"1"}},
	}

	err := svc.DeleteClient(context.Background(), "1")
	if !errors.Is(err, ErrHasReferences) {
		t.Fatalf("err = %v, want ErrHasReferences", err)
	}
	if len(clients.deleted) != 0 {
		t.Fatal("blocked delete must not reach the repository")
	}
}

func TestDeleteClient_Unreferenced(t *testing.T) {
	svc, clients, _, _ := newDraftFixture()

	if err := svc.DeleteClient(context.Background(), "1"); err != nil {
		t.Fatalf("DeleteClient: %v", err)
	}
	if len(clients.deleted) != 1 || clients.deleted[0] != "1" {
		t.Fatalf("deleted = %v, want [1]", clients.deleted)
	}
}

func TestDeleteProject_BlockedByInvoices(t *testing.T) {
	svc, _, projects, invoices := newDraftFixture()

	invoices.invoices = []*domain.Invoice{{ID: "a", ProjectID: "7"}}

	err := svc.DeleteProject(context.Background(), "7")
	if !errors.Is(err, ErrHasReferences) {
		t.Fatalf("err = %v, want ErrHasReferences", err)
	}
	if len(projects.deleted) != 0 {
		t.Fatal("blocked delete must not reach the repository")
	}
}

func TestDeleteInvoice(t *testing.T) {
	svc, _, _, invoices := newDraftFixture()

	if err := svc.DeleteInvoice(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteInvoice: %v", err)
	}
	if len(invoices.deleted) != 1 {
		t.Fatalf("deleted = %v", invoices.deleted)
	}
}
