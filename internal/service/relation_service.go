package service

import (
	"context"
	"fmt"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
)

// The functions below are pure derivations over collection snapshots. A
// project's client roster is the single source of truth for which client
// an invoice may bill, so everything that presents a client choice for an
// invoice derives it from here instead of filtering ad hoc.

// EligibleClients returns the subset of all whose id appears in the
// project's roster, preserving input order. A nil project has no eligible
// clients.
func EligibleClients(project *domain.Project, all []*domain.Client) []*domain.Client {
	eligible := make([]*domain.Client, 0)
	if project == nil {
		return eligible
	}
	for _, c := range all {
		if project.HasClient(c.ID) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// ProjectRevenue sums the amounts of every invoice booked against the
// project. Amounts are already coerced to numbers at the decode boundary,
// so a missing or malformed amount contributes zero.
func ProjectRevenue(projectID domain.ID, invoices []*domain.Invoice) domain.Amount {
	var total domain.Amount
	for _, inv := range invoices {
		if inv.ProjectID == projectID {
			total += inv.Amount
		}
	}
	return total
}

// ReconcileClientSelection keeps the current selection if it is still in
// the eligible set and clears it otherwise, forcing a re-selection when
// the chosen project no longer includes the client.
func ReconcileClientSelection(current domain.ID, eligible []*domain.Client) domain.ID {
	if current.IsZero() {
		return ""
	}
	for _, c := range eligible {
		if c.ID == current {
			return current
		}
	}
	return ""
}

// Blockers lists the records that reference an entity and therefore block
// its deletion. Neither this layer nor the backend cascades deletes, so
// removing a referenced record would silently orphan its dependents.
type Blockers struct {
	Projects []*domain.Project
	Invoices []*domain.Invoice
}

// Empty reports whether nothing references the entity.
func (b *Blockers) Empty() bool {
	return len(b.Projects) == 0 && len(b.Invoices) == 0
}

// RelationService derives cross-entity state from fresh backend snapshots
type RelationService interface {
	// EligibleClientsFor fetches the project and client collection and
	// returns the clients an invoice for this project may bill.
	EligibleClientsFor(ctx context.Context, projectID domain.ID) ([]*domain.Client, error)

	// ProjectRevenueFor sums the booked invoice amounts for the project.
	ProjectRevenueFor(ctx context.Context, projectID domain.ID) (domain.Amount, error)

	// ClientBlockers returns the projects and invoices referencing a client.
	ClientBlockers(ctx context.Context, clientID domain.ID) (*Blockers, error)

	// ProjectBlockers returns the invoices referencing a project.
	ProjectBlockers(ctx context.Context, projectID domain.ID) (*Blockers, error)
}

type relationService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	invoiceRepo repository.InvoiceRepository
}

// NewRelationService creates a new relation service
func NewRelationService(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
) RelationService {
	return &relationService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
	}
}

func (s *relationService) EligibleClientsFor(ctx context.Context, projectID domain.ID) ([]*domain.Client, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	return EligibleClients(project, clients), nil
}

func (s *relationService) ProjectRevenueFor(ctx context.Context, projectID domain.ID) (domain.Amount, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("load invoices: %w", err)
	}
	return ProjectRevenue(projectID, invoices), nil
}

func (s *relationService) ClientBlockers(ctx context.Context, clientID domain.ID) (*Blockers, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	blockers := &Blockers{}
	for _, p := range projects {
		if p.HasClient(clientID) {
			blockers.Projects = append(blockers.Projects, p)
		}
	}
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			blockers.Invoices = append(blockers.Invoices, inv)
		}
	}
	return blockers, nil
}

func (s *relationService) ProjectBlockers(ctx context.Context, projectID domain.ID) (*Blockers, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	blockers := &Blockers{}
	for _, inv := range invoices {
		if inv.ProjectID == projectID {
			blockers.Invoices = append(blockers.Invoices, inv)
		}
	}
	return blockers, nil
}
