package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/repository"
)

var (
	// ErrHasReferences signals that a delete was refused because other
	// records still point at the target.
	ErrHasReferences = errors.New("record is still referenced")

	ErrProjectNotFound = errors.New("selected project no longer exists")
)

// DraftService runs the submit pipeline for in-memory drafts: validate
// (fail fast, first violation only), normalize, then a single create or
// full-replace update. Nothing is written when validation fails.
type DraftService interface {
	SaveClient(ctx context.Context, client *domain.Client) error
	SaveProject(ctx context.Context, project *domain.Project) error
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error

	// DeleteClient refuses with ErrHasReferences while projects or
	// invoices still reference the client.
	DeleteClient(ctx context.Context, id domain.ID) error

	// DeleteProject refuses with ErrHasReferences while invoices still
	// reference the project.
	DeleteProject(ctx context.Context, id domain.ID) error

	DeleteInvoice(ctx context.Context, id domain.ID) error
}

type draftService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
	invoiceRepo repository.InvoiceRepository
	relations   RelationService
}

// NewDraftService creates a new draft service
func NewDraftService(
	clientRepo repository.ClientRepository,
	projectRepo repository.ProjectRepository,
	invoiceRepo repository.InvoiceRepository,
	relations RelationService,
) DraftService {
	return &draftService{
		clientRepo:  clientRepo,
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
		relations:   relations,
	}
}

func (s *draftService) SaveClient(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	client.Normalize()

	if client.ID.IsZero() {
		client.CreatedAt = time.Now().UTC()
		return s.clientRepo.Create(ctx, client)
	}

	if err := s.preserveClientCreatedAt(ctx, client); err != nil {
		return err
	}
	return s.clientRepo.Update(ctx, client)
}

func (s *draftService) SaveProject(ctx context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	project.Normalize()

	if project.ID.IsZero() {
		project.CreatedAt = time.Now().UTC()
		return s.projectRepo.Create(ctx, project)
	}

	if project.CreatedAt.IsZero() {
		existing, err := s.projectRepo.GetByID(ctx, project.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			project.CreatedAt = existing.CreatedAt
		}
	}
	return s.projectRepo.Update(ctx, project)
}

func (s *draftService) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	// Re-fetch the referenced project so the roster check runs against
	// current state, not whatever the form loaded earlier.
	var project *domain.Project
	if !invoice.ProjectID.IsZero() {
		var err error
		project, err = s.projectRepo.GetByID(ctx, invoice.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
	}

	if err := invoice.ValidateForProject(project); err != nil {
		return err
	}
	invoice.Normalize()

	if invoice.ID.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
		return s.invoiceRepo.Create(ctx, invoice)
	}

	if invoice.CreatedAt.IsZero() {
		existing, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			invoice.CreatedAt = existing.CreatedAt
		}
	}
	return s.invoiceRepo.Update(ctx, invoice)
}

func (s *draftService) DeleteClient(ctx context.Context, id domain.ID) error {
	blockers, err := s.relations.ClientBlockers(ctx, id)
	if err != nil {
		return err
	}
	if !blockers.Empty() {
		return fmt.Errorf("%w: %d project(s) and %d invoice(s) reference this client",
			ErrHasReferences, len(blockers.Projects), len(blockers.Invoices))
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *draftService) DeleteProject(ctx context.Context, id domain.ID) error {
	blockers, err := s.relations.ProjectBlockers(ctx, id)
	if err != nil {
		return err
	}
	if !blockers.Empty() {
		return fmt.Errorf("%w: %d invoice(s) reference this project",
			ErrHasReferences, len(blockers.Invoices))
	}
	return s.projectRepo.Delete(ctx, id)
}

func (s *draftService) DeleteInvoice(ctx context.Context, id domain.ID) error {
	return s.invoiceRepo.Delete(ctx, id)
}

func (s *draftService) preserveClientCreatedAt(ctx context.Context, client *domain.Client) error {
	if !client.CreatedAt.IsZero() {
		return nil
	}
	existing, err := s.clientRepo.GetByID(ctx, client.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		client.CreatedAt = existing.CreatedAt
	}
	return nil
}
