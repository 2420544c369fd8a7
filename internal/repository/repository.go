package repository

import (
	"context"

	"github.com/andy/clientdesk/internal/domain"
)

// ClientRepository manages client records on the backend
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id domain.ID) error
}

// ProjectRepository manages project records on the backend
type ProjectRepository interface {
	List(ctx context.Context) ([]*domain.Project, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) error
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id domain.ID) error
}

// InvoiceRepository manages invoice records on the backend
type InvoiceRepository interface {
	List(ctx context.Context) ([]*domain.Invoice, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Invoice, error)
	Create(ctx context.Context, invoice *domain.Invoice) error
	Update(ctx context.Context, invoice *domain.Invoice) error
	Delete(ctx context.Context, id domain.ID) error
}
