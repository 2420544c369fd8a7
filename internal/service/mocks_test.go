package service

import (
	"context"

	"github.com/andy/clientdesk/internal/domain"
)

// mock repository implementations shared by the service tests

type mockClientRepo struct {
	clients []*domain.Client
	created *domain.Client
	updated *domain.Client
	deleted []domain.ID
	listErr error
}

func (m *mockClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	return m.clients, m.listErr
}

func (m *mockClientRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	client.ID = "new"
	m.created = client
	return nil
}

func (m *mockClientRepo) Update(ctx context.Context, client *domain.Client) error {
	m.updated = client
	return nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id domain.ID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockProjectRepo struct {
	projects []*domain.Project
	created  *domain.Project
	updated  *domain.Project
	deleted  []domain.ID
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return m.projects, nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	project.ID = "new"
	m.created = project
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	m.updated = project
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id domain.ID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockInvoiceRepo struct {
	invoices []*domain.Invoice
	created  *domain.Invoice
	updated  *domain.Invoice
	deleted  []domain.ID
}

func (m *mockInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	return m.invoices, nil
}

func (m *mockInvoiceRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Invoice, error) {
	for _, inv := range m.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	invoice.ID = "new"
	m.created = invoice
	return nil
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	m.updated = invoice
	return nil
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id domain.ID) error {
	m.deleted = append(m.deleted, id)
	return nil
}
