package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/api"
	"github.com/andy/clientdesk/internal/domain"
)

// InvoiceRepo is a REST implementation of InvoiceRepository
type InvoiceRepo struct {
	api *api.Client
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(a *api.Client) *InvoiceRepo {
	return &InvoiceRepo{api: a}
}

// List fetches the full invoice collection
func (r *InvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	var invoices []*domain.Invoice
	if err := r.api.Get(ctx, "/invoices", &invoices); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

// GetByID fetches one invoice, returning nil if it doesn't exist
func (r *InvoiceRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.api.Get(ctx, itemPath("invoices", id), &invoice)
	if api.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	return &invoice, nil
}

// Create posts a new invoice; the backend assigns the id
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	if err := r.api.Post(ctx, "/invoices", invoice, invoice); err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// Update replaces the full record on the backend
func (r *InvoiceRepo) Update(ctx context.Context, invoice *domain.Invoice) error {
	if invoice.ID.IsZero() {
		return errors.New("invoice has no id")
	}
	if err := r.api.Put(ctx, itemPath("invoices", invoice.ID), invoice, invoice); err != nil {
		return fmt.Errorf("update invoice %s: %w", invoice.ID, err)
	}
	return nil
}

// Delete removes the invoice
func (r *InvoiceRepo) Delete(ctx context.Context, id domain.ID) error {
	if err := r.api.Delete(ctx, itemPath("invoices", id)); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}
