package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/api"
	"github.com/andy/clientdesk/internal/domain"
)

// ClientRepo is a REST implementation of ClientRepository
type ClientRepo struct {
	api *api.Client
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(a *api.Client) *ClientRepo {
	return &ClientRepo{api: a}
}

// List fetches the full client collection
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var clients []*domain.Client
	if err := r.api.Get(ctx, "/clients", &clients); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// GetByID fetches one client, returning nil if it doesn't exist
func (r *ClientRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Client, error) {
	var client domain.Client
	err := r.api.Get(ctx, itemPath("clients", id), &client)
	if api.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", id, err)
	}
	return &client, nil
}

// Create posts a new client; the backend assigns the id, which is written
// back into the passed record.
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := r.api.Post(ctx, "/clients", client, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// Update replaces the full record on the backend
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if client.ID.IsZero() {
		return errors.New("client has no id")
	}
	if err := r.api.Put(ctx, itemPath("clients", client.ID), client, client); err != nil {
		return fmt.Errorf("update client %s: %w", client.ID, err)
	}
	return nil
}

// Delete removes the client. No cascade: dependent projects and invoices
// are left untouched, which is why callers should check blockers first.
func (r *ClientRepo) Delete(ctx context.Context, id domain.ID) error {
	if err := r.api.Delete(ctx, itemPath("clients", id)); err != nil {
		return fmt.Errorf("delete client %s: %w", id, err)
	}
	return nil
}
