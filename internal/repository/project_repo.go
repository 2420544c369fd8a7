package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/api"
	"github.com/andy/clientdesk/internal/domain"
)

// ProjectRepo is a REST implementation of ProjectRepository. Legacy
// records with a singular clientId are normalized by the domain decoder,
// so everything this repo returns carries a clientIds list.
type ProjectRepo struct {
	api *api.Client
}

// NewProjectRepo creates a new ProjectRepo
func NewProjectRepo(a *api.Client) *ProjectRepo {
	return &ProjectRepo{api: a}
}

// List fetches the full project collection
func (r *ProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	var projects []*domain.Project
	if err := r.api.Get(ctx, "/projects", &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetByID fetches one project, returning nil if it doesn't exist
func (r *ProjectRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Project, error) {
	var project domain.Project
	err := r.api.Get(ctx, itemPath("projects", id), &project)
	if api.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &project, nil
}

// Create posts a new project; the backend assigns the id
func (r *ProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	if err := r.api.Post(ctx, "/projects", project, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

// Update replaces the full record on the backend
func (r *ProjectRepo) Update(ctx context.Context, project *domain.Project) error {
	if project.ID.IsZero() {
		return errors.New("project has no id")
	}
	if err := r.api.Put(ctx, itemPath("projects", project.ID), project, project); err != nil {
		return fmt.Errorf("update project %s: %w", project.ID, err)
	}
	return nil
}

// Delete removes the project without cascading to its invoices
func (r *ProjectRepo) Delete(ctx context.Context, id domain.ID) error {
	if err := r.api.Delete(ctx, itemPath("projects", id)); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
