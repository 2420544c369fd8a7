package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusNotStarted ProjectStatus = "not-started"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

// ProjectStatuses is the fixed status set, in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusNotStarted,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
}

// Label returns the human-readable form of the status.
func (s ProjectStatus) Label() string {
	switch s {
	case ProjectStatusNotStarted:
		return "Not Started"
	case ProjectStatusInProgress:
		return "In Progress"
	case ProjectStatusCompleted:
		return "Completed"
	case ProjectStatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

type Project struct {
	ID          ID            `json:"id,omitempty"`
	ClientIDs   []ID          `json:"clientIds"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Amount      Amount        `json:"amount"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewProject creates a new project with required fields
func NewProject(title string, clientIDs []ID) *Project {
	return &Project{
		ClientIDs: clientIDs,
		Title:     strings.TrimSpace(title),
		Status:    ProjectStatusNotStarted,
		CreatedAt: time.Now().UTC(),
	}
}

// UnmarshalJSON folds the legacy singular `clientId` representation into
// ClientIDs at the decode boundary, so nothing downstream ever branches
// on the stored shape.
func (p *Project) UnmarshalJSON(data []byte) error {
	type alias Project
	aux := struct {
		*alias
		LegacyClientID ID `json:"clientId"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.ClientIDs) == 0 && !aux.LegacyClientID.IsZero() {
		p.ClientIDs = []ID{aux.LegacyClientID}
	}
	return nil
}

// HasClient reports whether id is part of the project's client roster.
func (p *Project) HasClient(id ID) bool {
	for _, cid := range p.ClientIDs {
		if cid == id {
			return true
		}
	}
	return false
}

// Validate checks the form rules in order and returns the first violation.
func (p *Project) Validate() error {
	if len(p.ClientIDs) == 0 {
		return errors.New("at least one client must be selected")
	}
	if strings.TrimSpace(p.Title) == "" {
		return errors.New("project title is required")
	}
	if p.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// Normalize trims string fields and converts dates to UTC.
func (p *Project) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Status == "" {
		p.Status = ProjectStatusNotStarted
	}
	if !p.StartDate.IsZero() {
		p.StartDate = p.StartDate.UTC()
	}
	if !p.EndDate.IsZero() {
		p.EndDate = p.EndDate.UTC()
	}
}
