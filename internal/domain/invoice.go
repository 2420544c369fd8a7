package domain

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// InvoiceStatuses is the fixed status set, in display order.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusPending,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

type Invoice struct {
	ID            ID            `json:"id,omitempty"`
	InvoiceNumber string        `json:"invoiceNumber"`
	ProjectID     ID            `json:"projectId"`
	ClientID      ID            `json:"clientId"`
	Amount        Amount        `json:"amount"`
	Date          time.Time     `json:"date"`
	DueDate       time.Time     `json:"dueDate"`
	Status        InvoiceStatus `json:"status"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// NewInvoice creates a new pending invoice with a generated number.
func NewInvoice(projectID, clientID ID) *Invoice {
	return &Invoice{
		InvoiceNumber: NewInvoiceNumber(),
		ProjectID:     projectID,
		ClientID:      clientID,
		Status:        InvoiceStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}

// NewInvoiceNumber generates an advisory invoice number of the form
// INV-<year>-<3 digits>. Uniqueness is not guaranteed; the backend does
// not enforce it either.
func NewInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%03d", time.Now().Year(), rand.IntN(1000))
}

// ValidateForProject checks the form rules in order and returns the first
// violation. The referenced project must be supplied so the client's roster
// membership is re-verified at submit time, not just at selection time;
// the two records can drift apart between the picker and the submit.
func (i *Invoice) ValidateForProject(project *Project) error {
	if strings.TrimSpace(i.InvoiceNumber) == "" {
		return errors.New("invoice number is required")
	}
	if i.ProjectID.IsZero() {
		return errors.New("a project must be selected")
	}
	if i.ClientID.IsZero() {
		return errors.New("a client from the project must be selected")
	}
	if project == nil || !project.HasClient(i.ClientID) {
		return errors.New("selected client does not belong to the selected project")
	}
	if i.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if i.Date.IsZero() {
		return errors.New("invoice date is required")
	}
	if i.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if i.DueDate.Before(i.Date) {
		return errors.New("due date cannot be before the invoice date")
	}
	return nil
}

// Normalize trims string fields and converts dates to UTC.
func (i *Invoice) Normalize() {
	i.InvoiceNumber = strings.TrimSpace(i.InvoiceNumber)
	i.Description = strings.TrimSpace(i.Description)
	if i.Status == "" {
		i.Status = InvoiceStatusPending
	}
	i.Date = i.Date.UTC()
	i.DueDate = i.DueDate.UTC()
}
