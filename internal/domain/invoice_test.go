package domain

import (
	"regexp"
	"testing"
	"time"
)

func validInvoice() (*Invoice, *Project) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	inv := &Invoice{
		InvoiceNumber: "INV-2024-042",
		ProjectID:     "7",
		ClientID:      "1",
		Amount:        500,
		Date:          date,
		DueDate:       date.AddDate(0, 0, 14),
		Status:        InvoiceStatusPending,
	}
	project := &Project{ID: "7", ClientIDs: []ID{"1", "2"}, Title: "X", Amount: 1000}
	return inv, project
}

func TestInvoiceValidate_FailFastOrdering(t *testing.T) {
	// Both invoice number and project are missing: the number error wins.
	inv := &Invoice{}
	err := inv.ValidateForProject(nil)
	if err == nil || err.Error() != "invoice number is required" {
		t.Fatalf("expected invoice-number error first, got %v", err)
	}

	inv.InvoiceNumber = "INV-2024-001"
	err = inv.ValidateForProject(nil)
	if err == nil || err.Error() != "a project must be selected" {
		t.Fatalf("expected project error, got %v", err)
	}
}

func TestInvoiceValidate_StaleClientRejected(t *testing.T) {
	// Client 1 was valid for project 7, but the draft now points at
	// project 9 whose roster does not include it.
	inv, _ := validInvoice()
	other := &Project{ID: "9", ClientIDs: []ID{"3"}, Title: "Y", Amount: 100}
	inv.ProjectID = other.ID

	err := inv.ValidateForProject(other)
	if err == nil || err.Error() != "selected client does not belong to the selected project" {
		t.Fatalf("expected roster violation, got %v", err)
	}
}

func TestInvoiceValidate_RosterCheckBeforeAmount(t *testing.T) {
	inv, _ := validInvoice()
	inv.Amount = 0
	wrong := &Project{ID: "7", ClientIDs: []ID{"99"}}

	// Both the roster rule and the amount rule are violated; the roster
	// rule comes first.
	err := inv.ValidateForProject(wrong)
	if err == nil || err.Error() != "selected client does not belong to the selected project" {
		t.Fatalf("expected roster violation before amount, got %v", err)
	}
}

func TestInvoiceValidate_DueDate(t *testing.T) {
	inv, project := validInvoice()

	// Due date strictly before the invoice date is rejected.
	inv.DueDate = inv.Date.AddDate(0, 0, -1)
	if err := inv.ValidateForProject(project); err == nil {
		t.Fatal("due date before invoice date should fail")
	}

	// Equal dates are permitted.
	inv.DueDate = inv.Date
	if err := inv.ValidateForProject(project); err != nil {
		t.Fatalf("equal due date should pass: %v", err)
	}
}

func TestInvoiceValidate_AmountRequired(t *testing.T) {
	inv, project := validInvoice()
	inv.Amount = 0
	if err := inv.ValidateForProject(project); err == nil {
		t.Fatal("zero amount should fail")
	}
	inv.Amount = -5
	if err := inv.ValidateForProject(project); err == nil {
		t.Fatal("negative amount should fail")
	}
}

func TestNewInvoiceNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^INV-\d{4}-\d{3}$`)
	for range 20 {
		n := NewInvoiceNumber()
		if !pattern.MatchString(n) {
			t.Fatalf("invoice number %q does not match INV-<year>-<3 digits>", n)
		}
	}
}

func TestInvoiceNormalize(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	inv := &Invoice{
		InvoiceNumber: "  INV-2024-001  ",
		Description:   " fixture work ",
		Date:          time.Date(2024, 3, 10, 9, 0, 0, 0, loc),
		DueDate:       time.Date(2024, 3, 24, 9, 0, 0, 0, loc),
	}
	inv.Normalize()

	if inv.InvoiceNumber != "INV-2024-001" {
		t.Errorf("invoiceNumber = %q", inv.InvoiceNumber)
	}
	if inv.Description != "fixture work" {
		t.Errorf("description = %q", inv.Description)
	}
	if inv.Status != InvoiceStatusPending {
		t.Errorf("status defaulted to %q, want pending", inv.Status)
	}
	if loc := inv.Date.Location(); loc != time.UTC {
		t.Errorf("date location = %v, want UTC", loc)
	}
}
