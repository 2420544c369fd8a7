package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andy/clientdesk/internal/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:            "1",
		InvoiceNumber: "INV-2024-042",
		ProjectID:     "7",
		ClientID:      "3",
		Amount:        123456.5,
		Date:          time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC),
		Status:        domain.InvoiceStatusPending,
		Description:   "fixture work",
	}
}

func TestRender(t *testing.T) {
	var b strings.Builder
	if err := Render(&b, sampleInvoice(), "Ada Lovelace"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"INVOICE",
		"INV-2024-042",
		"Date: 10/03/2024",
		"Due Date: 24/03/2024",
		"Bill To:\nAda Lovelace",
		"Amount: ₹1,23,456.50",
		"Status: PENDING",
		"Description:\nfixture work",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_MissingClientAndDescription(t *testing.T) {
	inv := sampleInvoice()
	inv.Description = ""

	var b strings.Builder
	if err := Render(&b, inv, ""); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "Bill To:\nUnknown") {
		t.Errorf("missing client should render Unknown:\n%s", out)
	}
	if !strings.Contains(out, "Description:\nN/A") {
		t.Errorf("empty description should render N/A:\n%s", out)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, sampleInvoice(), "Ada")
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if filepath.Base(path) != "Invoice-INV-2024-042.txt" {
		t.Errorf("file name = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "INV-2024-042") {
		t.Error("written file missing invoice number")
	}
}

func TestWriteFile_BadDir(t *testing.T) {
	_, err := WriteFile("/nonexistent/dir", sampleInvoice(), "Ada")
	if err == nil {
		t.Fatal("expected error for bad directory")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   domain.Amount
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1,000"},
		{123456, "1,23,456"},
		{1234567, "12,34,567"},
		{12345678, "1,23,45,678"},
		{1234.5, "1,234.50"},
		{99.99, "99.99"},
		{-1500, "-1,500"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
