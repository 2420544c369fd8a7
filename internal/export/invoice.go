// Package export renders invoices as plain-text documents. This is a
// stand-in for real PDF generation: the layout is fixed and the file is
// offered as Invoice-<number>.txt.
package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/clientdesk/internal/domain"
)

const dateLayout = "02/01/2006"

// Render writes the invoice document to w. clientName is the resolved
// name of the billed client; pass "" when the client record is missing.
func Render(w io.Writer, inv *domain.Invoice, clientName string) error {
	if clientName == "" {
		clientName = "Unknown"
	}
	description := strings.TrimSpace(inv.Description)
	if description == "" {
		description = "N/A"
	}

	_, err := fmt.Fprintf(w, `INVOICE
%s

Date: %s
Due Date: %s

Bill To:
%s

Amount: ₹%s
Status: %s

Description:
%s
`,
		inv.InvoiceNumber,
		inv.Date.Format(dateLayout),
		inv.DueDate.Format(dateLayout),
		clientName,
		FormatAmount(inv.Amount),
		strings.ToUpper(string(inv.Status)),
		description,
	)
	return err
}

// WriteFile renders the invoice into dir as Invoice-<number>.txt and
// returns the full path.
func WriteFile(dir string, inv *domain.Invoice, clientName string) (string, error) {
	path := filepath.Join(dir, FileName(inv))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := Render(f, inv, clientName); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return path, nil
}

// FileName returns the download name for an invoice export.
func FileName(inv *domain.Invoice) string {
	return fmt.Sprintf("Invoice-%s.txt", inv.InvoiceNumber)
}

// FormatAmount renders an amount with Indian digit grouping (the last
// three digits, then groups of two): 1234567.5 → "12,34,567.50". Whole
// amounts omit the decimals.
func FormatAmount(a domain.Amount) string {
	v := float64(a)
	neg := v < 0
	if neg {
		v = -v
	}

	whole := math.Trunc(v)
	frac := v - whole

	digits := fmt.Sprintf("%.0f", whole)
	grouped := groupIndian(digits)

	out := grouped
	if frac > 1e-9 {
		out = fmt.Sprintf("%s.%02d", grouped, int(math.Round(frac*100)))
	}
	if neg {
		out = "-" + out
	}
	return out
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
