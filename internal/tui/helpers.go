package tui

import (
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/export"
)

// formatMoney renders an amount with the currency sign
func formatMoney(amount domain.Amount) string {
	return "₹" + export.FormatAmount(amount)
}

// formatDate renders a date, or a dash when unset
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
