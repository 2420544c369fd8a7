package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the dashboard summary",
	Long:  `Show record counts, revenue totals, project status breakdown, and recent records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		summary, err := appInstance.ReportService.Dashboard(ctx)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("Dashboard")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("Clients:  %d\n", summary.ClientCount)
		fmt.Printf("Projects: %d\n", summary.ProjectCount)
		fmt.Printf("Invoices: %d\n", summary.InvoiceCount)
		fmt.Println()

		fmt.Printf("Total revenue:   %12.2f\n", float64(summary.TotalRevenue))
		fmt.Printf("Paid:            %12.2f  (%.0f%%)\n", float64(summary.PaidRevenue), summary.PaidPercent)
		fmt.Printf("Pending:         %12.2f  (%.0f%%)\n", float64(summary.PendingRevenue), summary.PendingPercent)
		fmt.Println()

		fmt.Println("Projects by status:")
		for _, status := range domain.ProjectStatuses {
			share := summary.ProjectsByStatus[status]
			fmt.Printf("  %-13s %3d  (%.0f%%)\n", status.Label(), share.Count, share.Percent)
		}

		if len(summary.RecentInvoices) > 0 {
			fmt.Println()
			fmt.Println("Recent invoices:")
			for _, inv := range summary.RecentInvoices {
				fmt.Printf("  %-14s %12.2f  %s\n", inv.InvoiceNumber, float64(inv.Amount), inv.Status)
			}
		}

		return nil
	},
}
