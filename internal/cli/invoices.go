package cli

import (
	"context"
	"fmt"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/export"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `List, add, edit, delete, and export invoices. Every invoice bills one client of one project.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices, err := appInstance.InvoiceRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		// Optional filters
		if cmd.Flags().Changed("project") {
			pid, _ := cmd.Flags().GetString("project")
			invoices = filterInvoices(invoices, func(i *domain.Invoice) bool {
				return i.ProjectID == domain.ID(pid)
			})
		}
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			invoices = filterInvoices(invoices, func(i *domain.Invoice) bool {
				return i.Status == domain.InvoiceStatus(statusStr)
			})
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		// Print table header
		fmt.Printf("%-8s %-14s %-20s %-12s %12s %-10s\n", "ID", "Number", "Client", "Due", "Amount", "Status")
		fmt.Println("--------------------------------------------------------------------------------")

		// Print invoices
		for _, invoice := range invoices {
			client, _ := appInstance.ClientRepo.GetByID(ctx, invoice.ClientID)
			clientName := "#" + invoice.ClientID.String()
			if client != nil {
				clientName = client.Name
			}

			fmt.Printf("%-8s %-14s %-20s %-12s %12.2f %-10s\n",
				invoice.ID,
				invoice.InvoiceNumber,
				truncate(clientName, 20),
				invoice.DueDate.Format("2006-01-02"),
				float64(invoice.Amount),
				invoice.Status,
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new invoice",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		projectID, _ := cmd.Flags().GetString("project")
		clientID, _ := cmd.Flags().GetString("client")
		amount, _ := cmd.Flags().GetFloat64("amount")
		dateStr, _ := cmd.Flags().GetString("date")
		dueStr, _ := cmd.Flags().GetString("due")

		invoice := domain.NewInvoice(domain.ID(projectID), domain.ID(clientID))
		invoice.Amount = domain.Amount(amount)

		if number, _ := cmd.Flags().GetString("number"); number != "" {
			invoice.InvoiceNumber = number
		}
		if statusStr, _ := cmd.Flags().GetString("status"); statusStr != "" {
			invoice.Status = domain.InvoiceStatus(statusStr)
		}
		invoice.Description, _ = cmd.Flags().GetString("description")

		date, err := parseDate(dateStr)
		if err != nil {
			return fmt.Errorf("invalid invoice date: %w", err)
		}
		invoice.Date = date

		due, err := parseDate(dueStr)
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		invoice.DueDate = due

		if err := appInstance.DraftService.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("✓ Invoice created: %s (ID: %s)\n", invoice.InvoiceNumber, invoice.ID)
		fmt.Printf("  Amount: %.2f  Due: %s\n", float64(invoice.Amount), invoice.DueDate.Format("2006-01-02"))
		return nil
	},
}

var invoicesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceRepo.GetByID(ctx, domain.ID(args[0]))
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		if cmd.Flags().Changed("number") {
			invoice.InvoiceNumber, _ = cmd.Flags().GetString("number")
		}
		if cmd.Flags().Changed("project") {
			pid, _ := cmd.Flags().GetString("project")
			invoice.ProjectID = domain.ID(pid)
		}
		if cmd.Flags().Changed("client") {
			cid, _ := cmd.Flags().GetString("client")
			invoice.ClientID = domain.ID(cid)
		}
		if cmd.Flags().Changed("amount") {
			amount, _ := cmd.Flags().GetFloat64("amount")
			invoice.Amount = domain.Amount(amount)
		}
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			invoice.Status = domain.InvoiceStatus(statusStr)
		}
		if cmd.Flags().Changed("description") {
			invoice.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("date") {
			dateStr, _ := cmd.Flags().GetString("date")
			date, err := parseDate(dateStr)
			if err != nil {
				return fmt.Errorf("invalid invoice date: %w", err)
			}
			invoice.Date = date
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			due, err := parseDate(dueStr)
			if err != nil {
				return fmt.Errorf("invalid due date: %w", err)
			}
			invoice.DueDate = due
		}

		if err := appInstance.DraftService.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		fmt.Printf("✓ Invoice updated: %s\n", invoice.InvoiceNumber)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := domain.ID(args[0])

		invoice, err := appInstance.InvoiceRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		if err := appInstance.DraftService.DeleteInvoice(ctx, id); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Invoice deleted: %s\n", invoice.InvoiceNumber)
		return nil
	},
}

var invoicesExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export an invoice as a text document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoice, err := appInstance.InvoiceRepo.GetByID(ctx, domain.ID(args[0]))
		if err != nil {
			return fmt.Errorf("failed to get invoice: %w", err)
		}
		if invoice == nil {
			return fmt.Errorf("invoice not found")
		}

		// A missing client record downgrades to "Unknown" in the document.
		clientName := ""
		if client, err := appInstance.ClientRepo.GetByID(ctx, invoice.ClientID); err == nil && client != nil {
			clientName = client.Name
		}

		dir, _ := cmd.Flags().GetString("out")
		if dir == "" {
			dir = appInstance.Config.Export.OutputDir
		}

		path, err := export.WriteFile(dir, invoice, clientName)
		if err != nil {
			return fmt.Errorf("failed to export invoice: %w", err)
		}

		fmt.Printf("✓ Invoice exported: %s\n", path)
		return nil
	},
}

func filterInvoices(invoices []*domain.Invoice, keep func(*domain.Invoice) bool) []*domain.Invoice {
	out := invoices[:0]
	for _, inv := range invoices {
		if keep(inv) {
			out = append(out, inv)
		}
	}
	return out
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesAddCmd)
	invoicesCmd.AddCommand(invoicesEditCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesExportCmd)

	// List flags
	invoicesListCmd.Flags().String("project", "", "Filter by project ID")
	invoicesListCmd.Flags().String("status", "", "Filter by status (pending, paid, overdue, cancelled)")

	// Add flags
	invoicesAddCmd.Flags().String("project", "", "Project ID (required)")
	invoicesAddCmd.MarkFlagRequired("project")
	invoicesAddCmd.Flags().String("client", "", "Client ID, must be on the project (required)")
	invoicesAddCmd.MarkFlagRequired("client")
	invoicesAddCmd.Flags().Float64("amount", 0, "Invoice amount (required)")
	invoicesAddCmd.MarkFlagRequired("amount")
	invoicesAddCmd.Flags().String("date", "today", "Invoice date")
	invoicesAddCmd.Flags().String("due", "", "Due date (required)")
	invoicesAddCmd.MarkFlagRequired("due")
	invoicesAddCmd.Flags().String("number", "", "Invoice number (generated when empty)")
	invoicesAddCmd.Flags().String("status", "", "Status (pending, paid, overdue, cancelled)")
	invoicesAddCmd.Flags().String("description", "", "Invoice description")

	// Edit flags
	invoicesEditCmd.Flags().String("number", "", "New invoice number")
	invoicesEditCmd.Flags().String("project", "", "New project ID")
	invoicesEditCmd.Flags().String("client", "", "New client ID")
	invoicesEditCmd.Flags().Float64("amount", 0, "New amount")
	invoicesEditCmd.Flags().String("date", "", "New invoice date")
	invoicesEditCmd.Flags().String("due", "", "New due date")
	invoicesEditCmd.Flags().String("status", "", "New status")
	invoicesEditCmd.Flags().String("description", "", "New description")

	// Export flags
	invoicesExportCmd.Flags().String("out", "", "Output directory (defaults to the configured export dir)")
}
