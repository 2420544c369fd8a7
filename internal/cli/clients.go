package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/service"
	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage clients",
	Long:  `List, add, edit, and delete clients.`,
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-8s %-25s %-20s %-25s %-12s\n", "ID", "Name", "Company", "Email", "Phone")
		fmt.Println("-------------------------------------------------------------------------------------------")

		// Print clients
		for _, client := range clients {
			fmt.Printf("%-8s %-25s %-20s %-25s %-12s\n",
				client.ID,
				truncate(client.Name, 25),
				truncate(client.Company, 20),
				truncate(client.Email, 25),
				client.Phone,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		email, _ := cmd.Flags().GetString("email")
		company, _ := cmd.Flags().GetString("company")
		phone, _ := cmd.Flags().GetString("phone")
		address, _ := cmd.Flags().GetString("address")
		notes, _ := cmd.Flags().GetString("notes")

		client := domain.NewClient(args[0], email)
		client.Company = company
		client.Phone = phone
		client.Address = address
		client.Notes = notes

		if err := appInstance.DraftService.SaveClient(ctx, client); err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		fmt.Printf("✓ Client created: %s (ID: %s)\n", client.Name, client.ID)
		return nil
	},
}

var clientsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		client, err := appInstance.ClientRepo.GetByID(ctx, domain.ID(args[0]))
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}

		// Update fields if flags provided
		if cmd.Flags().Changed("name") {
			client.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("company") {
			client.Company, _ = cmd.Flags().GetString("company")
		}
		if cmd.Flags().Changed("email") {
			client.Email, _ = cmd.Flags().GetString("email")
		}
		if cmd.Flags().Changed("phone") {
			client.Phone, _ = cmd.Flags().GetString("phone")
		}
		if cmd.Flags().Changed("address") {
			client.Address, _ = cmd.Flags().GetString("address")
		}
		if cmd.Flags().Changed("notes") {
			client.Notes, _ = cmd.Flags().GetString("notes")
		}

		if err := appInstance.DraftService.SaveClient(ctx, client); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}

		fmt.Printf("✓ Client updated: %s\n", client.Name)
		return nil
	},
}

var clientsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a client",
	Long:  `Delete a client. Refused while any project or invoice still references it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := domain.ID(args[0])

		client, err := appInstance.ClientRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
		if client == nil {
			return fmt.Errorf("client not found")
		}

		if err := appInstance.DraftService.DeleteClient(ctx, id); err != nil {
			if errors.Is(err, service.ErrHasReferences) {
				return fmt.Errorf("cannot delete %s: %w", client.Name, err)
			}
			return fmt.Errorf("failed to delete client: %w", err)
		}

		fmt.Printf("✓ Client deleted: %s\n", client.Name)
		return nil
	},
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsCmd.AddCommand(clientsEditCmd)
	clientsCmd.AddCommand(clientsDeleteCmd)

	// Add flags
	clientsAddCmd.Flags().String("email", "", "Client email (required)")
	clientsAddCmd.MarkFlagRequired("email")
	clientsAddCmd.Flags().String("company", "", "Company name")
	clientsAddCmd.Flags().String("phone", "", "Phone number (10 digits)")
	clientsAddCmd.Flags().String("address", "", "Postal address")
	clientsAddCmd.Flags().String("notes", "", "Notes about the client")

	// Edit flags
	clientsEditCmd.Flags().String("name", "", "New name")
	clientsEditCmd.Flags().String("company", "", "New company")
	clientsEditCmd.Flags().String("email", "", "New email")
	clientsEditCmd.Flags().String("phone", "", "New phone number")
	clientsEditCmd.Flags().String("address", "", "New address")
	clientsEditCmd.Flags().String("notes", "", "New notes")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
