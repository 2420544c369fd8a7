package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andy/clientdesk/internal/domain"
	"github.com/andy/clientdesk/internal/service"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
	Long:  `List, add, edit, and delete projects. Every project is linked to one or more clients.`,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		projects, err := appInstance.ProjectRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found")
			return nil
		}

		clients, err := appInstance.ClientRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		names := make(map[domain.ID]string, len(clients))
		for _, c := range clients {
			names[c.ID] = c.Name
		}

		// Print table header
		fmt.Printf("%-8s %-28s %-25s %-13s %12s\n", "ID", "Title", "Clients", "Status", "Amount")
		fmt.Println("--------------------------------------------------------------------------------------------")

		// Print projects
		for _, project := range projects {
			roster := make([]string, 0, len(project.ClientIDs))
			for _, cid := range project.ClientIDs {
				name := names[cid]
				if name == "" {
					name = "#" + cid.String()
				}
				roster = append(roster, name)
			}

			fmt.Printf("%-8s %-28s %-25s %-13s %12.2f\n",
				project.ID,
				truncate(project.Title, 28),
				truncate(strings.Join(roster, ", "), 25),
				project.Status.Label(),
				float64(project.Amount),
			)
		}

		fmt.Printf("\nTotal: %d project(s)\n", len(projects))
		return nil
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientIDs, _ := cmd.Flags().GetStringSlice("clients")
		amount, _ := cmd.Flags().GetFloat64("amount")
		statusStr, _ := cmd.Flags().GetString("status")
		description, _ := cmd.Flags().GetString("description")

		project := domain.NewProject(args[0], toIDs(clientIDs))
		project.Amount = domain.Amount(amount)
		project.Description = description
		if statusStr != "" {
			project.Status = domain.ProjectStatus(statusStr)
		}

		if startStr, _ := cmd.Flags().GetString("start"); startStr != "" {
			start, err := parseDate(startStr)
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			project.StartDate = start
		}
		if endStr, _ := cmd.Flags().GetString("end"); endStr != "" {
			end, err := parseDate(endStr)
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}
			project.EndDate = end
		}

		if err := appInstance.DraftService.SaveProject(ctx, project); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Project created: %s (ID: %s)\n", project.Title, project.ID)
		fmt.Printf("  Clients: %d  Amount: %.2f\n", len(project.ClientIDs), float64(project.Amount))
		return nil
	},
}

var projectsEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit an existing project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		project, err := appInstance.ProjectRepo.GetByID(ctx, domain.ID(args[0]))
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}
		if project == nil {
			return fmt.Errorf("project not found")
		}

		if cmd.Flags().Changed("title") {
			project.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("clients") {
			clientIDs, _ := cmd.Flags().GetStringSlice("clients")
			project.ClientIDs = toIDs(clientIDs)
		}
		if cmd.Flags().Changed("amount") {
			amount, _ := cmd.Flags().GetFloat64("amount")
			project.Amount = domain.Amount(amount)
		}
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			project.Status = domain.ProjectStatus(statusStr)
		}
		if cmd.Flags().Changed("description") {
			project.Description, _ = cmd.Flags().GetString("description")
		}

		if err := appInstance.DraftService.SaveProject(ctx, project); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		fmt.Printf("✓ Project updated: %s\n", project.Title)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a project",
	Long:  `Delete a project. Refused while any invoice still references it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := domain.ID(args[0])

		project, err := appInstance.ProjectRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}
		if project == nil {
			return fmt.Errorf("project not found")
		}

		if err := appInstance.DraftService.DeleteProject(ctx, id); err != nil {
			if errors.Is(err, service.ErrHasReferences) {
				return fmt.Errorf("cannot delete %s: %w", project.Title, err)
			}
			return fmt.Errorf("failed to delete project: %w", err)
		}

		fmt.Printf("✓ Project deleted: %s\n", project.Title)
		return nil
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsEditCmd)
	projectsCmd.AddCommand(projectsDeleteCmd)

	// Add flags
	projectsAddCmd.Flags().StringSlice("clients", nil, "Client IDs (required, comma-separated)")
	projectsAddCmd.MarkFlagRequired("clients")
	projectsAddCmd.Flags().Float64("amount", 0, "Project amount (required)")
	projectsAddCmd.MarkFlagRequired("amount")
	projectsAddCmd.Flags().String("status", "", "Status (not-started, in-progress, completed, on-hold)")
	projectsAddCmd.Flags().String("description", "", "Project description")
	projectsAddCmd.Flags().String("start", "", "Start date (YYYY-MM-DD)")
	projectsAddCmd.Flags().String("end", "", "End date (YYYY-MM-DD)")

	// Edit flags
	projectsEditCmd.Flags().String("title", "", "New title")
	projectsEditCmd.Flags().StringSlice("clients", nil, "New client IDs (comma-separated)")
	projectsEditCmd.Flags().Float64("amount", 0, "New amount")
	projectsEditCmd.Flags().String("status", "", "New status")
	projectsEditCmd.Flags().String("description", "", "New description")
}

func toIDs(raw []string) []domain.ID {
	ids := make([]domain.ID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			ids = append(ids, domain.ID(s))
		}
	}
	return ids
}

// parseDate parses a date string in various formats
func parseDate(s string) (time.Time, error) {
	switch s {
	case "today":
		return time.Now().Truncate(24 * time.Hour), nil
	case "yesterday":
		return time.Now().Add(-24 * time.Hour).Truncate(24 * time.Hour), nil
	default:
		// Try YYYY-MM-DD format
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("expected format: YYYY-MM-DD, 'today', or 'yesterday'")
		}
		return t, nil
	}
}
