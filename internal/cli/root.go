package cli

import (
	"github.com/andy/clientdesk/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "clientdesk",
	Short: "A CLI client and invoice manager",
	Long: `Clientdesk manages clients, projects, and invoices against a REST backend.

By default, running clientdesk without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(tuiCmd)
}
