// Package cli implements the rollcall CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rollcall-io/rollcall/internal/config"
)

// Global flags.
var (
	flagConfig  string
	flagBackend string
	flagName    string
)

var rootCmd = &cobra.Command{
	Use:   "rollcall",
	Short: "Record employee login and logoff times",
	Long: `Rollcall records login/logoff timestamps for an employee and shows the
accumulated attendance log.

Without a subcommand it opens the interactive form. Records go to a local CSV
journal or to a shared roster (Google Sheets, Postgres or an .xlsx workbook),
depending on ~/.rollcall/settings.yaml.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runTUI,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file (default $"+config.ConfigEnvVar+" or ~/.rollcall/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "override the configured backend (local|remote)")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "employee name (default: settings employee)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoffCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(trayCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging sends the standard logger to ~/.rollcall/rollcall.log so it
// never mixes with command output or the TUI.
func setupLogging(cmd *cobra.Command, args []string) error {
	if _, err := config.SetupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, styleWarning.Render("Warning:")+" logging to stderr: "+err.Error())
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
