package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or update the rollcall settings file",
	Long: `Create or update ~/.rollcall/settings.yaml (or the file given with --config).

This will prompt for:
  1. The employee name used by default
  2. The backend (local CSV journal or remote roster)
  3. The remote driver and its connection details`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.SettingsPath(flagConfig)
	if err != nil {
		return err
	}

	s := models.NewSettings()
	if config.FileExists(path) {
		if s, err = config.LoadSettings(path); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(os.Stdin)

	s.Employee = prompt(reader, "Employee name", s.Employee)
	if s.Backend, err = promptChoice(reader, "Backend", s.Backend, models.BackendLocal, models.BackendRemote); err != nil {
		return err
	}

	if s.Backend == models.BackendLocal {
		s.Local.Path = prompt(reader, "Journal file (empty for default)", s.Local.Path)
	} else {
		fmt.Println("\nRemote roster:")
		s.Remote.Driver, err = promptChoice(reader, "  Driver", s.Remote.Driver,
			models.DriverGoogleSheets, models.DriverPostgres, models.DriverXLSX)
		if err != nil {
			return err
		}
		switch s.Remote.Driver {
		case models.DriverGoogleSheets:
			s.Remote.Spreadsheet = prompt(reader, "  Spreadsheet", s.Remote.Spreadsheet)
			s.Remote.Credentials = prompt(reader, "  Credentials file", s.Remote.Credentials)
		case models.DriverPostgres:
			s.Remote.DSN = prompt(reader, "  Connection string", s.Remote.DSN)
		case models.DriverXLSX:
			s.Remote.Workbook = prompt(reader, "  Workbook file", s.Remote.Workbook)
		}
		s.Remote.Worksheet = prompt(reader, "  Worksheet", s.Remote.Worksheet)
	}

	if err := config.Validate(s); err != nil {
		return err
	}
	if err := config.SaveSettings(path, s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Println()
	fmt.Println(styleSuccess.Render("Settings written to " + path))
	fmt.Println(styleHint.Render("Next steps:"))
	fmt.Println("  - Run " + styleCommand.Render("rollcall") + " to open the form")
	fmt.Println("  - Run " + styleCommand.Render("rollcall login") + " / " + styleCommand.Render("rollcall logoff") + " from scripts")
	return nil
}

// prompt reads one line, falling back to def on empty input.
func prompt(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return response
}

// promptChoice asks until the answer is one of choices, giving up after three tries.
func promptChoice(reader *bufio.Reader, label, def string, choices ...string) (string, error) {
	full := fmt.Sprintf("%s (%s)", label, strings.Join(choices, "|"))
	for attempt := 0; attempt < 3; attempt++ {
		answer := strings.ToLower(prompt(reader, full, def))
		for _, c := range choices {
			if answer == c {
				return c, nil
			}
		}
		fmt.Println(styleWarning.Render("  Please answer one of: " + strings.Join(choices, ", ")))
	}
	return "", fmt.Errorf("no valid answer for %s", strings.ToLower(strings.TrimSpace(label)))
}
