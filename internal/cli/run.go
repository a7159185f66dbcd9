package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/tray"
	"github.com/rollcall-io/rollcall/internal/tui"
)

var errNoTerminal = errors.New("the interactive form needs a terminal; use 'rollcall login', 'rollcall logoff' or 'rollcall logs'")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive form (default)",
	Long: `Open the interactive attendance form.

The session lives as long as the form: quitting while logged in discards the
open session, as with any local session that is never logged off.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var trayCmd = &cobra.Command{
	Use:   "tray",
	Short: "Run in the system tray",
	Long: `Run a system tray menu with Login, Logoff and the latest entries for the
configured employee (set with --name or 'rollcall init').`,
	Args: cobra.NoArgs,
	RunE: runTray,
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errNoTerminal
	}
	b, s, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	return tui.Run(b, s.Employee)
}

func runTray(cmd *cobra.Command, args []string) error {
	b, s, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}

	watchPath := ""
	if w, ok := b.(attendance.Watchable); ok {
		watchPath = w.WatchPath()
	}

	tray.Run(tray.NewState(b, s.Employee), watchPath, func() {
		_ = b.Close()
	})
	return nil
}
