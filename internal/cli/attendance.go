package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rollcall-io/rollcall/internal/attendance"
)

var loginCmd = &cobra.Command{
	Use:   "login [name]",
	Short: "Record a login",
	Long: `Record a login for the named employee (default: --name or the settings employee).

With the local backend the session stays open until 'rollcall logoff', even
across separate invocations. With the remote backend the login time is written
to the employee's roster row immediately.`,
	RunE: runLogin,
}

var logoffCmd = &cobra.Command{
	Use:   "logoff [name]",
	Short: "Record a logoff",
	Long: `Record a logoff for the named employee.

With the local backend this closes the open session and appends one row to the
CSV journal. With the remote backend it overwrites the logoff cell of the
employee's roster row.`,
	RunE: runLogoff,
}

var statusCmd = &cobra.Command{
	Use:   "status [name]",
	Short: "Show the current session",
	RunE:  runStatus,
}

func runLogin(cmd *cobra.Command, args []string) error {
	return runAction(cmd.Context(), args, func(ctx context.Context, b attendance.Backend, name string) (attendance.Receipt, error) {
		return b.Login(ctx, name)
	})
}

func runLogoff(cmd *cobra.Command, args []string) error {
	return runAction(cmd.Context(), args, func(ctx context.Context, b attendance.Backend, name string) (attendance.Receipt, error) {
		return b.Logoff(ctx, name)
	})
}

type action func(ctx context.Context, b attendance.Backend, name string) (attendance.Receipt, error)

func runAction(ctx context.Context, args []string, do action) error {
	b, s, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	sess, err := restoreCheckpoint(b)
	if err != nil {
		return err
	}

	receipt, actErr := do(ctx, b, employeeName(args, s))

	// The session may have changed even when the action failed (logoff
	// closes it before the journal write).
	if err := syncCheckpoint(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if actErr != nil {
		return explain(actErr, sess)
	}

	fmt.Println(styleSuccess.Render(receipt.Message()))
	return nil
}

// explain adds a hint to the errors a user can act on.
func explain(err error, sess *attendance.Session) error {
	switch {
	case errors.Is(err, attendance.ErrMissingName):
		return fmt.Errorf("%w (pass a name, use --name, or set one with 'rollcall init')", err)
	case errors.Is(err, attendance.ErrAlreadyLoggedIn) && sess != nil:
		if start, ok := sess.StartedAt(); ok {
			return fmt.Errorf("%w since %s", err, start.Format(attendance.TimeLayout))
		}
	}
	return err
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	b, s, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	name := employeeName(args, s)
	fmt.Printf("  %s %s\n", styleLabel.Render("Backend "), styleValue.Render(b.Describe()))
	if name != "" {
		fmt.Printf("  %s %s\n", styleLabel.Render("Employee"), styleValue.Render(name))
	}

	sess, err := restoreCheckpoint(b)
	if err != nil {
		return err
	}
	if sess != nil {
		if start, ok := sess.StartedAt(); ok {
			fmt.Printf("  %s %s\n", styleLabel.Render("Session "),
				styleSuccess.Render("logged in since "+start.Format(attendance.DateTimeLayout)))
		} else {
			fmt.Printf("  %s %s\n", styleLabel.Render("Session "), styleHint.Render("logged out"))
		}
		return nil
	}

	// Remote: the roster row is the only state there is.
	table, err := b.Logs(ctx)
	if err != nil {
		return err
	}
	for _, row := range table.Rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == name {
			for i := 1; i < len(row) && i < len(table.Columns); i++ {
				v := row[i]
				if v == "" {
					v = "-"
				}
				fmt.Printf("  %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", strings.TrimSuffix(table.Columns[i], " Time"))), styleValue.Render(v))
			}
			return nil
		}
	}
	if name != "" {
		fmt.Printf("  %s\n", styleHint.Render("No roster entry for "+name))
	}
	return nil
}
