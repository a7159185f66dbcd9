package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rollcall-io/rollcall/internal/export"
	"github.com/rollcall-io/rollcall/internal/models"
)

var logsFormat string

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"show"},
	Short:   "Show the attendance log",
	RunE:    runLogs,
}

func init() {
	logsCmd.Flags().StringVarP(&logsFormat, "format", "f", "table", "output format (table|csv)")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsFormat != "table" && logsFormat != "csv" {
		return fmt.Errorf("unknown format %q (want table or csv)", logsFormat)
	}

	b, _, err := openBackend(cmd.Context())
	if err != nil {
		return err
	}
	defer b.Close()

	logTable, err := b.Logs(cmd.Context())
	if err != nil {
		return err
	}

	if logsFormat == "csv" {
		data, err := export.CSV(logTable)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	if logTable.Missing {
		fmt.Println(styleHint.Render("No attendance log file found."))
		return nil
	}
	if logTable.Len() == 0 {
		fmt.Println(styleHint.Render("No attendance records yet."))
		return nil
	}
	fmt.Println(renderLogTable(logTable))
	fmt.Println(styleHint.Render(fmt.Sprintf("%d entries from %s", logTable.Len(), b.Describe())))
	return nil
}

func renderLogTable(lt *models.LogTable) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(lt.Columns...).
		Rows(lt.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		}).
		String()
}
