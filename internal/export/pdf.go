package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/rollcall-io/rollcall/internal/models"
)

// Report describes a printable attendance report.
type Report struct {
	Title     string
	Source    string // backend description
	Generated time.Time
	Table     *models.LogTable
}

// PDF renders the report as an A4 document with one table row per log entry.
func PDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	title := r.Title
	if title == "" {
		title = "Attendance Report"
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", r.Generated.Format("02-Jan-2006 15:04")), "", 1, "C", false, 0, "")
	if r.Source != "" {
		pdf.CellFormat(190, 6, fmt.Sprintf("Source: %s", r.Source), "", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	table := r.Table
	if table == nil || table.Missing || len(table.Columns) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(190, 8, "No attendance log file found.", "", 1, "C", false, 0, "")
		return output(pdf)
	}

	widths := columnWidths(len(table.Columns), 190)
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		for i, col := range table.Columns {
			pdf.CellFormat(widths[i], 7, col, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for n, row := range table.Rows {
		if pdf.GetY()+6 > pageHeight-bottom-15 {
			pdf.AddPage()
			header()
		}
		fill := n%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for i := range table.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			align := "C"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 7, fmt.Sprintf("Total entries: %d", table.Len()), "", 1, "R", false, 0, "")

	return output(pdf)
}

// columnWidths gives the first (name) column a double share of total.
func columnWidths(n int, total float64) []float64 {
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}
	unit := total / float64(n+1)
	for i := range widths {
		widths[i] = unit
	}
	widths[0] = 2 * unit
	return widths
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
