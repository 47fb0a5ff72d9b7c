package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// csvHeader names the columns of CSV output.
var csvHeader = []string{"Index", "Search Term", "Total Occurrences", "Details"}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = cellStyle.Align(lipgloss.Right)
	zeroColour  = lipgloss.Color("241")
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// writeReport renders a report in the requested format.
func writeReport(w io.Writer, report *domain.Report, format domain.OutputFormat, matchedOnly bool) error {
	switch format {
	case domain.OutputJSON:
		return writeJSON(w, report)
	case domain.OutputCSV:
		return writeCSV(w, report.Table)
	default:
		return writeTable(w, report, matchedOnly)
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeCSV writes every row, zero totals included, under csvHeader.
func writeCSV(w io.Writer, t domain.ResultTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := []string{row.Index, row.Term, strconv.Itoa(row.Total), row.Detail}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTable(w io.Writer, report *domain.Report, matchedOnly bool) error {
	rows := report.Table.Rows
	if matchedOnly {
		rows = report.Table.Matched()
	}

	title := report.Document.Title
	if title == "" {
		title = report.Document.URI
	}
	taxonomyName := report.Taxonomy
	if taxonomyName == "" {
		taxonomyName = "(inline)"
	}
	fmt.Fprintf(w, "Document: %s\n", title)
	fmt.Fprintf(w, "Taxonomy: %s\n\n", taxonomyName)

	if len(rows) == 0 {
		fmt.Fprintln(w, "No matches found.")
	} else {
		fmt.Fprintln(w, resultTable(rows).Render())
	}

	_, err := fmt.Fprintf(w, "\nTotal Occurrences: %d\n", report.Table.GrandTotal)
	return err
}

func resultTable(rows []domain.ResultRow) *table.Table {
	data := make([][]string, len(rows))
	for i, row := range rows {
		data[i] = []string{row.Index, row.Term, strconv.Itoa(row.Total), row.Detail}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(csvHeader...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col == 2 {
				style = totalStyle
			}
			if row >= 0 && row < len(rows) && rows[row].Total == 0 {
				style = style.Foreground(zeroColour)
			}
			return style
		})
}
