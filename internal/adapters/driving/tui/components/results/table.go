// Package results provides the result table component for the TUI.
package results

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tally/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tally/internal/core/domain"
)

const (
	indexWidth   = 5
	totalWidth   = 7
	minTermWidth = 12
	minDetail    = 20
)

// Table shows result rows in a navigable bubbles table.
// Hiding zero rows changes only what is displayed.
type Table struct {
	styles   *styles.Styles
	model    table.Model
	rows     []domain.ResultRow
	visible  []domain.ResultRow
	hideZero bool
	width    int
	height   int
}

// New creates an empty result table.
func New(s *styles.Styles) *Table {
	if s == nil {
		s = styles.DefaultStyles()
	}

	t := &Table{
		styles: s,
		model: table.New(
			table.WithFocused(true),
			table.WithStyles(s.Table),
		),
		width:  80,
		height: 10,
	}
	t.layout()
	return t
}

// Update forwards navigation keys to the table.
func (t *Table) Update(msg tea.Msg) (*Table, tea.Cmd) {
	var cmd tea.Cmd
	t.model, cmd = t.model.Update(msg)
	return t, cmd
}

// View renders the table, or a notice when nothing is visible.
func (t *Table) View() string {
	if len(t.visible) == 0 {
		if len(t.rows) == 0 {
			return t.styles.Muted.Render("No results")
		}
		return t.styles.Muted.Render("No matches found.")
	}
	return t.model.View()
}

// SetRows replaces the rows. The cursor stays on the same term when it
// is still visible.
func (t *Table) SetRows(rows []domain.ResultRow) {
	current, ok := t.Selected()
	t.rows = rows
	t.refresh(current.Term, ok)
}

// Rows returns every row, hidden ones included.
func (t *Table) Rows() []domain.ResultRow {
	return t.rows
}

// Visible returns the rows currently displayed.
func (t *Table) Visible() []domain.ResultRow {
	return t.visible
}

// SetHideZero hides or shows rows with a zero total.
func (t *Table) SetHideZero(hide bool) {
	current, ok := t.Selected()
	t.hideZero = hide
	t.refresh(current.Term, ok)
}

// HideZero reports whether zero rows are hidden.
func (t *Table) HideZero() bool {
	return t.hideZero
}

// Selected returns the row under the cursor.
func (t *Table) Selected() (domain.ResultRow, bool) {
	i := t.model.Cursor()
	if i < 0 || i >= len(t.visible) {
		return domain.ResultRow{}, false
	}
	return t.visible[i], true
}

// Cursor returns the cursor position within the visible rows.
func (t *Table) Cursor() int {
	return t.model.Cursor()
}

// SetSize sets the space available to the table.
func (t *Table) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.layout()
}

func (t *Table) refresh(term string, keep bool) {
	if t.hideZero {
		t.visible = domain.ResultTable{Rows: t.rows}.Matched()
	} else {
		t.visible = t.rows
	}

	rows := make([]table.Row, len(t.visible))
	cursor := 0
	for i, row := range t.visible {
		rows[i] = table.Row{row.Index, row.Term, strconv.Itoa(row.Total), row.Detail}
		if keep && row.Term == term {
			cursor = i
		}
	}

	t.layout()
	t.model.SetRows(rows)
	t.model.SetCursor(cursor)
}

func (t *Table) layout() {
	termWidth := minTermWidth
	for _, row := range t.rows {
		if w := len([]rune(row.Term)); w > termWidth {
			termWidth = w
		}
	}

	// Four columns with one cell of padding on each side.
	detailWidth := t.width - indexWidth - termWidth - totalWidth - 8
	if detailWidth < minDetail {
		detailWidth = minDetail
	}

	t.model.SetColumns([]table.Column{
		{Title: "Index", Width: indexWidth},
		{Title: "Search Term", Width: termWidth},
		{Title: "Total", Width: totalWidth},
		{Title: "Details", Width: detailWidth},
	})

	height := t.height
	if height < 3 {
		height = 3
	}
	t.model.SetHeight(height)
	t.model.SetWidth(t.width)
}
