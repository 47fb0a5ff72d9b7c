package domain

// NoMatchesDetail is the detail text for a term with no positive alias count.
const NoMatchesDetail = "No matches found"

// AliasCount pairs an alias with its whole-word occurrence count.
type AliasCount struct {
	Alias string `json:"alias"`
	Count int    `json:"count"`
}

// TermResult holds the counts for one canonical term.
type TermResult struct {
	// Term is the canonical term name.
	Term string `json:"term"`

	// Total is the sum of every alias count for the term,
	// zero-count aliases included.
	Total int `json:"total"`

	// Matches lists aliases with a positive count, in alias order.
	Matches []AliasCount `json:"matches,omitempty"`
}

// ResultRow is one rendered row of the result table.
// It is derived entirely from a TermResult and its taxonomy position.
type ResultRow struct {
	// Index is the spreadsheet-style position label (A, B, ..., AA).
	Index string `json:"index"`

	// Term is the canonical term name.
	Term string `json:"term"`

	// Total is the total occurrence count for the term.
	Total int `json:"total"`

	// Detail is "alias: count" pairs or NoMatchesDetail.
	Detail string `json:"detail"`
}

// ResultTable is the ordered output of a count, ready for any renderer.
type ResultTable struct {
	// Rows are in taxonomy order, one per canonical term.
	Rows []ResultRow `json:"rows"`

	// GrandTotal is the sum of all row totals.
	GrandTotal int `json:"grand_total"`
}

// Matched returns the rows with a positive total.
func (t ResultTable) Matched() []ResultRow {
	rows := make([]ResultRow, 0, len(t.Rows))
	for i := range t.Rows {
		if t.Rows[i].Total > 0 {
			rows = append(rows, t.Rows[i])
		}
	}
	return rows
}
