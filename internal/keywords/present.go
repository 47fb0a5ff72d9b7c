package keywords

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// ColumnIndex returns the spreadsheet-style label for a 1-based position:
// A..Z, then AA, AB, ... This is bijective base-26, which has no zero
// digit, so n is decremented before every digit is taken.
// Positions below 1 have no label.
func ColumnIndex(n int) string {
	if n < 1 {
		return ""
	}

	var buf []byte
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// FormatDetail renders alias counts as "alias: count" pairs joined by
// ", ", skipping aliases without matches. With no positive count it
// returns domain.NoMatchesDetail.
func FormatDetail(matches []domain.AliasCount) string {
	var b strings.Builder
	for _, m := range matches {
		if m.Count <= 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.Alias)
		b.WriteString(": ")
		b.WriteString(strconv.Itoa(m.Count))
	}

	if b.Len() == 0 {
		return domain.NoMatchesDetail
	}
	return b.String()
}

// Present turns term results into table rows, indexed in the order given.
func Present(results []domain.TermResult) domain.ResultTable {
	table := domain.ResultTable{
		Rows: make([]domain.ResultRow, len(results)),
	}

	for i := range results {
		table.Rows[i] = domain.ResultRow{
			Index:  ColumnIndex(i + 1),
			Term:   results[i].Term,
			Total:  results[i].Total,
			Detail: FormatDetail(results[i].Matches),
		}
		table.GrandTotal += results[i].Total
	}

	return table
}

// Count aggregates text against the taxonomy and presents the result.
func Count(text string, tax domain.Taxonomy) (domain.ResultTable, error) {
	results, err := Aggregate(text, tax)
	if err != nil {
		return domain.ResultTable{}, err
	}
	return Present(results), nil
}
