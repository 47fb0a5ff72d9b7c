package domain

import (
	"fmt"
	"strings"
)

// DefaultTaxonomyName names the built-in taxonomy shipped with the binary.
const DefaultTaxonomyName = "default"

// Term is a canonical search term and the alias strings counted toward it.
// Aliases keep their configured order and may repeat; a repeated alias is
// matched and reported once per occurrence in the list.
type Term struct {
	// Name is the canonical term, used as the display label.
	Name string `json:"term" yaml:"term"`

	// Aliases are literal strings matched as whole words.
	Aliases []string `json:"aliases" yaml:"aliases"`
}

// Taxonomy maps canonical terms to their aliases.
// Term order is significant: it determines presentation order and is
// never re-sorted.
type Taxonomy struct {
	// Name identifies a stored taxonomy. Empty for ad-hoc taxonomies.
	Name string `json:"name,omitempty"`

	// Terms are the canonical terms in presentation order.
	Terms []Term `json:"terms"`
}

// Len returns the number of canonical terms.
func (t Taxonomy) Len() int {
	return len(t.Terms)
}

// TermNames returns the canonical term names in order.
func (t Taxonomy) TermNames() []string {
	names := make([]string, len(t.Terms))
	for i := range t.Terms {
		names[i] = t.Terms[i].Name
	}
	return names
}

// AliasCount returns the total number of aliases across all terms.
func (t Taxonomy) AliasCount() int {
	n := 0
	for i := range t.Terms {
		n += len(t.Terms[i].Aliases)
	}
	return n
}

// Validate checks the structural shape of the taxonomy.
// A taxonomy needs at least one term and every term needs a unique,
// non-blank name. Alias content is not inspected here; empty aliases are
// rejected by the matcher.
func (t Taxonomy) Validate() error {
	if len(t.Terms) == 0 {
		return fmt.Errorf("%w: no terms", ErrInvalidTaxonomy)
	}

	seen := make(map[string]struct{}, len(t.Terms))
	for i := range t.Terms {
		name := t.Terms[i].Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: term %d has no name", ErrInvalidTaxonomy, i+1)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: term %q appears more than once", ErrInvalidTaxonomy, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy so callers can modify it without touching t.
func (t Taxonomy) Clone() Taxonomy {
	out := Taxonomy{
		Name:  t.Name,
		Terms: make([]Term, len(t.Terms)),
	}
	for i := range t.Terms {
		out.Terms[i] = Term{Name: t.Terms[i].Name}
		if aliases := t.Terms[i].Aliases; aliases != nil {
			out.Terms[i].Aliases = append(make([]string, 0, len(aliases)), aliases...)
		}
	}
	return out
}

// TaxonomySummary describes a stored taxonomy without its terms.
type TaxonomySummary struct {
	Name    string `json:"name"`
	Terms   int    `json:"terms"`
	Aliases int    `json:"aliases"`
}

// Summary returns the listing view of the taxonomy.
func (t Taxonomy) Summary() TaxonomySummary {
	return TaxonomySummary{
		Name:    t.Name,
		Terms:   t.Len(),
		Aliases: t.AliasCount(),
	}
}
