package taxonomy

import (
	_ "embed"
	"fmt"

	"github.com/custodia-labs/tally/internal/core/domain"
)

//go:embed default.json
var defaultJSON []byte

// Default returns a copy of the built-in taxonomy.
func Default() domain.Taxonomy {
	tax, err := Decode(defaultJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: built-in taxonomy is invalid: %v", err))
	}
	tax.Name = domain.DefaultTaxonomyName
	return tax
}
