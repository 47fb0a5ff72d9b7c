package driving

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// TaxonomyService manages taxonomies for counting.
type TaxonomyService interface {
	// Resolve turns a reference into a taxonomy. An empty reference uses
	// the configured default, then the built-in taxonomy. A reference
	// naming an existing file is loaded from disk; anything else is looked
	// up in the store.
	Resolve(ctx context.Context, ref string) (*domain.Taxonomy, error)

	// Import loads a taxonomy file and stores it under name.
	Import(ctx context.Context, name, path string) (*domain.Taxonomy, error)

	// Save validates and stores a taxonomy under tax.Name.
	Save(ctx context.Context, tax domain.Taxonomy) error

	// Get retrieves a stored taxonomy by name.
	Get(ctx context.Context, name string) (*domain.Taxonomy, error)

	// List returns summaries of stored taxonomies.
	List(ctx context.Context) ([]domain.TaxonomySummary, error)

	// Remove deletes a stored taxonomy.
	Remove(ctx context.Context, name string) error

	// Validate loads a taxonomy file without storing it.
	Validate(ctx context.Context, path string) (*domain.Taxonomy, error)
}
