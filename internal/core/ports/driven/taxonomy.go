package driven

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// TaxonomySource reads taxonomies from files.
// The format is chosen from the file extension.
type TaxonomySource interface {
	// Load reads and validates the taxonomy at path.
	// Structural problems are reported as domain.ErrInvalidTaxonomy.
	Load(path string) (domain.Taxonomy, error)

	// Default returns the built-in taxonomy.
	Default() domain.Taxonomy
}

// TaxonomyStore persists named taxonomies.
// Term and alias order must survive a round trip.
type TaxonomyStore interface {
	// Save stores a taxonomy under tax.Name, replacing any existing one.
	Save(ctx context.Context, tax domain.Taxonomy) error

	// Get retrieves a taxonomy by name.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, name string) (*domain.Taxonomy, error)

	// List returns summaries of all stored taxonomies, sorted by name.
	List(ctx context.Context) ([]domain.TaxonomySummary, error)

	// Delete removes a taxonomy by name.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, name string) error
}
