package taxonomy

import (
	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.TaxonomySource = (*FileSource)(nil)

// FileSource loads taxonomies from the local filesystem.
type FileSource struct{}

// NewFileSource creates a new file-backed taxonomy source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load reads the taxonomy file at path.
func (s *FileSource) Load(path string) (domain.Taxonomy, error) {
	return LoadFile(path)
}

// Default returns the built-in taxonomy.
func (s *FileSource) Default() domain.Taxonomy {
	return Default()
}
