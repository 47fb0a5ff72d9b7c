package mcp

import (
	"github.com/custodia-labs/tally/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tally counts keywords in text and documents.
	Tally driving.TallyService

	// Taxonomy resolves and lists taxonomies.
	Taxonomy driving.TaxonomyService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tally == nil {
		return ErrMissingTallyService
	}
	if p.Taxonomy == nil {
		return ErrMissingTaxonomyService
	}
	return nil
}
