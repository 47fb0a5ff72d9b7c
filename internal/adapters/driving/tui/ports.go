// Package tui provides an interactive terminal viewer for tally results.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driving"
)

// DocumentLoader reads the document being viewed. It is called on start
// and again on every recount so edits on disk show up.
type DocumentLoader func(ctx context.Context) (*domain.RawDocument, error)

// Ports aggregates everything the TUI needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Tally counts keywords in the document.
	Tally driving.TallyService

	// Document loads the raw document.
	Document DocumentLoader

	// Taxonomy is applied to every count.
	Taxonomy domain.Taxonomy

	// Options overrides settings for every count.
	Options domain.CountOptions
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Tally == nil {
		return ErrMissingTallyService
	}
	if p.Document == nil {
		return ErrMissingDocument
	}
	return p.Taxonomy.Validate()
}
