package driven

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// NormaliserRegistry selects the appropriate normaliser for a document.
// It maintains a priority-ordered list of normalisers per MIME type.
type NormaliserRegistry interface {
	// Normalise extracts text using the highest priority normaliser for
	// raw.MIMEType. Returns domain.ErrUnsupportedType when none matches.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
