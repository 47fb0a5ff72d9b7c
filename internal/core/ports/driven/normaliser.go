package driven

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// Normaliser extracts plain text from raw document bytes.
// Each normaliser handles specific MIME types (e.g., PDF, HTML).
type Normaliser interface {
	// Name identifies the normaliser in logs and document metadata.
	Name() string

	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts the text of a raw document.
	// Returns domain.ErrInvalidInput for a nil document and
	// domain.ErrExtractionFailed when the bytes cannot be read as the format.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
