// Package plaintext provides the fallback Normaliser for text documents.
package plaintext

import (
	"context"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "plaintext"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/tab-separated-values",
		"text/markdown",
		"text/yaml",
		"text/toml",
		"text/html",
		"text/xml",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise converts a raw document to a normalised document.
// Invalid UTF-8 sequences are replaced and a leading byte order mark is
// dropped; the text is otherwise passed through unchanged.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content := strings.ToValidUTF8(string(raw.Content), "\uFFFD")
	content = strings.TrimPrefix(content, "\uFEFF")

	return docmeta.Build(raw, "text", docmeta.Title(raw), content), nil
}
