package normalisers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/logger"
	"github.com/custodia-labs/tally/internal/normalisers/docx"
	"github.com/custodia-labs/tally/internal/normalisers/eml"
	"github.com/custodia-labs/tally/internal/normalisers/html"
	"github.com/custodia-labs/tally/internal/normalisers/markdown"
	"github.com/custodia-labs/tally/internal/normalisers/pdf"
	"github.com/custodia-labs/tally/internal/normalisers/plaintext"
)

// Verify interface compliance.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps MIME types to normalisers ordered by priority.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byMIME map[string][]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byMIME: make(map[string][]driven.Normaliser)}
}

// NewDefaultRegistry creates a registry with every built-in normaliser.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(pdf.New())
	r.Register(html.New())
	r.Register(docx.New())
	r.Register(markdown.New())
	r.Register(eml.New())
	r.Register(plaintext.New())
	return r
}

// Register adds a normaliser for each of its MIME types.
// Among equal priorities the earlier registration wins.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mimeType := range n.SupportedMIMETypes() {
		list := append(r.byMIME[mimeType], n)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.byMIME[mimeType] = list
	}
}

// Lookup returns the preferred normaliser for a MIME type.
func (r *Registry) Lookup(mimeType string) (driven.Normaliser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.byMIME[mimeType]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// Normalise extracts text with the preferred normaliser for raw.MIMEType.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	n, ok := r.Lookup(raw.MIMEType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.MIMEType)
	}

	logger.Debug("normalising %s (%s, %d bytes) with %s", raw.URI, raw.MIMEType, len(raw.Content), n.Name())
	return n.Normalise(ctx, raw)
}

// SupportedMIMETypes returns every registered MIME type, sorted.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.byMIME))
	for mimeType := range r.byMIME {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}
