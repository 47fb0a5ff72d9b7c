package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// Ensure TaxonomyStore implements the interface.
var _ driven.TaxonomyStore = (*TaxonomyStore)(nil)

// TaxonomyStore is an in-memory implementation of driven.TaxonomyStore.
// Stored taxonomies are deep copies, so callers cannot alter them after Save.
type TaxonomyStore struct {
	mu         sync.RWMutex
	taxonomies map[string]domain.Taxonomy
}

// NewTaxonomyStore creates a new in-memory taxonomy store.
func NewTaxonomyStore() *TaxonomyStore {
	return &TaxonomyStore{
		taxonomies: make(map[string]domain.Taxonomy),
	}
}

// Save stores a taxonomy under tax.Name.
func (s *TaxonomyStore) Save(_ context.Context, tax domain.Taxonomy) error {
	if strings.TrimSpace(tax.Name) == "" {
		return fmt.Errorf("%w: taxonomy name is required", domain.ErrInvalidInput)
	}
	if err := tax.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.taxonomies[tax.Name] = tax.Clone()
	return nil
}

// Get retrieves a taxonomy by name.
func (s *TaxonomyStore) Get(_ context.Context, name string) (*domain.Taxonomy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tax, ok := s.taxonomies[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := tax.Clone()
	return &out, nil
}

// List returns summaries of all taxonomies sorted by name.
func (s *TaxonomyStore) List(_ context.Context) ([]domain.TaxonomySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]domain.TaxonomySummary, 0, len(s.taxonomies))
	for _, tax := range s.taxonomies {
		summaries = append(summaries, tax.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries, nil
}

// Delete removes a taxonomy by name.
func (s *TaxonomyStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.taxonomies[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.taxonomies, name)
	return nil
}
