package services

import (
	"context"
	"errors"
	"sort"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockNormaliserRegistry implements driven.NormaliserRegistry for testing.
// It returns the raw content as text for every known MIME type.
type mockNormaliserRegistry struct {
	mimeTypes []string
	err       error
	calls     int
}

var _ driven.NormaliserRegistry = (*mockNormaliserRegistry)(nil)

func newMockNormaliserRegistry(mimeTypes ...string) *mockNormaliserRegistry {
	return &mockNormaliserRegistry{mimeTypes: mimeTypes}
}

func (m *mockNormaliserRegistry) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, mt := range m.mimeTypes {
		if mt == raw.MIMEType {
			return &domain.Document{
				ID:       "doc-1",
				URI:      raw.URI,
				Title:    "Quarterly report",
				Content:  string(raw.Content),
				Metadata: map[string]any{"mime_type": raw.MIMEType},
			}, nil
		}
	}
	return nil, domain.ErrUnsupportedType
}

func (m *mockNormaliserRegistry) Register(_ driven.Normaliser) {}

func (m *mockNormaliserRegistry) SupportedMIMETypes() []string {
	out := append([]string(nil), m.mimeTypes...)
	sort.Strings(out)
	return out
}

// mockTaxonomySource implements driven.TaxonomySource for testing.
type mockTaxonomySource struct {
	files   map[string]domain.Taxonomy
	builtin domain.Taxonomy
	loaded  []string
}

var _ driven.TaxonomySource = (*mockTaxonomySource)(nil)

func newMockTaxonomySource() *mockTaxonomySource {
	return &mockTaxonomySource{
		files: make(map[string]domain.Taxonomy),
		builtin: domain.Taxonomy{
			Name:  domain.DefaultTaxonomyName,
			Terms: []domain.Term{{Name: "Revenue", Aliases: []string{"revenue", "sales"}}},
		},
	}
}

func (m *mockTaxonomySource) Load(path string) (domain.Taxonomy, error) {
	m.loaded = append(m.loaded, path)
	tax, ok := m.files[path]
	if !ok {
		return domain.Taxonomy{}, domain.ErrNotFound
	}
	if err := tax.Validate(); err != nil {
		return domain.Taxonomy{}, err
	}
	return tax.Clone(), nil
}

func (m *mockTaxonomySource) Default() domain.Taxonomy {
	return m.builtin.Clone()
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Reset(_ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return nil }

func (m *mockSettingsService) ConfigPath() string { return ":memory:" }

// failingTaxonomyStore implements driven.TaxonomyStore with a fixed error.
type failingTaxonomyStore struct {
	err error
}

var _ driven.TaxonomyStore = (*failingTaxonomyStore)(nil)

func (f *failingTaxonomyStore) Save(_ context.Context, _ domain.Taxonomy) error { return f.err }

func (f *failingTaxonomyStore) Get(_ context.Context, _ string) (*domain.Taxonomy, error) {
	return nil, f.err
}

func (f *failingTaxonomyStore) List(_ context.Context) ([]domain.TaxonomySummary, error) {
	return nil, f.err
}

func (f *failingTaxonomyStore) Delete(_ context.Context, _ string) error { return f.err }

var errStorage = errors.New("storage unavailable")

func financeTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		Name: "finance",
		Terms: []domain.Term{
			{Name: "Revenue", Aliases: []string{"revenue", "sales"}},
			{Name: "Profit", Aliases: []string{"profit", "net income"}},
			{Name: "Debt", Aliases: []string{"debt"}},
		},
	}
}
