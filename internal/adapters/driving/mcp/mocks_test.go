package mcp

import (
	"context"
	"testing"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// mockTallyService is a mock implementation of driving.TallyService.
type mockTallyService struct {
	table  *domain.ResultTable
	report *domain.Report
	err    error

	gotText string
	gotRaw  *domain.RawDocument
	gotTax  domain.Taxonomy
}

func (m *mockTallyService) Count(_ context.Context, text string, tax domain.Taxonomy) (*domain.ResultTable, error) {
	m.gotText = text
	m.gotTax = tax
	return m.table, m.err
}

func (m *mockTallyService) CountDocument(
	ctx context.Context, raw *domain.RawDocument, tax domain.Taxonomy,
) (*domain.Report, error) {
	return m.CountDocumentWith(ctx, raw, tax, domain.CountOptions{})
}

func (m *mockTallyService) CountDocumentWith(
	_ context.Context, raw *domain.RawDocument, tax domain.Taxonomy, _ domain.CountOptions,
) (*domain.Report, error) {
	m.gotRaw = raw
	m.gotTax = tax
	return m.report, m.err
}

func (m *mockTallyService) SupportedMIMETypes() []string {
	return []string{"text/plain"}
}

// mockTaxonomyService is a mock implementation of driving.TaxonomyService.
type mockTaxonomyService struct {
	taxonomies map[string]domain.Taxonomy
	summaries  []domain.TaxonomySummary
	err        error

	resolvedRef string
}

func (m *mockTaxonomyService) Resolve(_ context.Context, ref string) (*domain.Taxonomy, error) {
	m.resolvedRef = ref
	if m.err != nil {
		return nil, m.err
	}
	if ref == "" {
		ref = "default"
	}
	tax, ok := m.taxonomies[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tax, nil
}

func (m *mockTaxonomyService) Import(_ context.Context, _, _ string) (*domain.Taxonomy, error) {
	return nil, m.err
}

func (m *mockTaxonomyService) Save(_ context.Context, _ domain.Taxonomy) error {
	return m.err
}

func (m *mockTaxonomyService) Get(_ context.Context, name string) (*domain.Taxonomy, error) {
	if m.err != nil {
		return nil, m.err
	}
	tax, ok := m.taxonomies[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tax, nil
}

func (m *mockTaxonomyService) List(_ context.Context) ([]domain.TaxonomySummary, error) {
	return m.summaries, m.err
}

func (m *mockTaxonomyService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockTaxonomyService) Validate(_ context.Context, _ string) (*domain.Taxonomy, error) {
	return nil, m.err
}

func financeTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		Name: "finance",
		Terms: []domain.Term{
			{Name: "Revenue", Aliases: []string{"revenue", "sales"}},
			{Name: "Debt", Aliases: []string{"debt"}},
		},
	}
}

func newTestServer(t *testing.T, tally *mockTallyService, tax *mockTaxonomyService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Tally: tally, Taxonomy: tax})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}
