package driving

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// TallyService counts taxonomy keywords in text and documents.
type TallyService interface {
	// Count counts the taxonomy's aliases in already extracted text.
	Count(ctx context.Context, text string, tax domain.Taxonomy) (*domain.ResultTable, error)

	// CountDocument extracts the document's text and counts it.
	CountDocument(ctx context.Context, raw *domain.RawDocument, tax domain.Taxonomy) (*domain.Report, error)

	// CountDocumentWith is CountDocument with per-call overrides of the
	// configured worker count and cleanup steps.
	CountDocumentWith(
		ctx context.Context, raw *domain.RawDocument, tax domain.Taxonomy, opts domain.CountOptions,
	) (*domain.Report, error)

	// SupportedMIMETypes lists the document types CountDocument accepts.
	SupportedMIMETypes() []string
}
