package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/core/ports/driving"
	"github.com/custodia-labs/tally/internal/keywords"
	"github.com/custodia-labs/tally/internal/logger"
)

// Ensure TallyService implements the interface.
var _ driving.TallyService = (*TallyService)(nil)

// TallyService extracts document text and counts taxonomy keywords in it.
type TallyService struct {
	normalisers driven.NormaliserRegistry
	cleanup     driven.PostProcessorRegistry
	settings    driving.SettingsService
}

// NewTallyService creates a new tally service.
// cleanup and settings may be nil: without settings the defaults apply,
// and without a cleanup registry extracted text is never rewritten.
func NewTallyService(
	normalisers driven.NormaliserRegistry,
	cleanup driven.PostProcessorRegistry,
	settings driving.SettingsService,
) *TallyService {
	return &TallyService{
		normalisers: normalisers,
		cleanup:     cleanup,
		settings:    settings,
	}
}

// Count counts the taxonomy's aliases in already extracted text.
// Rows follow taxonomy order and include terms with no matches.
func (s *TallyService) Count(ctx context.Context, text string, tax domain.Taxonomy) (*domain.ResultTable, error) {
	settings, err := s.currentSettings(domain.CountOptions{})
	if err != nil {
		return nil, err
	}
	return s.count(ctx, text, tax, settings.Workers)
}

// CountDocument extracts the document's text and counts it using the
// configured workers and cleanup steps.
func (s *TallyService) CountDocument(
	ctx context.Context, raw *domain.RawDocument, tax domain.Taxonomy,
) (*domain.Report, error) {
	return s.CountDocumentWith(ctx, raw, tax, domain.CountOptions{})
}

// CountDocumentWith extracts the document's text, runs the cleanup steps
// and counts the result. The report carries the document metadata without
// its content.
func (s *TallyService) CountDocumentWith(
	ctx context.Context, raw *domain.RawDocument, tax domain.Taxonomy, opts domain.CountOptions,
) (*domain.Report, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.normalisers == nil {
		return nil, fmt.Errorf("%w: no normalisers configured", domain.ErrUnsupportedType)
	}

	settings, err := s.currentSettings(opts)
	if err != nil {
		return nil, err
	}

	logger.Section("Count")
	logger.Debug("Document: %s (%s, %d bytes)", raw.URI, raw.MIMEType, len(raw.Content))

	// Fail on a bad taxonomy before paying for extraction.
	if err := tax.Validate(); err != nil {
		return nil, err
	}

	doneExtract := logger.Stage("extract")
	doc, err := s.normalisers.Normalise(ctx, raw)
	doneExtract()
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", displayURI(raw.URI), err)
	}

	if len(settings.Cleanup) > 0 {
		if err := s.runCleanup(ctx, doc, settings.Cleanup); err != nil {
			return nil, err
		}
	}

	table, err := s.count(ctx, doc.Content, tax, settings.Workers)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		Document: *doc,
		Taxonomy: tax.Name,
		Table:    *table,
	}
	if report.Document.Metadata == nil {
		report.Document.Metadata = make(map[string]any)
	}
	report.Document.Metadata["characters"] = utf8.RuneCountInString(doc.Content)
	report.Document.Content = ""

	return report, nil
}

// SupportedMIMETypes lists the document types CountDocument accepts.
func (s *TallyService) SupportedMIMETypes() []string {
	if s.normalisers == nil {
		return nil
	}
	return s.normalisers.SupportedMIMETypes()
}

func (s *TallyService) count(
	ctx context.Context, text string, tax domain.Taxonomy, workers int,
) (*domain.ResultTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aggregator, err := keywords.NewAggregator(keywords.WithWorkers(workers))
	if err != nil {
		return nil, err
	}
	defer aggregator.Release()

	logger.Debug("Taxonomy %q: %d terms, %d aliases, %d workers",
		tax.Name, tax.Len(), tax.AliasCount(), aggregator.Workers())

	done := logger.Stage("aggregate")
	results, err := aggregator.Aggregate(ctx, text, tax)
	done()
	if err != nil {
		return nil, err
	}

	table := keywords.Present(results)
	logger.Debug("Rows: %d, matched: %d, total occurrences: %d",
		len(table.Rows), len(table.Matched()), table.GrandTotal)

	return &table, nil
}

func (s *TallyService) runCleanup(ctx context.Context, doc *domain.Document, names []string) error {
	if s.cleanup == nil {
		return fmt.Errorf("%w: cleanup steps requested but none are available", domain.ErrInvalidInput)
	}

	pipeline, err := s.cleanup.Pipeline(names...)
	if err != nil {
		return err
	}

	done := logger.Stage("cleanup")
	defer done()
	return pipeline.Process(ctx, doc)
}

func (s *TallyService) currentSettings(opts domain.CountOptions) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.settings != nil {
		current, err := s.settings.Get()
		if err != nil {
			return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
		}
		settings = *current
	}
	return opts.Apply(settings), nil
}

func displayURI(uri string) string {
	if uri == "" || uri == "-" {
		return "stdin"
	}
	return uri
}
