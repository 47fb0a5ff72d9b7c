package driven

import (
	"context"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// PostProcessor rewrites extracted text before it is counted
// (e.g., joining hyphenated line breaks, collapsing whitespace).
type PostProcessor interface {
	// Name returns the processor name used in configuration.
	Name() string

	// Process returns the rewritten content.
	Process(ctx context.Context, content string) (string, error)
}

// PostProcessorPipeline chains PostProcessors.
type PostProcessorPipeline interface {
	// Process runs doc.Content through every processor in order.
	Process(ctx context.Context, doc *domain.Document) error

	// Names returns the processor names in execution order.
	Names() []string
}

// PostProcessorRegistry builds pipelines from processor names.
type PostProcessorRegistry interface {
	// Pipeline builds a pipeline running the named processors in order.
	// Returns domain.ErrInvalidInput for an unknown name.
	Pipeline(names ...string) (PostProcessorPipeline, error)

	// Has reports whether a processor is registered under name.
	Has(name string) bool

	// Names returns the registered processor names, sorted.
	Names() []string
}
