// Package postprocessors provides text cleanup run between extraction and
// counting. Cleanup is opt-in: an empty pipeline leaves text untouched.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline chains multiple PostProcessors and runs them in order.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a new processing pipeline with the given processors.
// Processors are executed in the order provided.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{
		processors: processors,
	}
}

// Process runs the document content through all processors in order and
// records the applied processor names in doc.Metadata["cleanup"].
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", domain.ErrInvalidInput)
	}
	if len(p.processors) == 0 {
		return nil
	}

	content := doc.Content
	for _, processor := range p.processors {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		content, err = processor.Process(ctx, content)
		if err != nil {
			return fmt.Errorf("processor %s: %w", processor.Name(), err)
		}
	}

	doc.Content = content
	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["cleanup"] = p.Names()
	return nil
}

// Add appends a processor to the pipeline.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.processors = append(p.processors, processor)
}

// Len returns the number of processors in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, processor := range p.processors {
		names[i] = processor.Name()
	}
	return names
}
