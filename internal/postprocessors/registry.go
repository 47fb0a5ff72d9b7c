package postprocessors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.PostProcessorRegistry = (*Registry)(nil)

// BuilderFunc creates a PostProcessor.
type BuilderFunc func() driven.PostProcessor

// Registry maps processor names to their builders.
// It allows pipelines to be assembled from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new processor registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a processor builder to the registry.
// Name should be unique and match the processor's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a processor by name.
func (r *Registry) Build(name string) (driven.PostProcessor, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown cleanup step %q (available: %s)",
			domain.ErrInvalidInput, name, strings.Join(r.Names(), ", "))
	}
	return builder(), nil
}

// Has returns true if a processor with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered processor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pipeline builds a pipeline running the named processors in order.
func (r *Registry) Pipeline(names ...string) (driven.PostProcessorPipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		processor, err := r.Build(name)
		if err != nil {
			return nil, err
		}
		p.Add(processor)
	}
	return p, nil
}

// ParseList splits a comma-separated list of processor names,
// dropping blanks and surrounding spaces.
func ParseList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
