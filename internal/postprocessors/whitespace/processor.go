// Package whitespace collapses whitespace runs so that multi-word aliases
// match text wrapped across lines or padded by the extractor.
package whitespace

import (
	"context"
	"strings"
)

// Processor collapses whitespace.
type Processor struct {
	keepNewlines bool
}

// Option configures the whitespace processor.
type Option func(*Processor)

// WithKeepNewlines keeps line structure and only collapses spaces within a
// line. By default every whitespace run becomes a single space.
func WithKeepNewlines(keep bool) Option {
	return func(p *Processor) {
		p.keepNewlines = keep
	}
}

// New creates a new whitespace processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "whitespace"
}

// Process collapses whitespace runs and trims the result.
func (p *Processor) Process(_ context.Context, content string) (string, error) {
	if !p.keepNewlines {
		return strings.Join(strings.Fields(content), " "), nil
	}

	lines := strings.Split(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}
