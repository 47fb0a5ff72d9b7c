package domain

import (
	"fmt"
	"strings"
)

// OutputFormat selects how result tables are rendered by the CLI.
type OutputFormat string

// Available output formats.
const (
	// OutputTable renders a bordered terminal table.
	OutputTable OutputFormat = "table"

	// OutputJSON renders the report as indented JSON.
	OutputJSON OutputFormat = "json"

	// OutputCSV renders comma-separated values with a header row.
	OutputCSV OutputFormat = "csv"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputCSV:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown output format %q (want table, json or csv)", ErrInvalidInput, s)
	}
	return f, nil
}

// Settings holds user preferences persisted in the config file.
type Settings struct {
	// Workers is the number of goroutines used to count terms.
	// One means counting runs inline.
	Workers int

	// Format is the default CLI output format.
	Format OutputFormat

	// Taxonomy is the default taxonomy reference: a stored name or a file path.
	// Empty selects the built-in taxonomy.
	Taxonomy string

	// Cleanup names the text cleanup steps run after extraction, in order.
	// Empty leaves extracted text untouched.
	Cleanup []string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Workers:  1,
		Format:   OutputTable,
		Taxonomy: "",
	}
}

// Validate checks that settings values are usable.
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidInput)
	}
	if !s.Format.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", ErrInvalidInput, s.Format)
	}
	return nil
}

// CountOptions overrides settings for a single count.
type CountOptions struct {
	// Workers overrides the configured worker count when positive.
	Workers int

	// Cleanup overrides the configured cleanup steps when non-nil.
	// A non-nil empty slice disables cleanup.
	Cleanup []string
}

// Apply returns s with the overrides in o applied.
func (o CountOptions) Apply(s Settings) Settings {
	if o.Workers > 0 {
		s.Workers = o.Workers
	}
	if o.Cleanup != nil {
		s.Cleanup = append(make([]string, 0, len(o.Cleanup)), o.Cleanup...)
	}
	return s
}
