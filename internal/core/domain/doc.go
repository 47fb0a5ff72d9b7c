// Package domain defines the core business entities for Tally.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Taxonomy: canonical search terms and their alias strings
//   - TermResult: per-term occurrence counts produced by the engine
//   - ResultTable: the ordered, indexed rows handed to any renderer
//   - RawDocument / Document: uploaded bytes and their extracted text
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
