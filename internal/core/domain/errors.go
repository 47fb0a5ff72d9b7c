package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles the document's MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrExtractionFailed indicates text could not be extracted from a document.
	ErrExtractionFailed = errors.New("text extraction failed")

	// Keyword Engine Errors.

	// ErrInvalidTaxonomy indicates an empty or structurally malformed taxonomy.
	// Counting stops before any term is processed.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy")

	// ErrEmptyAlias indicates an alias is the empty string.
	// Callers must filter empty aliases before matching.
	ErrEmptyAlias = errors.New("empty alias")
)
