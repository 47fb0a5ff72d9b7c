// Package mcp provides an MCP (Model Context Protocol) server adapter for tally.
// It lets AI assistants count taxonomy keywords in text or local documents.
package mcp

import "errors"

// ErrMissingTallyService is returned when the tally service is not provided.
var ErrMissingTallyService = errors.New("mcp: tally service is required")

// ErrMissingTaxonomyService is returned when the taxonomy service is not provided.
var ErrMissingTaxonomyService = errors.New("mcp: taxonomy service is required")
