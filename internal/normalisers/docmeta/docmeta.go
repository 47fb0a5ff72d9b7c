// Package docmeta holds the document assembly shared by every normaliser.
package docmeta

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// StdinURI is the URI used for documents read from standard input.
const StdinURI = "-"

// now is replaced in tests.
var now = time.Now

// Build assembles the extracted document for raw.
// Caller metadata is copied and mime_type and format are added.
func Build(raw *domain.RawDocument, format, title, content string) *domain.Document {
	meta := make(map[string]any, len(raw.Metadata)+2)
	for k, v := range raw.Metadata {
		meta[k] = v
	}
	meta["mime_type"] = raw.MIMEType
	meta["format"] = format

	return &domain.Document{
		ID:          uuid.New().String(),
		URI:         raw.URI,
		Title:       title,
		Content:     content,
		Metadata:    meta,
		ExtractedAt: now(),
	}
}

// Title returns the caller-supplied title from metadata, or one derived
// from the URI.
func Title(raw *domain.RawDocument) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}
	return TitleFromURI(raw.URI)
}

// TitleFromURI derives a readable title from a file name.
func TitleFromURI(uri string) string {
	if uri == "" || uri == StdinURI {
		return "stdin"
	}

	filename := filepath.Base(uri)
	filename = strings.TrimSuffix(filename, filepath.Ext(filename))
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}
