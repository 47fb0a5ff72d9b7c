package domain

import "time"

// Document is a document after text extraction.
// Content is plain text with no structural markers guaranteed.
type Document struct {
	// ID is the unique identifier for this extraction.
	ID string `json:"id"`

	// URI is the original location (file path, URL, etc).
	URI string `json:"uri"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Content is the full extracted text.
	Content string `json:"content,omitempty"`

	// Metadata contains arbitrary key-value pairs (mime_type, format, pages).
	Metadata map[string]any `json:"metadata,omitempty"`

	// ExtractedAt is when the text was extracted.
	ExtractedAt time.Time `json:"extracted_at"`
}

// Report is the outcome of counting keywords in one document.
type Report struct {
	// Document describes the source; Content is cleared to keep reports small.
	Document Document `json:"document"`

	// Taxonomy is the name of the taxonomy that was applied.
	Taxonomy string `json:"taxonomy"`

	// Table holds the ordered result rows and the grand total.
	Table ResultTable `json:"table"`
}
