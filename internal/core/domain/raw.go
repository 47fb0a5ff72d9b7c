package domain

// RawDocument represents the opaque bytes of an uploaded document.
// It is the input to text extraction.
type RawDocument struct {
	// URI is the original location (file path, "-" for stdin).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-supplied key-value pairs.
	Metadata map[string]any
}
