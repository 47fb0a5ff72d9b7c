package normalisers

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tally/internal/normalisers/docx"
)

// extMIMETypes maps file extensions to MIME types for common types not in
// Go's registry, or where the platform registry disagrees between systems.
var extMIMETypes = map[string]string{
	".pdf":      "application/pdf",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
	".docx":     docx.MIMEType,
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".eml":      "message/rfc822",
	".txt":      "text/plain",
	".text":     "text/plain",
	".log":      "text/plain",
	".csv":      "text/csv",
	".tsv":      "text/tab-separated-values",
	".json":     "application/json",
	".xml":      "application/xml",
	".yaml":     "text/yaml",
	".yml":      "text/yaml",
	".toml":     "text/toml",
}

// DetectMIMEType determines the MIME type of a document from its name and,
// when the extension is missing or unknown, from its leading bytes.
// The result never carries parameters such as charset.
func DetectMIMEType(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" {
		if t, ok := extMIMETypes[ext]; ok {
			return t
		}
		if t := mime.TypeByExtension(ext); t != "" {
			return stripParams(t)
		}
	}

	return sniff(content)
}

func sniff(content []byte) string {
	if len(content) == 0 {
		return "text/plain"
	}

	t := stripParams(http.DetectContentType(content))
	if t == "application/zip" && looksLikeDOCX(content) {
		return docx.MIMEType
	}
	return t
}

// looksLikeDOCX reports whether a zip archive contains a word/ part.
// Local file headers store names uncompressed, so a byte search suffices.
func looksLikeDOCX(content []byte) bool {
	return strings.Contains(string(content), "word/document.xml")
}

func stripParams(mimeType string) string {
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = mimeType[:idx]
	}
	return strings.TrimSpace(mimeType)
}
