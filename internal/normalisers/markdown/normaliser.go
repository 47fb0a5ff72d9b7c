// Package markdown provides a Normaliser for Markdown documents.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "markdown"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts a markdown document to a normalised document.
// Formatting syntax is removed; code, link text and image alt text are kept.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawContent := string(raw.Content)

	title := extractTitle(rawContent)
	if title == "" {
		title = docmeta.Title(raw)
	}

	return docmeta.Build(raw, "markdown", title, stripMarkdown(rawContent)), nil
}

var (
	codeFence     = regexp.MustCompile("(?m)^[ \t]*(```|~~~)[^\n]*\n?")
	inlineCode    = regexp.MustCompile("`([^`\n]+)`")
	images        = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	rules         = regexp.MustCompile(`(?m)^[ \t]*[-*_=]{3,}[ \t]*$`)
	listMarkers   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedList  = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	blockquote    = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	strong        = regexp.MustCompile(`(\*\*|__)([^\n]+?)(\*\*|__)`)
	starEmphasis  = regexp.MustCompile(`\*([^*\n]+)\*`)
	underEmphasis = regexp.MustCompile(`(^|[^\w])_([^_\n]+)_([^\w]|$)`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// extractTitle returns the text of the first H1 heading, or "".
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

// stripMarkdown removes common markdown formatting for plain text content.
// Underscores inside words are left alone since they belong to the word.
func stripMarkdown(content string) string {
	content = codeFence.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = images.ReplaceAllString(content, "$1")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = rules.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = strong.ReplaceAllString(content, "$2")
	content = starEmphasis.ReplaceAllString(content, "$1")
	content = underEmphasis.ReplaceAllString(content, "$1$2$3")
	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
