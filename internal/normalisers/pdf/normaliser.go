// Package pdf provides a Normaliser for PDF documents.
// Text is read page by page with github.com/ledongthuc/pdf; pages without a
// text layer contribute nothing.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/logger"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
)

// maxTitleLength bounds the first line considered as a title.
const maxTitleLength = 200

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "pdf"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise extracts the text of every page, one page after another.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, pages, err := extractText(ctx, raw.Content)
	if err != nil {
		return nil, err
	}

	doc := docmeta.Build(raw, "pdf", extractTitle(content, raw), content)
	doc.Metadata["pages"] = pages
	return doc, nil
}

// extractText reads the text layer of each page.
// The pdf library panics on some malformed files; panics become
// ErrExtractionFailed.
func extractText(ctx context.Context, data []byte) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("%w: pdf: %v", domain.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: pdf: %v", domain.ErrExtractionFailed, err)
	}

	pages = reader.NumPage()
	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("pdf: page %d has no readable text: %v", i, err)
			continue
		}
		if pageText = strings.TrimSpace(pageText); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n"), pages, nil
}

// extractTitle uses the first short non-empty line, or the file name.
func extractTitle(content string, raw *domain.RawDocument) string {
	if title, ok := raw.Metadata["title"].(string); ok && title != "" {
		return title
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && len(line) <= maxTitleLength {
			return line
		}
	}
	return docmeta.TitleFromURI(raw.URI)
}
