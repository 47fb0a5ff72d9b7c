// Package docx provides a Normaliser for Word (OOXML) documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
)

// MIMEType is the content type of Word documents.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles DOCX documents.
type Normaliser struct{}

// New creates a new DOCX normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "docx"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{MIMEType}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts a DOCX document to a normalised document.
// Paragraphs, including those inside table cells, become lines.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader, err := zip.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrExtractionFailed, err)
	}

	body, err := readPart(reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrExtractionFailed, err)
	}

	content, err := parseDocumentXML(body)
	if err != nil {
		return nil, fmt.Errorf("%w: docx: %v", domain.ErrExtractionFailed, err)
	}

	title := extractTitle(reader)
	if title == "" {
		title = docmeta.Title(raw)
	}

	return docmeta.Build(raw, "docx", title, content), nil
}

var errPartMissing = errors.New("part missing")

// readPart returns the bytes of a named archive member.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s: %w", name, errPartMissing)
}

// parseDocumentXML walks word/document.xml and collects the text runs.
func parseDocumentXML(content []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		out    strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				out.WriteByte(' ')
			case "br", "cr":
				out.WriteByte('\n')
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			case "tc":
				out.WriteByte(' ')
			}
		case xml.CharData:
			if inText {
				out.Write(el)
			}
		}
	}

	lines := strings.Split(out.String(), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// coreXML represents the structure of docProps/core.xml.
type coreXML struct {
	Title string `xml:"title"`
}

// extractTitle returns the title from docProps/core.xml, or "".
func extractTitle(reader *zip.Reader) string {
	content, err := readPart(reader, "docProps/core.xml")
	if err != nil {
		return ""
	}

	var core coreXML
	if err := xml.Unmarshal(content, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}
