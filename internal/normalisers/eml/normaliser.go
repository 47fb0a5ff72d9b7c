// Package eml provides a Normaliser for RFC 822 email messages.
package eml

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
	"github.com/custodia-labs/tally/internal/normalisers/docmeta"
	"github.com/custodia-labs/tally/internal/normalisers/html"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles EML (email) documents.
type Normaliser struct{}

// New creates a new EML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "eml"
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"message/rfc822"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser
}

// Normalise converts an EML document to a normalised document.
// The content starts with the From, To, Date and Subject headers followed by
// the body; plain text parts are preferred over HTML.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: eml: %v", domain.ErrExtractionFailed, err)
	}

	headers := []struct{ key, value string }{
		{"From", decodeHeader(msg.Header.Get("From"))},
		{"To", decodeHeader(msg.Header.Get("To"))},
		{"Date", msg.Header.Get("Date")},
		{"Subject", decodeHeader(msg.Header.Get("Subject"))},
	}

	body, err := extractBody(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: eml: %v", domain.ErrExtractionFailed, err)
	}

	var content strings.Builder
	for _, h := range headers {
		if h.value != "" {
			fmt.Fprintf(&content, "%s: %s\n", h.key, h.value)
		}
	}
	content.WriteString("\n")
	content.WriteString(body)

	subject := headers[3].value
	title := subject
	if title == "" {
		title = docmeta.Title(raw)
	}

	doc := docmeta.Build(raw, "eml", title, strings.TrimSpace(content.String()))
	for _, h := range headers[:3] {
		if h.value != "" {
			doc.Metadata[strings.ToLower(h.key)] = h.value
		}
	}
	return doc, nil
}

// decodeHeader decodes RFC 2047 encoded headers.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(header)
	if err != nil {
		return header // Return original if decoding fails
	}
	return decoded
}

// extractBody extracts the text content from an email message.
func extractBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}
	encoding := msg.Header.Get("Content-Transfer-Encoding")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Unparseable content type: read the body as plain text.
		body, readErr := io.ReadAll(decodeTransfer(msg.Body, encoding))
		if readErr != nil {
			return "", readErr
		}
		return string(body), nil
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return extractMultipartBody(msg.Body, params["boundary"])
	}

	body, err := io.ReadAll(decodeTransfer(msg.Body, encoding))
	if err != nil {
		return "", err
	}

	if mediaType == "text/html" {
		return html.Strip(string(body)), nil
	}
	return string(body), nil
}

// decodeTransfer undoes a Content-Transfer-Encoding.
func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

// extractMultipartBody extracts text from multipart messages.
func extractMultipartBody(r io.Reader, boundary string) (string, error) {
	if boundary == "" {
		return "", nil
	}

	mr := multipart.NewReader(r, boundary)
	var textParts, htmlParts []string

	for {
		part, err := mr.NextPart()
		if err != nil {
			// io.EOF ends the message; anything else is a truncated part.
			break
		}

		mediaType, params, parseErr := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if parseErr != nil {
			mediaType = "text/plain"
		}

		// NextPart already decodes quoted-printable parts.
		content, readErr := io.ReadAll(decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding")))
		part.Close()
		if readErr != nil {
			continue
		}

		switch {
		case mediaType == "text/plain":
			textParts = append(textParts, string(content))
		case mediaType == "text/html":
			htmlParts = append(htmlParts, html.Strip(string(content)))
		case strings.HasPrefix(mediaType, "multipart/"):
			nested, nestedErr := extractMultipartBody(bytes.NewReader(content), params["boundary"])
			if nestedErr == nil && nested != "" {
				textParts = append(textParts, nested)
			}
		}
	}

	// Prefer plain text over HTML
	if len(textParts) > 0 {
		return strings.Join(textParts, "\n"), nil
	}
	return strings.Join(htmlParts, "\n"), nil
}
