package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/core/domain"
	"github.com/custodia-labs/tally/internal/core/ports/driven"
)

// createTestDOCX creates a minimal valid DOCX file in memory.
func createTestDOCX(t testing.TB, documentXML, coreXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`,
		"word/document.xml": documentXML,
		"docProps/core.xml": coreXML,
	}
	for name, body := range parts {
		if body == "" {
			continue
		}
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(body))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func wordDocument(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
` + body + `
</w:body>
</w:document>`
}

func rawDOCX(uri string, content []byte) *domain.RawDocument {
	return &domain.RawDocument{URI: uri, MIMEType: MIMEType, Content: content}
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Equal(t, "docx", normaliser.Name())
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Equal(t, []string{MIMEType}, New().SupportedMIMETypes())
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	coreXML := `<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
xmlns:dc="http://purl.org/dc/elements/1.1/">
<dc:title>Test Document</dc:title>
</cp:coreProperties>`

	content := createTestDOCX(t, wordDocument(`<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`), coreXML)
	raw := rawDOCX("/path/to/document.docx", content)

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, raw.URI, doc.URI)
	assert.Equal(t, "Test Document", doc.Title)
	assert.Equal(t, "Hello World", doc.Content)
	assert.Equal(t, MIMEType, doc.Metadata["mime_type"])
	assert.Equal(t, "docx", doc.Metadata["format"])
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_InvalidZip(t *testing.T) {
	result, err := New().Normalise(context.Background(), rawDOCX("/path/to/invalid.docx", []byte("not a zip file")))
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Nil(t, result)
}

func TestNormalise_MissingDocumentPart(t *testing.T) {
	content := createTestDOCX(t, "", "")

	_, err := New().Normalise(context.Background(), rawDOCX("/x.docx", content))
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestNormalise_MalformedXML(t *testing.T) {
	content := createTestDOCX(t, "<w:document><w:body><w:p>", "")

	_, err := New().Normalise(context.Background(), rawDOCX("/x.docx", content))
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestNormalise_TitleFallbackToFilename(t *testing.T) {
	content := createTestDOCX(t, wordDocument(`<w:p><w:r><w:t>Content</w:t></w:r></w:p>`), "")

	doc, err := New().Normalise(context.Background(), rawDOCX("/path/to/my_document.docx", content))
	require.NoError(t, err)
	assert.Equal(t, "my document", doc.Title)
}

func TestParseDocumentXML(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name: "multiple paragraphs",
			body: `<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>`,
			expected: "First paragraph\nSecond paragraph",
		},
		{
			name: "multiple runs",
			body: `<w:p>
<w:r><w:t xml:space="preserve">Hello </w:t></w:r>
<w:r><w:t>World</w:t></w:r>
</w:p>`,
			expected: "Hello World",
		},
		{
			name:     "tabs and breaks",
			body:     `<w:p><w:r><w:t>net</w:t><w:tab/><w:t>income</w:t><w:br/><w:t>next</w:t></w:r></w:p>`,
			expected: "net income\nnext",
		},
		{
			name: "table cells",
			body: `<w:tbl><w:tr>
<w:tc><w:p><w:r><w:t>Revenue</w:t></w:r></w:p></w:tc>
<w:tc><w:p><w:r><w:t>Profit</w:t></w:r></w:p></w:tc>
</w:tr></w:tbl>`,
			expected: "Revenue\nProfit",
		},
		{
			name:     "hyperlink runs",
			body:     `<w:p><w:hyperlink><w:r><w:t>annual report</w:t></w:r></w:hyperlink></w:p>`,
			expected: "annual report",
		},
		{
			name:     "empty body",
			body:     "",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDocumentXML([]byte(wordDocument(tc.body)))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNormalise_MetadataPreserved(t *testing.T) {
	content := createTestDOCX(t, wordDocument(`<w:p><w:r><w:t>Test</w:t></w:r></w:p>`), "")
	raw := rawDOCX("/path/to/doc.docx", content)
	raw.Metadata = map[string]any{"author": "test-author"}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "test-author", doc.Metadata["author"])
	assert.Equal(t, "docx", doc.Metadata["format"])
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func BenchmarkNormalise(b *testing.B) {
	content := createTestDOCX(b, wordDocument(`<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`), "")
	raw := rawDOCX("/test/document.docx", content)
	normaliser := New()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = normaliser.Normalise(ctx, raw)
	}
}
