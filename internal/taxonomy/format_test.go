package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/core/domain"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":  FormatJSON,
		".JSON": FormatJSON,
		"yaml":  FormatYAML,
		".yml":  FormatYAML,
		" toml": FormatTOML,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("/tmp/terms.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("/tmp/terms")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, err = FormatFromPath("/tmp/terms.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "finance", NameFromPath("/a/b/finance.json"))
	assert.Equal(t, "q1.terms", NameFromPath("q1.terms.toml"))
}
