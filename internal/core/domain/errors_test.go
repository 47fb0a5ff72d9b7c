package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrInvalidTaxonomy", ErrInvalidTaxonomy},
		{"ErrEmptyAlias", ErrEmptyAlias},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrInvalidTaxonomy, ErrEmptyAlias))
	assert.False(t, errors.Is(ErrEmptyAlias, ErrInvalidInput))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("term %q: %w", "Revenue", ErrEmptyAlias)

	assert.True(t, errors.Is(err, ErrEmptyAlias))
	assert.Contains(t, err.Error(), "Revenue")
	assert.Contains(t, err.Error(), "empty alias")
}
