package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/tally/internal/core/domain"
)

func TestDefault(t *testing.T) {
	tax := Default()

	assert.Equal(t, domain.DefaultTaxonomyName, tax.Name)
	assert.NoError(t, tax.Validate())
	assert.Equal(t, "Revenue", tax.Terms[0].Name)
	assert.Greater(t, tax.AliasCount(), tax.Len())
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a.Terms[0].Name = "changed"

	assert.Equal(t, "Revenue", Default().Terms[0].Name)
}

func TestFileSource(t *testing.T) {
	src := NewFileSource()

	tax, err := src.Load("testdata/finance.json")
	assert.NoError(t, err)
	assert.Equal(t, financeTerms(), tax.Terms)
	assert.Equal(t, Default(), src.Default())
}
