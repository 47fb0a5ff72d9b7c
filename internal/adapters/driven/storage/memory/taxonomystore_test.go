package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tally/internal/core/domain"
)

func financeTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		Name: "finance",
		Terms: []domain.Term{
			{Name: "Revenue", Aliases: []string{"revenue", "sales"}},
			{Name: "Debt", Aliases: []string{"debt"}},
		},
	}
}

func TestTaxonomyStore_SaveAndGet(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	got, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	assert.Equal(t, financeTaxonomy(), *got)
}

func TestTaxonomyStore_Save_Replaces(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	replacement := domain.Taxonomy{
		Name:  "finance",
		Terms: []domain.Term{{Name: "Profit", Aliases: []string{"profit"}}},
	}
	require.NoError(t, store.Save(ctx, replacement))

	got, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	assert.Equal(t, []string{"Profit"}, got.TermNames())
}

func TestTaxonomyStore_Save_Invalid(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()

	err := store.Save(ctx, domain.Taxonomy{Terms: financeTaxonomy().Terms})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(ctx, domain.Taxonomy{Name: "empty"})
	assert.ErrorIs(t, err, domain.ErrInvalidTaxonomy)
}

func TestTaxonomyStore_IsolatedFromCaller(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()

	tax := financeTaxonomy()
	require.NoError(t, store.Save(ctx, tax))
	tax.Terms[0].Aliases[0] = "changed"

	got, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	got.Terms[0].Name = "Mutated"

	again, err := store.Get(ctx, "finance")
	require.NoError(t, err)
	assert.Equal(t, financeTaxonomy(), *again)
}

func TestTaxonomyStore_Get_NotFound(t *testing.T) {
	store := NewTaxonomyStore()

	got, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestTaxonomyStore_List_SortedByName(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()

	second := financeTaxonomy()
	second.Name = "audit"
	require.NoError(t, store.Save(ctx, financeTaxonomy()))
	require.NoError(t, store.Save(ctx, second))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaxonomySummary{
		{Name: "audit", Terms: 2, Aliases: 3},
		{Name: "finance", Terms: 2, Aliases: 3},
	}, list)
}

func TestTaxonomyStore_List_Empty(t *testing.T) {
	list, err := NewTaxonomyStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaxonomyStore_Delete(t *testing.T) {
	store := NewTaxonomyStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, financeTaxonomy()))

	require.NoError(t, store.Delete(ctx, "finance"))

	_, err := store.Get(ctx, "finance")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "finance"), domain.ErrNotFound)
}
