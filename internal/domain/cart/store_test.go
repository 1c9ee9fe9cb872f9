package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "cart.json"), nil)
	require.NoError(t, err)
	return s
}

func TestStore_AddMergesSameVariant(t *testing.T) {
	s := newStore(t)

	item := Item{ID: "prod1", VariantID: "v1", Title: "Tote Bag", Price: 24.5, Quantity: 1}
	_, err := s.Add(item)
	require.NoError(t, err)

	c, err := s.Add(item)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 2, c.Items[0].Quantity)
}

func TestStore_SetQuantityZeroRemoves(t *testing.T) {
	s := newStore(t)

	_, err := s.Add(Item{VariantID: "v1", Title: "Tote Bag", Price: 24.5})
	require.NoError(t, err)

	c, err := s.SetQuantity("v1", 0)
	require.NoError(t, err)
	require.Empty(t, c.Items)

	_, err = s.SetQuantity("v1", 2)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	s1, err := NewStore(path, nil)
	require.NoError(t, err)
	_, err = s1.Add(Item{VariantID: "v1", Title: "Sticker Pack", Price: 6, Quantity: 3})
	require.NoError(t, err)

	s2, err := NewStore(path, nil)
	require.NoError(t, err)
	c, err := s2.Get()
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	require.Equal(t, 3, c.Items[0].Quantity)
}

func TestStore_SubscribeSeesMutations(t *testing.T) {
	s := newStore(t)
	ch := s.Subscribe()

	_, err := s.Add(Item{VariantID: "v1", Title: "Tote Bag", Price: 24.5})
	require.NoError(t, err)

	c := <-ch
	require.Len(t, c.Items, 1)
}

func TestStore_RejectsItemWithoutVariant(t *testing.T) {
	s := newStore(t)
	_, err := s.Add(Item{Title: "mystery"})
	require.ErrorIs(t, err, ErrInvalidItem)
}

func TestCart_Totals(t *testing.T) {
	c := Cart{Items: []Item{
		{VariantID: "v1", Price: 10, Quantity: 2},
		{VariantID: "v2", Price: 5.5, Quantity: 1},
	}}
	totals := c.Totals()
	require.Equal(t, 3, totals.Count)
	require.InDelta(t, 25.5, totals.Subtotal, 0.001)
}
