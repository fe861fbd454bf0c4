package snapshot

import (
	"testing"
	"time"

	"github.com/peaksport/vitrina/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadProducts(t *testing.T) {
	s := openTestStore(t)

	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	items := []catalog.Product{
		{ID: 1, Name: "Trail Runner", Slug: "trail-runner", PriceMinorUnits: 1250000,
			Currency: "COP", Active: true, Stock: 12, CreatedAt: created,
			Images: []catalog.Image{{URL: "uploads/trail.png", IsCover: true}}},
		{ID: 2, Name: "City Walker", PriceMinorUnits: 890000, Active: false, Stock: 2, CreatedAt: created},
	}
	require.NoError(t, s.SaveProducts(items, 45))

	got, total, err := s.LoadProducts()
	require.NoError(t, err)
	assert.Equal(t, 45, total, "server-reported total survives the round trip")
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "Trail Runner", got[0].Name)
	assert.Equal(t, int64(1250000), got[0].PriceMinorUnits)
	assert.True(t, got[0].Active)
	assert.True(t, got[0].CreatedAt.Equal(created))
	assert.Equal(t, "uploads/trail.png", got[0].ImageReference, "cover image is flattened into the snapshot")
	assert.False(t, got[1].Active)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SaveProducts([]catalog.Product{{ID: 1, Name: "old"}}, 1))
	require.NoError(t, s.SaveProducts([]catalog.Product{{ID: 2, Name: "new"}}, 7))

	got, total, err := s.LoadProducts()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Name)
	assert.Equal(t, 7, total)
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)

	got, total, err := s.LoadProducts()
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, total)
}
