package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardsheet/cardsheet-backend/internal/models"
	"github.com/cardsheet/cardsheet-backend/internal/storage"
)

func TestMemoryStore_RecordAndCount(t *testing.T) {
	store := storage.NewMemoryStore()

	for i := 0; i < 3; i++ {
		err := store.RecordConversion(&models.Conversion{
			SessionID:    "session",
			Filename:     "contacts.vcf",
			ContactCount: i + 1,
		})
		require.NoError(t, err)
	}

	count, err := store.CountConversions()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestMemoryStore_RecentNewestFirst(t *testing.T) {
	store := storage.NewMemoryStore()

	for _, name := range []string{"first.vcf", "second.vcf", "third.vcf"} {
		require.NoError(t, store.RecordConversion(&models.Conversion{Filename: name}))
	}

	recent, err := store.RecentConversions(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third.vcf", recent[0].Filename)
	assert.Equal(t, "second.vcf", recent[1].Filename)
}

func TestMemoryStore_RecentUnlimited(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.RecordConversion(&models.Conversion{Filename: "only.vcf"}))

	recent, err := store.RecentConversions(0)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
