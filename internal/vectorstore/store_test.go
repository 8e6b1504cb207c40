package vectorstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gcbaptista/patent-semantic-search/internal/errors"
	testutil "github.com/gcbaptista/patent-semantic-search/internal/testing"
	"github.com/gcbaptista/patent-semantic-search/internal/vectorstore"
)

const testCollection = "patent_documents_test"

func coolingEntry() vectorstore.Entry {
	return vectorstore.Entry{
		ID:       "P1",
		Metadata: map[string]string{"patent_number": "P1", "title": "Chip cooler"},
		Content:  "A device for cooling chips",
	}
}

func heatingEntry() vectorstore.Entry {
	return vectorstore.Entry{
		ID:       "P2",
		Metadata: map[string]string{"patent_number": "P2", "title": "Water heater"},
		Content:  "A method for heating water",
	}
}

func TestNewStore_Validation(t *testing.T) {
	t.Run("empty collection name", func(t *testing.T) {
		_, err := vectorstore.NewStore(t.TempDir(), "", testutil.StubEmbedder{}, nil)
		require.Error(t, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := vectorstore.NewStore(t.TempDir(), testCollection, nil, nil)
		require.Error(t, err)
	})
}

func TestCollection_LazyBinding(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)

	_, ok := store.Collection()
	assert.False(t, ok, "collection should not exist before the first upsert")
	assert.Equal(t, 0, store.Count())
}

func TestUpsert_CreatesCollection(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{coolingEntry(), heatingEntry()}))

	_, ok := store.Collection()
	assert.True(t, ok)
	assert.Equal(t, 2, store.Count())
}

func TestUpsert_IdempotentPerID(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{coolingEntry()}))

	updated := coolingEntry()
	updated.Metadata["title"] = "Semiconductor cooler"
	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{updated}))

	assert.Equal(t, 1, store.Count(), "re-indexing the same ID must overwrite, not duplicate")

	matches, err := store.Query(ctx, "cooling device", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Semiconductor cooler", matches[0].Metadata["title"],
		"the second upsert's metadata must win")
}

func TestUpsert_EmptyBatchCreatesCollection(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, nil))

	_, ok := store.Collection()
	assert.True(t, ok, "the collection is created on first use even with no entries")
	assert.Equal(t, 0, store.Count())

	matches, err := store.Query(ctx, "cooling", 3)
	require.NoError(t, err, "a zero-entry collection must answer queries")
	assert.Empty(t, matches)
}

func TestQuery(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{coolingEntry(), heatingEntry()}))

	t.Run("orders by ascending distance", func(t *testing.T) {
		matches, err := store.Query(ctx, "cooling semiconductor device", 2)
		require.NoError(t, err)

		require.Len(t, matches, 2)
		assert.Equal(t, "P1", matches[0].ID)
		assert.Equal(t, "P2", matches[1].ID)
		assert.Less(t, matches[0].Distance, matches[1].Distance)
	})

	t.Run("clamps k to entry count", func(t *testing.T) {
		matches, err := store.Query(ctx, "cooling", 10)
		require.NoError(t, err)
		assert.Len(t, matches, 2)
	})

	t.Run("returns content and metadata", func(t *testing.T) {
		matches, err := store.Query(ctx, "heating water", 1)
		require.NoError(t, err)

		require.Len(t, matches, 1)
		assert.Equal(t, "A method for heating water", matches[0].Content)
		assert.Equal(t, "Water heater", matches[0].Metadata["title"])
	})

	t.Run("rejects empty query text", func(t *testing.T) {
		_, err := store.Query(ctx, "   ", 1)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("rejects non-positive k", func(t *testing.T) {
		_, err := store.Query(ctx, "cooling", 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})
}

func TestQuery_MissingCollection(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)

	_, err := store.Query(context.Background(), "cooling", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrCollectionNotFound))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := vectorstore.NewStore(dir, testCollection, testutil.StubEmbedder{}, nil)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{coolingEntry()}))

	reopened, err := vectorstore.NewStore(dir, testCollection, testutil.StubEmbedder{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, reopened.Count())

	matches, err := reopened.Query(ctx, "cooling device", 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "P1", matches[0].ID)
}

func TestReset(t *testing.T) {
	store := testutil.NewTestStore(t, testCollection)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, []vectorstore.Entry{coolingEntry()}))

	require.NoError(t, store.Reset())

	_, ok := store.Collection()
	assert.False(t, ok)
	assert.Equal(t, 0, store.Count())
}
