package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
)

func newTestStorage(t *testing.T) *DocumentStorage {
	t.Helper()

	logger := arbor.NewLogger()
	db, err := NewBadgerDB(logger, &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewDocumentStorage(db, logger)
}

func TestInsertAndFindOne(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	doc := models.Document{
		"_id":    "article_1",
		"title":  "Test Article",
		"source": "The Hacker News",
	}
	require.NoError(t, storage.InsertOne(ctx, "articles", doc))

	found, err := storage.FindOne(ctx, "articles", models.Document{"_id": "article_1"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Test Article", found.StringOr("title", ""))

	missing, err := storage.FindOne(ctx, "articles", models.Document{"_id": "nope"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInsertRequiresID(t *testing.T) {
	storage := newTestStorage(t)

	err := storage.InsertOne(context.Background(), "articles", models.Document{"title": "no id"})
	assert.Error(t, err)
}

func TestInsertOverwritesExisting(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a1", "title": "old"}))
	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a1", "title": "new"}))

	count, err := storage.Count(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := storage.FindOne(ctx, "articles", models.Document{"_id": "a1"})
	require.NoError(t, err)
	assert.Equal(t, "new", found.StringOr("title", ""))
}

func TestFindFiltersAndCollectionIsolation(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a1", "source_type": "hackernews"}))
	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a2", "source_type": "cybernews"}))
	require.NoError(t, storage.InsertOne(ctx, "summaries", models.Document{"_id": "a1", "summary": "text"}))

	all, err := storage.Find(ctx, "articles", nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := storage.Find(ctx, "articles", models.Document{"source_type": "hackernews"}, nil)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "a1", filtered[0].ID())

	summaries, err := storage.Find(ctx, "summaries", nil, nil)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestFindSortAndLimit(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a2", "date": "2025-03-21"}))
	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a1", "date": "2025-03-20"}))
	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a3", "date": "2025-03-22"}))

	docs, err := storage.Find(ctx, "articles", nil, &interfaces.FindOptions{
		SortField:      "date",
		SortDescending: true,
		Limit:          2,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a3", docs[0].ID())
	assert.Equal(t, "a2", docs[1].ID())
}

func TestUpdateOneMergesFields(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "summaries", models.Document{
		"_id":     "a1",
		"summary": "old",
		"title":   "keep me",
	}))

	err := storage.UpdateOne(ctx, "summaries",
		models.Document{"_id": "a1"},
		models.Document{"summary": "new"},
		false)
	require.NoError(t, err)

	found, err := storage.FindOne(ctx, "summaries", models.Document{"_id": "a1"})
	require.NoError(t, err)
	assert.Equal(t, "new", found.StringOr("summary", ""))
	assert.Equal(t, "keep me", found.StringOr("title", ""))
}

func TestUpdateOneUpsert(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	// No match without upsert is an error
	err := storage.UpdateOne(ctx, "summaries",
		models.Document{"_id": "a1"}, models.Document{"summary": "s"}, false)
	assert.Error(t, err)

	// With upsert the filter and fields become a new document
	err = storage.UpdateOne(ctx, "summaries",
		models.Document{"_id": "a1"}, models.Document{"summary": "s"}, true)
	require.NoError(t, err)

	found, err := storage.FindOne(ctx, "summaries", models.Document{"_id": "a1"})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "s", found.StringOr("summary", ""))
}

func TestDelete(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a1", "source_type": "hackernews"}))
	require.NoError(t, storage.InsertOne(ctx, "articles", models.Document{"_id": "a2", "source_type": "cybernews"}))

	deleted, err := storage.Delete(ctx, "articles", models.Document{"source_type": "cybernews"})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	count, err := storage.Count(ctx, "articles")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMalformedDocumentRoundTrip(t *testing.T) {
	// Documents with unexpected shapes (tips as a plain string) must
	// round-trip unchanged so reconciliation can detect them later.
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.InsertOne(ctx, "tips", models.Document{
		"_id":  "a1",
		"tips": "flattened text instead of an object",
	}))

	found, err := storage.FindOne(ctx, "tips", models.Document{"_id": "a1"})
	require.NoError(t, err)
	_, isString := found["tips"].(string)
	assert.True(t, isString)
}
