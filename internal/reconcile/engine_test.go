package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/classifier"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
	"github.com/ternarybob/secbrief/internal/services/generator"
	badgerstore "github.com/ternarybob/secbrief/internal/storage/badger"
)

type stubLLM struct {
	response string
}

func (s *stubLLM) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	return s.response, nil
}
func (s *stubLLM) HealthCheck(ctx context.Context) error { return nil }
func (s *stubLLM) GetMode() interfaces.LLMMode           { return interfaces.LLMModeOffline }
func (s *stubLLM) Close() error                          { return nil }

func newTestStorage(t *testing.T) interfaces.DocumentStorage {
	t.Helper()
	logger := arbor.NewLogger()
	db, err := badgerstore.NewBadgerDB(logger, &common.BadgerConfig{Path: t.TempDir()})
	require.NoError(t, err)
	storage := badgerstore.NewDocumentStorage(db, logger)
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func testCollections() *common.CollectionConfig {
	return &common.CollectionConfig{
		Articles:  "articles",
		Summaries: "summaries",
		Tips:      "tips",
	}
}

func insertArticle(t *testing.T, storage interfaces.DocumentStorage, article *models.Article) {
	t.Helper()
	require.NoError(t, storage.InsertOne(context.Background(), "articles", article.ToDocument()))
}

func TestReconcileEmptyBodyGetsDefaultPlaceholder(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{
		ID:    "a1",
		Title: "Article with no body",
	})

	// Summarizer is available, but an empty body must still produce the
	// fixed default placeholder, never a live generation attempt.
	summarizer := generator.NewSummarizer(&stubLLM{response: "live text"}, arbor.NewLogger())
	engine := NewEngine(storage, testCollections(), summarizer, nil, true, arbor.NewLogger())

	report, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SummariesCreated)

	doc, err := storage.FindOne(ctx, "summaries", models.Document{"_id": "a1"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	record := models.SummaryFromDocument(doc)
	assert.Equal(t, models.DefaultSummaryText, record.Summary)
	assert.True(t, record.IsPlaceholder())
}

func TestReconcileLiveSummaryGeneration(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{
		ID:      "a1",
		Title:   "Ransomware wave",
		Content: "Attackers encrypt file shares across the industry.",
	})

	summarizer := generator.NewSummarizer(&stubLLM{response: "A focused summary of the attack."}, arbor.NewLogger())
	engine := NewEngine(storage, testCollections(), summarizer, nil, true, arbor.NewLogger())

	report, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SummariesCreated)

	doc, err := storage.FindOne(ctx, "summaries", models.Document{"_id": "a1"})
	require.NoError(t, err)
	record := models.SummaryFromDocument(doc)
	assert.Equal(t, "A focused summary of the attack.", record.Summary)
	assert.False(t, record.IsPlaceholder())
}

func TestReconcileMalformedTipsReplaced(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{
		ID:      "a1",
		Title:   "Phishing campaign targets banks",
		Content: "Fraudulent mails impersonate payment providers.",
	})

	// tips stored as a plain string violates the structured-object
	// invariant
	require.NoError(t, storage.InsertOne(ctx, "tips", models.Document{
		"_id":        "a1",
		"article_id": "a1",
		"title":      "Phishing campaign targets banks",
		"tips":       "do not click links",
	}))

	tipsGen := generator.NewTipsGenerator(nil, classifier.New(), arbor.NewLogger())
	engine := NewEngine(storage, testCollections(), nil, tipsGen, true, arbor.NewLogger())

	report, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.MalformedTips)
	assert.Equal(t, 1, report.TipsRegenerated)

	doc, err := storage.FindOne(ctx, "tips", models.Document{"_id": "a1"})
	require.NoError(t, err)
	record, malformed := models.TipsFromDocument(doc)
	assert.False(t, malformed)
	assert.NotEmpty(t, record.Tips.Dos)
	assert.NotEmpty(t, record.Tips.Donts)
}

func TestReconcileGenericTipsRegenerated(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{
		ID:      "a1",
		Title:   "Router vulnerability disclosed",
		Content: "A flaw in the admin interface allows remote access.",
	})

	generic := &models.TipsRecord{
		ArticleID: "a1",
		Title:     "Router vulnerability disclosed",
		Tips: models.Tips{
			Summary: "A real sounding summary of the issue.",
			Dos: []string{
				"Keep your software and operating systems updated with patches",
				"Enable two-factor authentication wherever possible",
			},
			Donts: []string{"Don't ignore updates"},
		},
	}
	require.NoError(t, storage.InsertOne(ctx, "tips", generic.ToDocument()))

	tipsGen := generator.NewTipsGenerator(nil, classifier.New(), arbor.NewLogger())
	engine := NewEngine(storage, testCollections(), nil, tipsGen, true, arbor.NewLogger())

	report, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TipsRegenerated)

	doc, err := storage.FindOne(ctx, "tips", models.Document{"_id": "a1"})
	require.NoError(t, err)
	record, _ := models.TipsFromDocument(doc)
	assert.False(t, record.Tips.IsGeneric())
}

func TestReconcileConvergesOnSecondRun(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{ID: "a1", Title: "First", Content: "body one"})
	insertArticle(t, storage, &models.Article{ID: "a2", Title: "Second"})
	insertArticle(t, storage, &models.Article{ID: "a3", Title: "Third", Content: "body three"})

	tipsGen := generator.NewTipsGenerator(nil, classifier.New(), arbor.NewLogger())
	engine := NewEngine(storage, testCollections(), nil, tipsGen, false, arbor.NewLogger())

	first, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, first.SummariesCreated)
	assert.Equal(t, 3, first.TipsCreated)
	assert.Greater(t, first.Writes, 0)

	second, err := engine.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Writes)
	assert.Equal(t, 3, second.Summaries)
	assert.Equal(t, 3, second.Tips)
}

func TestReconcileArticleIDAuthoritative(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	insertArticle(t, storage, &models.Article{ID: "a1", Title: "Old record", Content: "body"})

	// An older writer stored the summary under a different document id
	// but tagged it with article_id.
	require.NoError(t, storage.InsertOne(ctx, "summaries", models.Document{
		"_id":        "legacy-key",
		"article_id": "a1",
		"title":      "Old record",
		"summary":    "A genuine generated summary of the article.",
	}))

	engine := NewEngine(storage, testCollections(), nil, nil, false, arbor.NewLogger())
	report, err := engine.Run(ctx)
	require.NoError(t, err)

	// The legacy record is found via article_id, so no duplicate summary
	// is created.
	assert.Equal(t, 0, report.SummariesCreated)
}

func TestReconcileDatePartitions(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	collections := testCollections()
	collections.DatePartitions = true

	insertArticle(t, storage, &models.Article{
		ID:      "a1",
		Title:   "Partitioned",
		Content: "body",
		Date:    "20 March 2025",
	})

	tipsGen := generator.NewTipsGenerator(nil, classifier.New(), arbor.NewLogger())
	engine := NewEngine(storage, collections, nil, tipsGen, false, arbor.NewLogger())

	_, err := engine.Run(ctx)
	require.NoError(t, err)

	partitioned, err := storage.FindOne(ctx, "tips_2025_03_20", models.Document{"_id": "a1"})
	require.NoError(t, err)
	assert.NotNil(t, partitioned)
}
