package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
	"github.com/ternarybob/secbrief/internal/services/generator"
)

// Engine compares the article collection against the derived summary and
// tips collections, and repairs missing, malformed, placeholder, and
// generic records with idempotent full-record writes keyed by article id.
// Generators may be nil; the engine then fills gaps with placeholders and
// leaves existing placeholders in place with a warning.
type Engine struct {
	storage     interfaces.DocumentStorage
	collections *common.CollectionConfig
	summarizer  *generator.Summarizer
	tips        *generator.TipsGenerator
	live        bool
	logger      arbor.ILogger
}

// NewEngine creates a reconciliation engine. live controls whether
// placeholder and generic records are regenerated through the LLM during
// the pass; gap filling happens regardless.
func NewEngine(
	storage interfaces.DocumentStorage,
	collections *common.CollectionConfig,
	summarizer *generator.Summarizer,
	tips *generator.TipsGenerator,
	live bool,
	logger arbor.ILogger,
) *Engine {
	return &Engine{
		storage:     storage,
		collections: collections,
		summarizer:  summarizer,
		tips:        tips,
		live:        live,
		logger:      logger,
	}
}

// Run performs one full reconciliation pass and returns the coverage
// report. Per-article work is sequential; a single article's failure never
// stops the sweep.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	articleDocs, err := e.storage.Find(ctx, e.collections.Articles, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}

	report := &Report{Articles: len(articleDocs)}
	e.logger.Info().
		Int("articles", len(articleDocs)).
		Bool("live_regeneration", e.live).
		Msg("Starting reconciliation pass")

	for _, doc := range articleDocs {
		article := models.ArticleFromDocument(doc)
		if article.ID == "" {
			e.logger.Warn().Str("title", article.Title).Msg("Skipping article without id")
			continue
		}

		if err := e.reconcileSummary(ctx, article, report); err != nil {
			e.logger.Warn().Err(err).Str("article_id", article.ID).Msg("Summary reconciliation failed")
		}
		if err := e.reconcileTips(ctx, article, report); err != nil {
			e.logger.Warn().Err(err).Str("article_id", article.ID).Msg("Tips reconciliation failed")
		}
	}

	if count, err := e.storage.Count(ctx, e.collections.Summaries); err == nil {
		report.Summaries = count
	}
	if count, err := e.storage.Count(ctx, e.collections.Tips); err == nil {
		report.Tips = count
	}

	report.Log(e.logger)
	return report, nil
}

// findDerived locates the derived record for an article id. The document
// id is the fast path; the article_id field covers records written by
// older tools under a different document id.
func (e *Engine) findDerived(ctx context.Context, collection, articleID string) (models.Document, error) {
	doc, err := e.storage.FindOne(ctx, collection, models.Document{"_id": articleID})
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return e.storage.FindOne(ctx, collection, models.Document{"article_id": articleID})
}

func (e *Engine) reconcileSummary(ctx context.Context, article *models.Article, report *Report) error {
	doc, err := e.findDerived(ctx, e.collections.Summaries, article.ID)
	if err != nil {
		return err
	}

	if doc == nil {
		record := e.buildSummary(ctx, article)
		if err := e.storage.InsertOne(ctx, e.collections.Summaries, record.ToDocument()); err != nil {
			return err
		}
		report.SummariesCreated++
		report.Writes++
		if record.IsPlaceholder() {
			report.PlaceholdersRemaining++
		}
		e.logger.Debug().
			Str("article_id", article.ID).
			Bool("placeholder", record.IsPlaceholder()).
			Msg("Created missing summary")
		return nil
	}

	record := models.SummaryFromDocument(doc)
	if !record.IsPlaceholder() {
		return nil
	}

	if !e.canGenerateSummary(article) {
		report.PlaceholdersRemaining++
		e.logger.Warn().
			Str("article_id", article.ID).
			Msg("Placeholder summary left in place, regeneration unavailable")
		return nil
	}

	regenerated, err := e.summarizer.Generate(ctx, article)
	if err != nil {
		report.PlaceholdersRemaining++
		return fmt.Errorf("summary regeneration failed: %w", err)
	}
	if err := e.storage.InsertOne(ctx, e.collections.Summaries, regenerated.ToDocument()); err != nil {
		return err
	}
	report.SummariesRegenerated++
	report.Writes++
	e.logger.Debug().Str("article_id", article.ID).Msg("Regenerated placeholder summary")
	return nil
}

// buildSummary produces the record for a missing summary: live generation
// when possible, the deterministic placeholder otherwise.
func (e *Engine) buildSummary(ctx context.Context, article *models.Article) *models.SummaryRecord {
	if e.canGenerateSummary(article) {
		record, err := e.summarizer.Generate(ctx, article)
		if err == nil {
			return record
		}
		e.logger.Warn().
			Err(err).
			Str("article_id", article.ID).
			Msg("Live summary generation failed, inserting placeholder")
	}
	return generator.PlaceholderSummary(article)
}

func (e *Engine) canGenerateSummary(article *models.Article) bool {
	return e.live && e.summarizer != nil && strings.TrimSpace(article.Content) != ""
}

func (e *Engine) reconcileTips(ctx context.Context, article *models.Article, report *Report) error {
	doc, err := e.findDerived(ctx, e.collections.Tips, article.ID)
	if err != nil {
		return err
	}

	if doc == nil {
		record := e.buildTips(ctx, article)
		if err := e.writeTips(ctx, record); err != nil {
			return err
		}
		report.TipsCreated++
		report.Writes++
		if record.IsPlaceholder() {
			report.PlaceholdersRemaining++
		}
		e.logger.Debug().
			Str("article_id", article.ID).
			Bool("placeholder", record.IsPlaceholder()).
			Msg("Created missing tips")
		return nil
	}

	record, malformed := models.TipsFromDocument(doc)
	if malformed {
		report.MalformedTips++
		e.logger.Warn().
			Str("article_id", article.ID).
			Msg("Found malformed tips document")
	}

	needsRepair := malformed || record.IsPlaceholder() || record.Tips.IsGeneric()
	if !needsRepair {
		return nil
	}

	if e.tips == nil {
		if malformed {
			// A malformed document is repaired structurally even without a
			// generator: the salvaged record is rewritten as a proper
			// nested object.
			record.Placeholder = true
			if err := e.writeTips(ctx, record); err != nil {
				return err
			}
			report.TipsRegenerated++
			report.Writes++
			report.PlaceholdersRemaining++
			return nil
		}
		report.PlaceholdersRemaining++
		e.logger.Warn().
			Str("article_id", article.ID).
			Msg("Placeholder tips left in place, regeneration unavailable")
		return nil
	}

	regenerated := e.tips.Generate(ctx, article)
	if err := e.writeTips(ctx, regenerated); err != nil {
		return err
	}
	report.TipsRegenerated++
	report.Writes++
	e.logger.Debug().
		Str("article_id", article.ID).
		Bool("was_malformed", malformed).
		Msg("Regenerated tips")
	return nil
}

// buildTips produces the record for missing tips. The generator never
// fails; without one, a pure placeholder fills the gap.
func (e *Engine) buildTips(ctx context.Context, article *models.Article) *models.TipsRecord {
	if e.tips != nil {
		return e.tips.Generate(ctx, article)
	}

	tips := models.Tips{}
	tips.ApplyDefaults()
	return &models.TipsRecord{
		ArticleID:   article.ID,
		Title:       article.Title,
		Tips:        tips,
		Source:      article.Source,
		SourceType:  article.SourceType,
		Date:        article.Date,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		Placeholder: true,
	}
}

// writeTips issues the full-record overwrite, and mirrors the record into
// its date partition when partitioning is enabled.
func (e *Engine) writeTips(ctx context.Context, record *models.TipsRecord) error {
	doc := record.ToDocument()
	if err := e.storage.InsertOne(ctx, e.collections.Tips, doc); err != nil {
		return err
	}

	if e.collections.DatePartitions {
		bucket := common.AssignDateBucket(record.Date, time.Now().Format(common.DateBucketFormat))
		partition := common.DateBucketCollection(e.collections.Tips, bucket.Bucket)
		if err := e.storage.InsertOne(ctx, partition, doc); err != nil {
			e.logger.Warn().
				Err(err).
				Str("partition", partition).
				Msg("Failed to write tips date partition")
		}
	}
	return nil
}
