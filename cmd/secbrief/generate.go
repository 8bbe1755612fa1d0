package main

import (
	"context"
	"flag"
	"time"

	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/models"
	"github.com/ternarybob/secbrief/internal/services/generator"
)

// runGenerate regenerates derived records for every stored article on the
// worker pool, overwriting whatever exists. Use reconcile to repair only
// the gaps.
func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	summariesOnly := fs.Bool("summaries", false, "Generate summaries only")
	tipsOnly := fs.Bool("tips", false, "Generate tips only")
	if err := fs.Parse(args); err != nil {
		return err
	}
	doSummaries := !*tipsOnly
	doTips := !*summariesOnly

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	articleDocs, err := a.storage.Find(ctx, config.Collections.Articles, nil, nil)
	if err != nil {
		return err
	}
	articles := make([]*models.Article, 0, len(articleDocs))
	for _, doc := range articleDocs {
		articles = append(articles, models.ArticleFromDocument(doc))
	}

	pool := generator.NewBatchProcessor(&config.Workers, logger)

	if doSummaries {
		logger.Info().Int("articles", len(articles)).Msg("Generating summaries")
		result := pool.Run(ctx, articles, func(ctx context.Context, article *models.Article) (bool, error) {
			record, err := generateSummary(ctx, a, article)
			if err != nil {
				return false, err
			}
			if err := a.storage.InsertOne(ctx, config.Collections.Summaries, record.ToDocument()); err != nil {
				return false, err
			}
			return record.IsPlaceholder(), nil
		})
		logger.Info().
			Int("succeeded", result.Succeeded).
			Int("failed", result.Failed).
			Int("placeholders", result.Placeholders).
			Msg("Summary generation finished")
	}

	if doTips {
		logger.Info().Int("articles", len(articles)).Msg("Generating tips")
		result := pool.Run(ctx, articles, func(ctx context.Context, article *models.Article) (bool, error) {
			record := a.tipsGen.Generate(ctx, article)
			if err := storeTips(ctx, a, record); err != nil {
				return false, err
			}
			return record.IsPlaceholder(), nil
		})
		logger.Info().
			Int("succeeded", result.Succeeded).
			Int("failed", result.Failed).
			Int("placeholders", result.Placeholders).
			Msg("Tips generation finished")
	}

	return nil
}

// generateSummary prefers live generation and degrades to the
// deterministic placeholder instead of failing the batch item.
func generateSummary(ctx context.Context, a *app, article *models.Article) (*models.SummaryRecord, error) {
	if a.summarizer != nil {
		record, err := a.summarizer.Generate(ctx, article)
		if err == nil {
			return record, nil
		}
		logger.Warn().
			Err(err).
			Str("article_id", article.ID).
			Msg("Summary generation failed, storing placeholder")
	}
	return generator.PlaceholderSummary(article), nil
}

// storeTips writes the full record and its date partition copy.
func storeTips(ctx context.Context, a *app, record *models.TipsRecord) error {
	doc := record.ToDocument()
	if err := a.storage.InsertOne(ctx, config.Collections.Tips, doc); err != nil {
		return err
	}
	if config.Collections.DatePartitions {
		bucket := common.AssignDateBucket(record.Date, time.Now().Format(common.DateBucketFormat))
		partition := common.DateBucketCollection(config.Collections.Tips, bucket.Bucket)
		if err := a.storage.InsertOne(ctx, partition, doc); err != nil {
			logger.Warn().
				Err(err).
				Str("partition", partition).
				Msg("Failed to write tips date partition")
		}
	}
	return nil
}
