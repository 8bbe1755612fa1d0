package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/secbrief/internal/markdown"
	"github.com/ternarybob/secbrief/internal/models"
)

// runIngest parses a markdown digest file and stores every item section
// as an article document.
func runIngest(args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	file := fs.String("file", "", "Markdown digest file to ingest (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("ingest requires -file")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read digest file: %w", err)
	}

	result := markdown.Split(string(data))

	// The generation date is a hard input-format requirement: ingested
	// articles without dates fall back to it for partitioning.
	generatedOn, err := markdown.HeaderDate(result.Header)
	if err != nil {
		return fmt.Errorf("invalid digest file %s: %w", *file, err)
	}

	logger.Info().
		Str("file", *file).
		Str("generated_on", generatedOn).
		Int("sections", len(result.Sections)).
		Msg("Parsed digest file")

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	stored := 0
	for _, section := range result.Sections {
		article := markdown.ArticleFromSection(section)
		if article.Date == "" || article.Date == models.UnknownValue {
			article.Date = generatedOn
		}
		if err := article.Validate(); err != nil {
			logger.Warn().
				Err(err).
				Int("section", section.Index).
				Msg("Skipping invalid section")
			continue
		}
		if err := a.storage.InsertOne(ctx, config.Collections.Articles, article.ToDocument()); err != nil {
			logger.Warn().
				Err(err).
				Str("article_id", article.ID).
				Msg("Failed to store article")
			continue
		}
		stored++
	}

	logger.Info().
		Int("stored", stored).
		Int("sections", len(result.Sections)).
		Msg("Ingest completed")
	return nil
}
