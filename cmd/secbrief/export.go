package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/markdown"
	"github.com/ternarybob/secbrief/internal/models"
)

// runExport writes a digest of all stored articles with their summaries
// and tips, in the same markdown format ingest parses, or as HTML.
func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "Output file (required)")
	asHTML := fs.Bool("html", false, "Render HTML instead of markdown")
	title := fs.String("title", "Security News Digest", "Digest title")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("export requires -out")
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	articleDocs, err := a.storage.Find(ctx, config.Collections.Articles, nil, &interfaces.FindOptions{SortField: "date"})
	if err != nil {
		return err
	}

	digest := markdown.Digest{
		Title:       *title,
		GeneratedOn: time.Now().Format("2006-01-02"),
	}
	for _, doc := range articleDocs {
		article := models.ArticleFromDocument(doc)
		item := markdown.DigestItem{Article: article}

		if summaryDoc, err := a.storage.FindOne(ctx, config.Collections.Summaries, models.Document{"_id": article.ID}); err == nil && summaryDoc != nil {
			item.Summary = models.SummaryFromDocument(summaryDoc)
		}
		if tipsDoc, err := a.storage.FindOne(ctx, config.Collections.Tips, models.Document{"_id": article.ID}); err == nil && tipsDoc != nil {
			record, malformed := models.TipsFromDocument(tipsDoc)
			if !malformed {
				item.Tips = record
			}
		}

		digest.Items = append(digest.Items, item)
	}

	file, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if *asHTML {
		err = markdown.RenderHTML(file, digest)
	} else {
		err = markdown.WriteMarkdown(file, digest)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("file", *out).
		Int("items", len(digest.Items)).
		Bool("html", *asHTML).
		Msg("Export completed")
	return nil
}
