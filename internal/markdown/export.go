package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/secbrief/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// DigestItem pairs an article with its derived records for export.
// Summary and Tips may be nil when the derived record has not been
// generated yet.
type DigestItem struct {
	Article *models.Article
	Summary *models.SummaryRecord
	Tips    *models.TipsRecord
}

// Digest is a full day's export: a generation date plus the ordered items.
type Digest struct {
	Title       string
	GeneratedOn string
	Items       []DigestItem
}

// WriteMarkdown renders a digest in the same format Split and
// ExtractMetadata parse, so an exported digest can be re-ingested.
func WriteMarkdown(w io.Writer, digest Digest) error {
	var b strings.Builder

	title := digest.Title
	if title == "" {
		title = "Security News Digest"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Generated on: %s\n\n", digest.GeneratedOn)
	b.WriteString("---\n")

	for i, item := range digest.Items {
		article := item.Article
		fmt.Fprintf(&b, "\n## %d. %s\n\n", i+1, article.Title)
		fmt.Fprintf(&b, "**ID:** %s\n", article.ID)
		fmt.Fprintf(&b, "**Source:** %s\n", article.Source)
		fmt.Fprintf(&b, "**Source Type:** %s\n", article.SourceType)
		fmt.Fprintf(&b, "**Date:** %s\n", article.Date)
		if len(article.Tags) > 0 {
			fmt.Fprintf(&b, "**Tags:** %s\n", strings.Join(article.Tags, ", "))
		} else {
			fmt.Fprintf(&b, "**Tags:** %s\n", models.NoneValue)
		}
		fmt.Fprintf(&b, "**URL:** %s\n", article.URL)

		if item.Summary != nil {
			b.WriteString("\n### Summary\n\n")
			b.WriteString(strings.TrimSpace(item.Summary.Summary))
			b.WriteString("\n")
		} else if article.Content != "" {
			b.WriteString("\n### Content:\n\n")
			b.WriteString(strings.TrimSpace(article.Content))
			b.WriteString("\n")
		}

		if item.Tips != nil {
			b.WriteString("\n### Key Security Issue\n\n")
			b.WriteString(strings.TrimSpace(item.Tips.Tips.Summary))
			b.WriteString("\n\n### DO's\n\n")
			for _, do := range item.Tips.Tips.Dos {
				fmt.Fprintf(&b, "- %s\n", do)
			}
			b.WriteString("\n### DON'Ts\n\n")
			for _, dont := range item.Tips.Tips.Donts {
				fmt.Fprintf(&b, "- %s\n", dont)
			}
		}

		b.WriteString("\n---\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var htmlRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
)

// RenderHTML converts a digest to a standalone HTML page.
func RenderHTML(w io.Writer, digest Digest) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, digest); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := htmlRenderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render digest HTML: %w", err)
	}

	title := digest.Title
	if title == "" {
		title = "Security News Digest"
	}
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	if _, err := body.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}
