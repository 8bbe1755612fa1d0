package markdown

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/secbrief/internal/models"
)

const sampleDigest = `# Security News Digest

Generated on: 2025-03-20

---

## 1. Title A

**Source:** The Hacker News
**Date:** 20 March 2025
**Tags:** malware, phishing
**URL:** https://example.com/a

### Content:

Attackers are exploiting a new flaw.

---

## 2. Title B

**Source:** Cyber News
**Date:** 21 March 2025

### Summary

A short summary of item B.

---
`

func TestSplitTwoItems(t *testing.T) {
	result := Split(sampleDigest)

	require.Len(t, result.Sections, 2)
	assert.Equal(t, 1, result.Sections[0].Index)
	assert.Equal(t, 2, result.Sections[1].Index)
	assert.Contains(t, result.Header, "Generated on: 2025-03-20")

	meta := ExtractMetadata(result.Sections[0].Text)
	assert.Equal(t, "Title A", meta.Title)
}

func TestSplitDropsBlankChunks(t *testing.T) {
	doc := "header\n## 1. First\n\ntext\n\n## 2.\n\n   \n\n## 3. Third\n\nmore"
	result := Split(doc)

	// the empty item is dropped and indexes stay contiguous
	require.Len(t, result.Sections, 2)
	assert.Equal(t, 1, result.Sections[0].Index)
	assert.Equal(t, 2, result.Sections[1].Index)
}

func TestSplitNoSections(t *testing.T) {
	result := Split("just a header, no items")
	assert.Empty(t, result.Sections)
	assert.Equal(t, "just a header, no items", result.Header)
}

func TestHeaderDate(t *testing.T) {
	date, err := HeaderDate("# Digest\n\nGenerated on: 2025-03-20\n")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", date)

	_, err = HeaderDate("# Digest with no date")
	assert.Error(t, err)
}

func TestExtractMetadata(t *testing.T) {
	result := Split(sampleDigest)
	meta := ExtractMetadata(result.Sections[0].Text)

	assert.Equal(t, "Title A", meta.Title)
	assert.Equal(t, "The Hacker News", meta.Fields["source"])
	assert.Equal(t, "20 March 2025", meta.Fields["date"])
	assert.Equal(t, "malware, phishing", meta.Fields["tags"])
	assert.Equal(t, "Attackers are exploiting a new flaw.", meta.Body)

	// fallbacks for absent keys
	assert.Equal(t, models.UnknownValue, meta.Field("missing", models.UnknownValue))
}

func TestExtractMetadataSummaryDelimiter(t *testing.T) {
	result := Split(sampleDigest)
	meta := ExtractMetadata(result.Sections[1].Text)

	assert.Equal(t, "Title B", meta.Title)
	assert.Equal(t, "A short summary of item B.", meta.Body)
}

func TestExtractMetadataIdempotent(t *testing.T) {
	result := Split(sampleDigest)
	first := ExtractMetadata(result.Sections[0].Text)
	second := ExtractMetadata(result.Sections[0].Text)
	assert.Equal(t, first, second)
}

func TestExtractMetadataDuplicateKeyLastWins(t *testing.T) {
	meta := ExtractMetadata("Title\n\n**Source:** first\n**Source:** second\n")
	assert.Equal(t, "second", meta.Fields["source"])
}

func TestExtractMetadataMissingBody(t *testing.T) {
	meta := ExtractMetadata("Title\n\n**Source:** X\n")
	assert.Equal(t, "", meta.Body)
}

func TestArticleFromSection(t *testing.T) {
	result := Split(sampleDigest)
	article := ArticleFromSection(result.Sections[0])

	assert.NotEmpty(t, article.ID)
	assert.Equal(t, "Title A", article.Title)
	assert.Equal(t, "The Hacker News", article.Source)
	assert.Equal(t, "hackernews", article.SourceType)
	assert.Equal(t, []string{"malware", "phishing"}, article.Tags)
	assert.Equal(t, "Attackers are exploiting a new flaw.", article.Content)
}

func TestDigestRoundTrip(t *testing.T) {
	digest := Digest{
		GeneratedOn: "2025-03-20",
		Items: []DigestItem{
			{
				Article: &models.Article{
					ID:         "article_1",
					Title:      "Round Trip",
					Content:    "Body text.",
					Source:     "The Hacker News",
					SourceType: "hackernews",
					Date:       "20 March 2025",
					Tags:       []string{"malware"},
					URL:        "https://example.com",
				},
				Summary: &models.SummaryRecord{
					ArticleID: "article_1",
					Summary:   "Generated summary.",
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, digest))
	out := buf.String()

	date, err := HeaderDate(out)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-20", date)

	result := Split(out)
	require.Len(t, result.Sections, 1)

	article := ArticleFromSection(result.Sections[0])
	assert.Equal(t, "article_1", article.ID)
	assert.Equal(t, "Round Trip", article.Title)
	assert.Equal(t, "Generated summary.", article.Content)
}

func TestWriteMarkdownTipsSections(t *testing.T) {
	digest := Digest{
		GeneratedOn: "2025-03-20",
		Items: []DigestItem{
			{
				Article: &models.Article{ID: "a1", Title: "Tips Item", Source: "X", SourceType: "x", Date: "d", URL: "u"},
				Tips: &models.TipsRecord{
					ArticleID: "a1",
					Tips: models.Tips{
						Summary: "Key issue.",
						Dos:     []string{"Patch now"},
						Donts:   []string{"Don't delay"},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, digest))
	out := buf.String()
	assert.Contains(t, out, "### Key Security Issue")
	assert.Contains(t, out, "### DO's")
	assert.Contains(t, out, "- Patch now")
	assert.Contains(t, out, "### DON'Ts")
	assert.Contains(t, out, "- Don't delay")
}

func TestRenderHTML(t *testing.T) {
	digest := Digest{
		GeneratedOn: "2025-03-20",
		Items: []DigestItem{
			{Article: &models.Article{ID: "a1", Title: "HTML Item", Source: "X", SourceType: "x", Date: "d", URL: "u"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, digest))
	html := buf.String()
	assert.True(t, strings.Contains(html, "<h2"))
	assert.True(t, strings.Contains(html, "HTML Item"))
}
