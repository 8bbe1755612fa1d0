package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	headingSummaryLabel = regexp.MustCompile(`(?m)^#+\s*Summary:?\s*$`)
	boldSummaryLabel    = regexp.MustCompile(`(?m)^\s*\*\*Summary:?\*\*\s*$`)
)

// Summarizer produces article summaries through the generation
// collaborator.
type Summarizer struct {
	llm    interfaces.LLMService
	logger arbor.ILogger
}

// NewSummarizer creates a new Summarizer instance.
func NewSummarizer(llm interfaces.LLMService, logger arbor.ILogger) *Summarizer {
	return &Summarizer{llm: llm, logger: logger}
}

func summaryPrompt(article *models.Article) string {
	var b strings.Builder
	b.WriteString("You are a professional article summarizer. Summarize the following article in 3-4 concise paragraphs.\n")
	b.WriteString("Focus on the key points, main insights, and important details.\n")
	b.WriteString("Keep your summary informative but concise.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Date: %s\n", article.DateOr(models.UnknownValue))
	fmt.Fprintf(&b, "Source: %s\n", article.SourceOr(models.UnknownValue))
	fmt.Fprintf(&b, "Tags: %s\n\n", article.TagsOr(models.NoneValue))
	fmt.Fprintf(&b, "Content:\n%s\n\n", article.Content)
	b.WriteString("Your summary:\n")
	return b.String()
}

// cleanSummary strips markdown labels the model sometimes prepends to its
// answer.
func cleanSummary(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = headingSummaryLabel.ReplaceAllString(cleaned, "")
	cleaned = boldSummaryLabel.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// Generate produces a summary record for an article through the LLM.
// Failure is returned to the caller, who decides between retrying and a
// placeholder.
func (s *Summarizer) Generate(ctx context.Context, article *models.Article) (*models.SummaryRecord, error) {
	if s.llm == nil {
		return nil, fmt.Errorf("no generation service available")
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, fmt.Errorf("article %s has no content to summarize", article.ID)
	}

	response, err := s.llm.Chat(ctx, []interfaces.Message{
		{Role: "user", Content: summaryPrompt(article)},
	})
	if err != nil {
		return nil, fmt.Errorf("summary generation failed for article %s: %w", article.ID, err)
	}

	summary := cleanSummary(response)
	if summary == "" {
		return nil, fmt.Errorf("summary generation returned empty text for article %s", article.ID)
	}

	s.logger.Debug().
		Str("article_id", article.ID).
		Int("summary_length", len(summary)).
		Msg("Generated article summary")

	return &models.SummaryRecord{
		ArticleID:   article.ID,
		Title:       article.Title,
		Summary:     summary,
		Source:      article.Source,
		SourceType:  article.SourceType,
		Date:        article.Date,
		GeneratedAt: time.Now().Format(timestampLayout),
	}, nil
}

// PlaceholderSummary constructs the deterministic placeholder used when
// live generation is unavailable: a content preview when the article has
// a body, the fixed default text otherwise.
func PlaceholderSummary(article *models.Article) *models.SummaryRecord {
	text := models.DefaultSummaryText
	if content := strings.TrimSpace(article.Content); content != "" {
		preview := content
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		text = "Placeholder summary based on content preview: " + preview
	}

	return &models.SummaryRecord{
		ArticleID:   article.ID,
		Title:       article.Title,
		Summary:     text,
		Source:      article.Source,
		SourceType:  article.SourceType,
		Date:        article.Date,
		GeneratedAt: time.Now().Format(timestampLayout),
		Placeholder: true,
	}
}
