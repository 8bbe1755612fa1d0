package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/classifier"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
	"github.com/ternarybob/secbrief/internal/recovery"
)

// TipsGenerator produces do/don't tips records. Live generation goes
// through the LLM and the recovery chain; when generation is unavailable
// or recovery bottoms out at generic defaults, the heuristic classifier
// synthesizes article-specific tips instead.
type TipsGenerator struct {
	llm        interfaces.LLMService
	classifier *classifier.Classifier
	logger     arbor.ILogger
}

// NewTipsGenerator creates a new TipsGenerator. llm may be nil, in which
// case every article takes the classifier path.
func NewTipsGenerator(llm interfaces.LLMService, cls *classifier.Classifier, logger arbor.ILogger) *TipsGenerator {
	return &TipsGenerator{llm: llm, classifier: cls, logger: logger}
}

func tipsPrompt(article *models.Article) string {
	var b strings.Builder
	b.WriteString("You are acting as a Chief Information Security Officer (CISO) providing cybersecurity advice based on recent threats.\n")
	b.WriteString("Based on the following article, create a list of practical \"DO's\" and \"DON'Ts\" for users to follow.\n")
	b.WriteString("Focus on specific, actionable advice directly related to the article's topic and threat vector.\n")
	b.WriteString("Your tips must be highly specific to the exact cybersecurity issue described in the article.\n\n")
	fmt.Fprintf(&b, "Article Title: %s\n", article.Title)
	fmt.Fprintf(&b, "Article Content:\n%s\n\n", article.Content)
	b.WriteString("Your response should be structured as follows:\n")
	b.WriteString("1. A specific summary of the key security issue in this exact article (2-3 sentences)\n")
	b.WriteString("2. A list of 4-5 \"DO's\" - specific actions people should take to protect from THIS SPECIFIC threat\n")
	b.WriteString("3. A list of 4-5 \"DON'Ts\" - specific actions people should avoid related to THIS SPECIFIC threat\n\n")
	b.WriteString("Your response must be in the following JSON format:\n")
	b.WriteString("{\n  \"summary\": \"Brief summary here\",\n  \"dos\": [\"Do this\", \"Do that\"],\n  \"donts\": [\"Don't do this\", \"Don't do that\"]\n}\n\n")
	b.WriteString("IMPORTANT: Each \"DO\" and \"DON'T\" must be specific to the exact security threat discussed in the article.\n")
	b.WriteString("DO NOT provide generic cybersecurity advice. Make all tips directly actionable for the specific issue.\n")
	b.WriteString("Make sure to follow proper JSON syntax with quotes around all strings.\n")
	return b.String()
}

// Generate builds a tips record for an article. It never fails: LLM or
// parse failure routes to the classifier, so the result always satisfies
// the non-empty dos/donts invariant.
func (g *TipsGenerator) Generate(ctx context.Context, article *models.Article) *models.TipsRecord {
	tips, live := g.generateTips(ctx, article)

	return &models.TipsRecord{
		ArticleID:   article.ID,
		Title:       article.Title,
		Tips:        tips,
		Source:      article.Source,
		SourceType:  article.SourceType,
		Date:        article.Date,
		GeneratedAt: time.Now().Format(timestampLayout),
		Placeholder: !live && g.classifier == nil,
	}
}

func (g *TipsGenerator) generateTips(ctx context.Context, article *models.Article) (models.Tips, bool) {
	if g.llm != nil && strings.TrimSpace(article.Content) != "" {
		raw, err := g.llm.Chat(ctx, []interfaces.Message{
			{Role: "user", Content: tipsPrompt(article)},
		})
		if err != nil {
			g.logger.Warn().
				Err(err).
				Str("article_id", article.ID).
				Msg("Tips generation failed, falling back to heuristic classification")
		} else {
			result := recovery.Recover(raw)
			g.logger.Debug().
				Str("article_id", article.ID).
				Str("recovery_tier", string(result.Tier)).
				Msg("Recovered tips from model response")
			if result.Tier != recovery.TierDefaults {
				return result.Tips, true
			}
			g.logger.Warn().
				Str("article_id", article.ID).
				Msg("Model response had no recoverable structure, falling back to heuristic classification")
		}
	}

	if g.classifier != nil {
		return g.classifier.Tips(article.Title, article.Content), false
	}

	tips := models.Tips{}
	tips.ApplyDefaults()
	return tips, false
}
