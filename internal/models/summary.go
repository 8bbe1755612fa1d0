package models

import (
	"strings"
)

// DefaultSummaryText is the fixed placeholder used when no summary can be
// produced for an article with no usable content.
const DefaultSummaryText = "No summary available. This is a placeholder created to ensure all articles have summaries."

// PlaceholderMarkers is the central set of phrases that classify a stored
// summary or tips record as a placeholder rather than genuinely generated
// content. The set is heuristic; records written by this code additionally
// carry an explicit placeholder flag, and classification accepts either
// signal.
var PlaceholderMarkers = []string{
	"No summary available",
	"No tips available",
	"This is a placeholder",
	"Placeholder summary",
	"basic security recommendations",
	"should be aware of potential security implications",
}

// ContainsPlaceholderMarker reports whether text matches any known
// placeholder marker phrase, case-insensitively.
func ContainsPlaceholderMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range PlaceholderMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// SummaryRecord is the derived summary for one article. At most one live
// summary exists per article id; writes with the same id fully replace the
// prior value.
type SummaryRecord struct {
	ArticleID   string `json:"article_id" validate:"required"`
	Title       string `json:"title"`
	Summary     string `json:"summary" validate:"required"`
	Source      string `json:"source"`
	SourceType  string `json:"source_type"`
	Date        string `json:"date"`
	GeneratedAt string `json:"generated_at"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Validate checks required fields. Called once at construction.
func (s *SummaryRecord) Validate() error {
	return validate.Struct(s)
}

// IsPlaceholder reports whether the record is a repair candidate: either
// explicitly flagged, or its summary text carries a placeholder marker.
func (s *SummaryRecord) IsPlaceholder() bool {
	return s.Placeholder || ContainsPlaceholderMarker(s.Summary)
}

// SummaryFromDocument builds a SummaryRecord from a stored document.
// The article_id field is authoritative; the document id is only a
// storage key and is used as fallback when article_id is absent.
func SummaryFromDocument(doc Document) *SummaryRecord {
	articleID := doc.StringOr("article_id", "")
	if articleID == "" {
		articleID = doc.ID()
	}
	placeholder := false
	if v, ok := doc["placeholder"].(bool); ok {
		placeholder = v
	}
	return &SummaryRecord{
		ArticleID:   articleID,
		Title:       doc.StringOr("title", UnknownValue+" Title"),
		Summary:     doc.StringOr("summary", ""),
		Source:      doc.StringOr("source", UnknownValue),
		SourceType:  doc.StringOr("source_type", ""),
		Date:        doc.StringOr("date", UnknownValue),
		GeneratedAt: doc.StringOr("generated_at", ""),
		Placeholder: placeholder,
	}
}

// ToDocument converts the record to its stored document form. The article
// id doubles as the document id so repeated inserts overwrite rather than
// duplicate.
func (s *SummaryRecord) ToDocument() Document {
	doc := Document{
		"_id":          s.ArticleID,
		"article_id":   s.ArticleID,
		"title":        s.Title,
		"summary":      s.Summary,
		"source":       s.Source,
		"source_type":  s.SourceType,
		"date":         s.Date,
		"generated_at": s.GeneratedAt,
	}
	if s.Placeholder {
		doc["placeholder"] = true
	}
	return doc
}
