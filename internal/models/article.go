package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fallback values for optional metadata the extractor could not resolve.
const (
	UnknownValue = "Unknown"
	NoneValue    = "None"
)

// Known source-type tags derived from source labels.
const (
	SourceTypeHackerNews = "hackernews"
	SourceTypeCyberNews  = "cybernews"
)

var validate = validator.New()

// Article is the source-of-truth record created by the external scraping
// collaborator. Immutable once created; the pipeline only reads it.
type Article struct {
	ID         string   `json:"id" validate:"required"`
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"description"` // Free-text body; may be empty
	Source     string   `json:"source"`
	SourceType string   `json:"source_type"`
	Date       string   `json:"date"` // Publication date as entered, unparsed
	Tags       []string `json:"tags"`
	URL        string   `json:"url"`
}

// Validate checks required fields. Called once at construction.
func (a *Article) Validate() error {
	return validate.Struct(a)
}

// DateOr returns the publication date or a fallback when unset.
func (a *Article) DateOr(fallback string) string {
	if strings.TrimSpace(a.Date) == "" {
		return fallback
	}
	return a.Date
}

// SourceOr returns the source label or a fallback when unset.
func (a *Article) SourceOr(fallback string) string {
	if strings.TrimSpace(a.Source) == "" {
		return fallback
	}
	return a.Source
}

// TagsOr returns the tags joined with commas, or a fallback when empty.
func (a *Article) TagsOr(fallback string) string {
	if len(a.Tags) == 0 {
		return fallback
	}
	return strings.Join(a.Tags, ", ")
}

// DeriveSourceType maps a source label to its source-type tag.
// Unrecognized labels collapse to lowercase with spaces removed.
func DeriveSourceType(source string) string {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "the hacker news":
		return SourceTypeHackerNews
	case "cyber news":
		return SourceTypeCyberNews
	case "":
		return strings.ToLower(UnknownValue)
	default:
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(source)), " ", "")
	}
}

// ParseTags splits a comma-separated tag value into a list.
// The "None" fallback value yields an empty list.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NoneValue {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ArticleFromDocument builds an Article from a stored document.
// Missing optional fields resolve to their fixed fallbacks.
func ArticleFromDocument(doc Document) *Article {
	source := doc.StringOr("source", UnknownValue)
	sourceType := doc.StringOr("source_type", "")
	if sourceType == "" {
		sourceType = DeriveSourceType(source)
	}
	return &Article{
		ID:         doc.ID(),
		Title:      doc.StringOr("title", UnknownValue+" Title"),
		Content:    doc.StringOr("description", ""),
		Source:     source,
		SourceType: sourceType,
		Date:       doc.StringOr("date", UnknownValue),
		Tags:       doc.StringSlice("tags"),
		URL:        doc.StringOr("url", UnknownValue),
	}
}

// ToDocument converts the article to its stored document form.
func (a *Article) ToDocument() Document {
	doc := Document{
		"_id":         a.ID,
		"title":       a.Title,
		"description": a.Content,
		"source":      a.Source,
		"source_type": a.SourceType,
		"date":        a.Date,
		"url":         a.URL,
	}
	if len(a.Tags) > 0 {
		doc["tags"] = a.Tags
	}
	return doc
}
