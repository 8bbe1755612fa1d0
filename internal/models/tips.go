package models

import (
	"strings"
)

// Default items guaranteeing the non-empty invariant on every
// construction path.
const (
	DefaultTipsSummaryText = "No summary available."
	DefaultDoText          = "No specific dos provided."
	DefaultDontText        = "No specific don'ts provided."
)

// GenericDoPhrases identifies canned advice. A tips record whose "do"
// items all match one of these phrases carries no article-specific value
// and is a regeneration candidate.
var GenericDoPhrases = []string{
	"Keep your software and operating systems updated",
	"Use strong, unique passwords for each account",
	"Enable two-factor authentication",
	"Be cautious with email attachments",
}

// Tips is the nested do/don't advice value. Invariant: after any
// successful construction path, Dos and Donts are non-empty and Summary is
// non-empty.
type Tips struct {
	Summary string   `json:"summary"`
	Dos     []string `json:"dos"`
	Donts   []string `json:"donts"`
}

// ApplyDefaults enforces the non-empty invariant in place.
func (t *Tips) ApplyDefaults() {
	if strings.TrimSpace(t.Summary) == "" {
		t.Summary = DefaultTipsSummaryText
	}
	if len(t.Dos) == 0 {
		t.Dos = []string{DefaultDoText}
	}
	if len(t.Donts) == 0 {
		t.Donts = []string{DefaultDontText}
	}
}

// IsGeneric reports whether every "do" item matches a generic phrase.
func (t *Tips) IsGeneric() bool {
	if len(t.Dos) == 0 {
		return false
	}
	for _, do := range t.Dos {
		matched := false
		for _, generic := range GenericDoPhrases {
			if strings.Contains(do, generic) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// TipsRecord is the derived do/don't record for one article. The tips
// value must always be a structured object; a stored document violating
// that is classified malformed and repaired by reconciliation.
type TipsRecord struct {
	ArticleID   string `json:"article_id" validate:"required"`
	Title       string `json:"title"`
	Tips        Tips   `json:"tips"`
	Source      string `json:"source"`
	SourceType  string `json:"source_type"`
	Date        string `json:"date"`
	GeneratedAt string `json:"generated_at"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Validate checks required fields. Called once at construction.
func (r *TipsRecord) Validate() error {
	return validate.Struct(r)
}

// IsPlaceholder reports whether the record is a repair candidate.
func (r *TipsRecord) IsPlaceholder() bool {
	return r.Placeholder || ContainsPlaceholderMarker(r.Tips.Summary)
}

// TipsFromDocument builds a TipsRecord from a stored document. The second
// return value reports whether the document was malformed: a missing tips
// field, or a tips value that is not a structured object (for example a
// plain string written by an earlier tool version). Malformed documents
// still yield a usable record with salvaged fields and defaults applied.
func TipsFromDocument(doc Document) (*TipsRecord, bool) {
	articleID := doc.StringOr("article_id", "")
	if articleID == "" {
		articleID = doc.ID()
	}
	placeholder := false
	if v, ok := doc["placeholder"].(bool); ok {
		placeholder = v
	}

	record := &TipsRecord{
		ArticleID:   articleID,
		Title:       doc.StringOr("title", UnknownValue+" Title"),
		Source:      doc.StringOr("source", UnknownValue),
		SourceType:  doc.StringOr("source_type", ""),
		Date:        doc.StringOr("date", UnknownValue),
		GeneratedAt: doc.StringOr("generated_at", ""),
		Placeholder: placeholder,
	}

	tipsObj, ok := doc.Object("tips")
	if !ok {
		// Salvage top-level fields that older writers left outside the
		// nested object.
		record.Tips = Tips{
			Summary: doc.StringOr("summary", ""),
			Dos:     doc.StringSlice("dos"),
			Donts:   doc.StringSlice("donts"),
		}
		record.Tips.ApplyDefaults()
		return record, true
	}

	record.Tips = Tips{
		Summary: tipsObj.StringOr("summary", ""),
		Dos:     tipsObj.StringSlice("dos"),
		Donts:   tipsObj.StringSlice("donts"),
	}
	record.Tips.ApplyDefaults()
	return record, false
}

// ToDocument converts the record to its stored document form. The tips
// value is always written as a nested object.
func (r *TipsRecord) ToDocument() Document {
	doc := Document{
		"_id":        r.ArticleID,
		"article_id": r.ArticleID,
		"title":      r.Title,
		"tips": map[string]interface{}{
			"summary": r.Tips.Summary,
			"dos":     r.Tips.Dos,
			"donts":   r.Tips.Donts,
		},
		"source":       r.Source,
		"source_type":  r.SourceType,
		"date":         r.Date,
		"generated_at": r.GeneratedAt,
	}
	if r.Placeholder {
		doc["placeholder"] = true
	}
	return doc
}
