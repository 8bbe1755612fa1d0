package markdown

import (
	"github.com/ternarybob/secbrief/internal/common"
	"github.com/ternarybob/secbrief/internal/models"
)

// ArticleFromSection builds an Article from one parsed digest section.
// Optional metadata resolves to fixed fallbacks; a section with no id
// metadata gets a freshly generated article id.
func ArticleFromSection(section Section) *models.Article {
	meta := ExtractMetadata(section.Text)

	id := meta.Field("id", "")
	if id == "" {
		id = common.NewArticleID()
	}

	source := meta.Field("source", models.UnknownValue)

	return &models.Article{
		ID:         id,
		Title:      meta.Title,
		Content:    meta.Body,
		Source:     source,
		SourceType: meta.Field("source type", models.DeriveSourceType(source)),
		Date:       meta.Field("date", models.UnknownValue),
		Tags:       models.ParseTags(meta.Field("tags", models.NoneValue)),
		URL:        meta.Field("url", models.NoneValue),
	}
}
