package common

import (
	"github.com/google/uuid"
)

// NewArticleID generates a unique article ID with the "article_" prefix.
// Used when an ingested section carries no ID metadata of its own.
func NewArticleID() string {
	return "article_" + uuid.New().String()
}
