package interfaces

import (
	"context"

	"github.com/ternarybob/secbrief/internal/models"
)

// FindOptions controls ordering and result size for Find queries.
type FindOptions struct {
	// SortField orders results by the named document field when set.
	SortField string
	// SortDescending reverses the sort order.
	SortDescending bool
	// Limit caps the number of returned documents (0 = no limit).
	Limit int
}

// DocumentStorage is the document-store collaborator: five operations over
// a (collection, document) model. Documents are field mappings keyed by an
// opaque "_id" field. The store is treated purely as an idempotent keyed
// store - inserts with an existing id overwrite the prior document, and no
// transactional guarantees are assumed beyond single-document writes.
type DocumentStorage interface {
	// Find returns all documents in a collection matching the filter.
	// A nil filter matches everything.
	Find(ctx context.Context, collection string, filter models.Document, opts *FindOptions) ([]models.Document, error)

	// FindOne returns the first document matching the filter, or nil when
	// no document matches.
	FindOne(ctx context.Context, collection string, filter models.Document) (models.Document, error)

	// InsertOne stores a document under its "_id" field, replacing any
	// existing document with the same id.
	InsertOne(ctx context.Context, collection string, doc models.Document) error

	// UpdateOne merges fields into the first document matching the filter.
	// When upsert is true and nothing matches, the fields are inserted as
	// a new document.
	UpdateOne(ctx context.Context, collection string, filter models.Document, fields models.Document, upsert bool) error

	// Delete removes all documents matching the filter and returns the
	// number removed. A nil filter clears the collection.
	Delete(ctx context.Context, collection string, filter models.Document) (int, error)

	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// Close releases the underlying store.
	Close() error
}
