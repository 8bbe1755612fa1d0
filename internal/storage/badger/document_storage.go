package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/secbrief/internal/interfaces"
	"github.com/ternarybob/secbrief/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// storedDocument is the badgerhold envelope for one schemaless document.
// Field values are JSON-encoded so documents survive round-trips with
// whatever structure they were written with, including malformed shapes
// from earlier tool versions.
type storedDocument struct {
	Key        string `badgerhold:"key"` // <collection>/<doc id>
	Collection string `badgerholdIndex:"Collection"`
	DocID      string
	Data       []byte
	UpdatedAt  time.Time
}

// DocumentStorage implements the DocumentStorage interface for Badger
type DocumentStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// Compile-time assertion: DocumentStorage implements the storage interface
var _ interfaces.DocumentStorage = (*DocumentStorage)(nil)

// NewDocumentStorage creates a new DocumentStorage instance
func NewDocumentStorage(db *BadgerDB, logger arbor.ILogger) *DocumentStorage {
	return &DocumentStorage{
		db:     db,
		logger: logger,
	}
}

func documentKey(collection, id string) string {
	return collection + "/" + id
}

func decodeDocument(stored *storedDocument) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(stored.Data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", stored.Key, err)
	}
	return doc, nil
}

// matchesFilter reports whether every filter field equals the document's
// value for that field. Values are compared after a JSON round-trip, so
// equality is structural.
func matchesFilter(doc models.Document, filter models.Document) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func (s *DocumentStorage) Find(ctx context.Context, collection string, filter models.Document, opts *interfaces.FindOptions) ([]models.Document, error) {
	var stored []storedDocument
	if err := s.db.Store().Find(&stored, badgerhold.Where("Collection").Eq(collection).Index("Collection")); err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}

	docs := make([]models.Document, 0, len(stored))
	for i := range stored {
		doc, err := decodeDocument(&stored[i])
		if err != nil {
			s.logger.Warn().Err(err).Str("key", stored[i].Key).Msg("Skipping undecodable document")
			continue
		}
		if filter != nil && !matchesFilter(doc, filter) {
			continue
		}
		docs = append(docs, doc)
	}

	if opts != nil && opts.SortField != "" {
		field := opts.SortField
		sort.SliceStable(docs, func(i, j int) bool {
			less := docs[i].StringOr(field, "") < docs[j].StringOr(field, "")
			if opts.SortDescending {
				return !less
			}
			return less
		})
	}
	if opts != nil && opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}

	return docs, nil
}

func (s *DocumentStorage) FindOne(ctx context.Context, collection string, filter models.Document) (models.Document, error) {
	// Fast path: filtering on the document id maps directly to a key get
	if id := filter.StringOr("_id", ""); id != "" && len(filter) == 1 {
		var stored storedDocument
		err := s.db.Store().Get(documentKey(collection, id), &stored)
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
		}
		return decodeDocument(&stored)
	}

	docs, err := s.Find(ctx, collection, filter, &interfaces.FindOptions{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (s *DocumentStorage) InsertOne(ctx context.Context, collection string, doc models.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("document is missing required _id field")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document %s/%s: %w", collection, id, err)
	}

	stored := storedDocument{
		Key:        documentKey(collection, id),
		Collection: collection,
		DocID:      id,
		Data:       data,
		UpdatedAt:  time.Now(),
	}

	// Upsert keyed by id: repeated inserts overwrite rather than duplicate
	if err := s.db.Store().Upsert(stored.Key, &stored); err != nil {
		return fmt.Errorf("failed to save document %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *DocumentStorage) UpdateOne(ctx context.Context, collection string, filter models.Document, fields models.Document, upsert bool) error {
	existing, err := s.FindOne(ctx, collection, filter)
	if err != nil {
		return err
	}

	if existing == nil {
		if !upsert {
			return fmt.Errorf("no document in %s matches filter", collection)
		}
		merged := models.Document{}
		for k, v := range filter {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
		return s.InsertOne(ctx, collection, merged)
	}

	for k, v := range fields {
		existing[k] = v
	}
	return s.InsertOne(ctx, collection, existing)
}

func (s *DocumentStorage) Delete(ctx context.Context, collection string, filter models.Document) (int, error) {
	docs, err := s.Find(ctx, collection, filter, nil)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, doc := range docs {
		id := doc.ID()
		if id == "" {
			continue
		}
		err := s.db.Store().Delete(documentKey(collection, id), &storedDocument{})
		if err != nil && err != badgerhold.ErrNotFound {
			return deleted, fmt.Errorf("failed to delete document %s/%s: %w", collection, id, err)
		}
		deleted++
	}
	return deleted, nil
}

func (s *DocumentStorage) Count(ctx context.Context, collection string) (int, error) {
	count, err := s.db.Store().Count(&storedDocument{}, badgerhold.Where("Collection").Eq(collection).Index("Collection"))
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", collection, err)
	}
	return int(count), nil
}

func (s *DocumentStorage) Close() error {
	return s.db.Close()
}
