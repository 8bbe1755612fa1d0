package models

// Document is the schemaless unit exchanged with the document store.
// Records are converted to and from documents at the storage boundary so
// that structurally damaged documents (written by earlier tool versions)
// can still be read, classified, and repaired.
type Document map[string]interface{}

// ID returns the document id, or empty string when absent.
func (d Document) ID() string {
	return d.StringOr("_id", "")
}

// StringOr returns the string value for key, or fallback when the key is
// absent or holds a non-string value.
func (d Document) StringOr(key, fallback string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// StringSlice returns the value for key coerced to a string slice.
// Non-string elements are skipped.
func (d Document) StringSlice(key string) []string {
	v, ok := d[key]
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []string:
		return items
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Object returns the value for key as a nested document, and whether the
// value was actually an object. A string or list value returns false.
func (d Document) Object(key string) (Document, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]interface{}:
		return Document(m), true
	}
	return nil, false
}
