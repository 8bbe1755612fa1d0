package common

import (
	"strings"
	"time"
)

// DateBucketFormat is the canonical partition key layout (YYYY-MM-DD).
const DateBucketFormat = "2006-01-02"

// dateBucketLayouts are the candidate layouts for human-entered article
// dates, tried in priority order. The first layout that parses wins.
var dateBucketLayouts = []string{
	"2 January 2006",  // 20 March 2025
	"January 2, 2006", // March 20, 2025
	"2006-01-02",      // 2025-03-20
	"02/01/2006",      // 20/03/2025
	"01/02/2006",      // 03/20/2025
}

// DateBucketResult contains the outcome of a date bucket assignment.
type DateBucketResult struct {
	// Bucket is the canonical YYYY-MM-DD partition key.
	Bucket string
	// UsedFallback indicates the raw date could not be parsed and the
	// generation date was used instead.
	UsedFallback bool
}

// AssignDateBucket parses a free-form date string against the candidate
// layouts and returns a canonical YYYY-MM-DD partition key. If no layout
// parses, the fallback generation date is returned with the fallback flag
// set. This function never fails; callers use the result purely as a
// partition key.
func AssignDateBucket(raw string, fallback string) DateBucketResult {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		for _, layout := range dateBucketLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return DateBucketResult{Bucket: parsed.Format(DateBucketFormat)}
			}
		}
	}
	return DateBucketResult{Bucket: fallback, UsedFallback: true}
}

// DateBucketCollection derives a date-partitioned collection name from a
// prefix and a bucket, e.g. ("tips", "2025-03-20") -> "tips_2025_03_20".
func DateBucketCollection(prefix string, bucket string) string {
	return prefix + "_" + strings.ReplaceAll(bucket, "-", "_")
}
