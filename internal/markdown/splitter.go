package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// sectionHeadingPattern marks the start of a numbered item heading,
	// e.g. "## 3. Some Title".
	sectionHeadingPattern = regexp.MustCompile(`\n## \d+\.`)

	generatedOnPattern = regexp.MustCompile(`Generated on:\s*(\d{4}-\d{2}-\d{2})`)
)

// Section is one numbered item chunk of a digest document. Index matches
// the markdown numbering (1-based). Text is the raw section body including
// the title line but excluding the "## <n>." prefix.
type Section struct {
	Index int
	Text  string
}

// SplitResult holds the document header block and the ordered item sections.
type SplitResult struct {
	Header   string
	Sections []Section
}

// Split divides a digest document into a header block and numbered item
// sections. Text before the first "## <n>." heading is the header and is
// never treated as an item. Whitespace-only chunks are dropped.
func Split(text string) SplitResult {
	// Normalize so a document starting with a heading still matches the
	// newline-anchored pattern.
	padded := "\n" + text

	locs := sectionHeadingPattern.FindAllStringIndex(padded, -1)
	if len(locs) == 0 {
		return SplitResult{Header: strings.TrimSpace(text)}
	}

	result := SplitResult{
		Header: strings.TrimSpace(padded[:locs[0][0]]),
	}

	index := 0
	for i, loc := range locs {
		end := len(padded)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunk := strings.TrimSpace(padded[loc[1]:end])
		if chunk == "" {
			continue
		}
		index++
		result.Sections = append(result.Sections, Section{Index: index, Text: chunk})
	}

	return result
}

// HeaderDate extracts the generation date from a document header block.
// The date is required for date-partitioned ingestion, so its absence is
// an input-format error rather than something to silently default.
func HeaderDate(header string) (string, error) {
	match := generatedOnPattern.FindStringSubmatch(header)
	if match == nil {
		return "", fmt.Errorf("document header is missing a 'Generated on: YYYY-MM-DD' line")
	}
	return match[1], nil
}
