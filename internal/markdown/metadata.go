package markdown

import (
	"regexp"
	"strings"
)

var (
	metadataLinePattern = regexp.MustCompile(`(?i)^\*\*([^*]+?):\*\*\s*(.*)$`)

	// bodyBlockPattern captures text introduced by a "### Content:" or
	// "### Summary" header, ending at a "---" separator line or end of
	// section.
	bodyBlockPattern = regexp.MustCompile(`(?s)### (?:Content:|Summary)\s*\n(.*?)(?:\n---|\z)`)
)

// SectionMetadata is the parsed view of one item section: the title line,
// a lowercase key -> value mapping of metadata lines, and the content body.
type SectionMetadata struct {
	Title  string
	Fields map[string]string
	Body   string
}

// Field returns the value for a lowercase metadata key, or the fallback
// when the key is absent or blank.
func (m *SectionMetadata) Field(key, fallback string) string {
	if v, ok := m.Fields[key]; ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// ExtractMetadata parses one section's raw text. The first non-blank line
// is the title; every "**Key:** value" line becomes a metadata entry keyed
// by lowercase key (last match wins); the body block is located by its
// structural delimiter. Missing metadata or body never produces an error -
// callers resolve absent fields through Field fallbacks.
func ExtractMetadata(text string) *SectionMetadata {
	meta := &SectionMetadata{Fields: make(map[string]string)}

	lines := strings.Split(text, "\n")
	titleSeen := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !titleSeen {
			meta.Title = trimmed
			titleSeen = true
			continue
		}
		if match := metadataLinePattern.FindStringSubmatch(trimmed); match != nil {
			key := strings.ToLower(strings.TrimSpace(match[1]))
			meta.Fields[key] = strings.TrimSpace(match[2])
		}
	}

	if match := bodyBlockPattern.FindStringSubmatch(text); match != nil {
		meta.Body = strings.TrimSpace(match[1])
	}

	return meta
}
