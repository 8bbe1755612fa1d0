package recovery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/ternarybob/secbrief/internal/models"
)

// Tier identifies which recovery strategy produced a result.
type Tier string

const (
	TierDirect          Tier = "direct"
	TierSyntaxRepair    Tier = "syntax_repair"
	TierListRepair      Tier = "list_repair"
	TierFieldExtraction Tier = "field_extraction"
	TierLineHeuristic   Tier = "line_heuristic"
	TierDefaults        Tier = "defaults"
)

// Result is a recovered tips record annotated with the tier that produced
// it. Summary, Dos, and Donts are always populated.
type Result struct {
	Tips models.Tips
	Tier Tier
}

// strategy attempts one recovery approach. It reports ok=false to pass
// control to the next strategy, never an error.
type strategy struct {
	tier Tier
	run  func(raw string) (models.Tips, bool)
}

var strategies = []strategy{
	{TierDirect, recoverDirect},
	{TierSyntaxRepair, recoverSyntaxRepair},
	{TierListRepair, recoverListRepair},
	{TierFieldExtraction, recoverFieldExtraction},
	{TierLineHeuristic, recoverLineHeuristic},
}

// Recover extracts a structured {summary, dos, donts} record from raw
// model output. Strategies run in order from strict to loose; the first
// success wins, and total failure still yields generic defaults. The
// function is total - it never returns an error.
func Recover(raw string) Result {
	for _, s := range strategies {
		if tips, ok := s.run(raw); ok {
			tips.ApplyDefaults()
			return Result{Tips: tips, Tier: s.tier}
		}
	}

	tips := models.Tips{}
	tips.ApplyDefaults()
	return Result{Tips: tips, Tier: TierDefaults}
}

// extractCandidate locates the smallest balanced {...} substring that
// contains all three required keys. Returns "" when no such object exists.
func extractCandidate(raw string) string {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for i := start; i < len(raw); i++ {
			c := raw[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					candidate := raw[start : i+1]
					if strings.Contains(candidate, "summary") &&
						strings.Contains(candidate, "dos") &&
						strings.Contains(candidate, "donts") {
						return candidate
					}
					i = len(raw) // abandon this start position
				}
			}
		}
	}
	return ""
}

// parseTips decodes a candidate JSON object and coerces it into a Tips
// value. All three keys must be present with usable types.
func parseTips(candidate string) (models.Tips, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return models.Tips{}, false
	}

	summary, ok := obj["summary"].(string)
	if !ok {
		return models.Tips{}, false
	}
	dos, ok := stringList(obj["dos"])
	if !ok {
		return models.Tips{}, false
	}
	donts, ok := stringList(obj["donts"])
	if !ok {
		return models.Tips{}, false
	}

	return models.Tips{Summary: strings.TrimSpace(summary), Dos: dos, Donts: donts}, true
}

func stringList(v interface{}) ([]string, bool) {
	raw, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	items := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items, true
}

func recoverDirect(raw string) (models.Tips, bool) {
	candidate := extractCandidate(raw)
	if candidate == "" {
		return models.Tips{}, false
	}
	return parseTips(candidate)
}

var (
	bareValueBeforeComma = regexp.MustCompile(`:\s*([^"{}\[\],\s][^{}\[\],\n]*?)\s*,`)
	bareValueAtLineEnd   = regexp.MustCompile(`(?m):\s*([^"{}\[\],\s][^{}\[\],\n]*?)\s*$`)
	bareValueBeforeBrace = regexp.MustCompile(`:\s*([^"{}\[\],\s][^{}\[\],\n]*?)\s*}`)
)

// repairSyntax inserts missing quotes around bare scalar values that
// appear before a comma, closing brace, or end of line.
func repairSyntax(candidate string) string {
	fixed := bareValueBeforeComma.ReplaceAllString(candidate, `: "$1",`)
	fixed = bareValueAtLineEnd.ReplaceAllString(fixed, `: "$1"`)
	fixed = bareValueBeforeBrace.ReplaceAllString(fixed, `: "$1"}`)
	return fixed
}

func recoverSyntaxRepair(raw string) (models.Tips, bool) {
	candidate := extractCandidate(raw)
	if candidate == "" {
		return models.Tips{}, false
	}
	return parseTips(repairSyntax(candidate))
}

var listSpanPattern = regexp.MustCompile(`\[([^\[\]]*)\]`)

// repairLists quotes unquoted items inside every [...] span independently.
func repairLists(candidate string) string {
	return listSpanPattern.ReplaceAllStringFunc(candidate, func(span string) string {
		inner := span[1 : len(span)-1]
		items := strings.Split(inner, ",")
		quoted := make([]string, 0, len(items))
		for _, item := range items {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if !strings.HasPrefix(item, `"`) || !strings.HasSuffix(item, `"`) {
				item = `"` + strings.ReplaceAll(item, `"`, `\"`) + `"`
			}
			quoted = append(quoted, item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	})
}

func recoverListRepair(raw string) (models.Tips, bool) {
	candidate := extractCandidate(raw)
	if candidate == "" {
		return models.Tips{}, false
	}
	return parseTips(repairLists(repairSyntax(candidate)))
}

var (
	summaryQuotedPattern = regexp.MustCompile(`(?i)"summary"\s*:\s*"([^"]+)"`)
	summaryLoosePattern  = regexp.MustCompile(`(?i)summary["\s:]+([^"\n]+)`)
	dosSpanPattern       = regexp.MustCompile(`(?is)"dos"\s*:\s*\[(.*?)\]`)
	dontsSpanPattern     = regexp.MustCompile(`(?is)"donts"\s*:\s*\[(.*?)\]`)
	quotedItemPattern    = regexp.MustCompile(`"([^"]+)"`)
)

// recoverFieldExtraction abandons structural parsing and pulls each field
// out with independent regex scans.
func recoverFieldExtraction(raw string) (models.Tips, bool) {
	tips := models.Tips{}

	if match := summaryQuotedPattern.FindStringSubmatch(raw); match != nil {
		tips.Summary = strings.TrimSpace(match[1])
	} else if match := summaryLoosePattern.FindStringSubmatch(raw); match != nil {
		tips.Summary = strings.TrimSpace(match[1])
	}

	tips.Dos = quotedItemsInSpan(dosSpanPattern, raw)
	tips.Donts = quotedItemsInSpan(dontsSpanPattern, raw)

	if tips.Summary == "" && len(tips.Dos) == 0 && len(tips.Donts) == 0 {
		return models.Tips{}, false
	}
	return tips, true
}

func quotedItemsInSpan(span *regexp.Regexp, raw string) []string {
	match := span.FindStringSubmatch(raw)
	if match == nil {
		return nil
	}
	var items []string
	for _, m := range quotedItemPattern.FindAllStringSubmatch(match[1], -1) {
		if trimmed := strings.TrimSpace(m[1]); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

var (
	doLinePattern   = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*|[-•*]\s*)?do(?:'?s)?\s*[:\-]?\s+(.+)$`)
	dontLinePattern = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*|[-•*]\s*)?don'?t(?:s)?\s*[:\-]?\s+(.+)$`)
)

// recoverLineHeuristic scans free text with no JSON structure at all for
// lines introduced by Do/Don't markers.
func recoverLineHeuristic(raw string) (models.Tips, bool) {
	tips := models.Tips{}

	for _, line := range strings.Split(raw, "\n") {
		// Don't lines also match the Do pattern, so test them first.
		if match := dontLinePattern.FindStringSubmatch(line); match != nil {
			tips.Donts = append(tips.Donts, strings.TrimSpace(match[1]))
			continue
		}
		if match := doLinePattern.FindStringSubmatch(line); match != nil {
			tips.Dos = append(tips.Dos, strings.TrimSpace(match[1]))
		}
	}

	if len(tips.Dos) == 0 && len(tips.Donts) == 0 {
		return models.Tips{}, false
	}
	return tips, true
}
