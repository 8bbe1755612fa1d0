package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/secbrief/internal/models"
)

func TestRecoverDirect(t *testing.T) {
	raw := `Here is your response:

{"summary": "Attackers exploit CVE-2025-1234.", "dos": ["Patch immediately"], "donts": ["Don't expose the admin panel"]}

Let me know if you need anything else.`

	result := Recover(raw)
	assert.Equal(t, TierDirect, result.Tier)
	assert.Equal(t, "Attackers exploit CVE-2025-1234.", result.Tips.Summary)
	assert.Equal(t, []string{"Patch immediately"}, result.Tips.Dos)
	assert.Equal(t, []string{"Don't expose the admin panel"}, result.Tips.Donts)
}

func TestRecoverSyntaxRepairBareScalar(t *testing.T) {
	raw := `{"summary": ok, "dos": ["Patch now"], "donts": ["Avoid reuse"]}`

	result := Recover(raw)
	assert.Equal(t, TierSyntaxRepair, result.Tier)
	assert.Equal(t, "ok", result.Tips.Summary)
}

func TestRecoverListRepairUnquotedItems(t *testing.T) {
	raw := `{"summary": "ok", "dos": [Patch now, Backup data], "donts": [Dont reuse passwords]}`

	result := Recover(raw)
	assert.Equal(t, TierListRepair, result.Tier)
	assert.Equal(t, "ok", result.Tips.Summary)
	assert.Equal(t, []string{"Patch now", "Backup data"}, result.Tips.Dos)
	assert.Equal(t, []string{"Dont reuse passwords"}, result.Tips.Donts)
}

func TestRecoverFieldExtraction(t *testing.T) {
	// Structurally hopeless: unbalanced braces, but fields are findable.
	raw := `{{"summary": "Phishing wave targets finance teams", "dos": ["Verify sender domains", "Report suspicious mail"], "donts": ["Don't open unexpected attachments"]`

	result := Recover(raw)
	assert.Equal(t, TierFieldExtraction, result.Tier)
	assert.Equal(t, "Phishing wave targets finance teams", result.Tips.Summary)
	assert.Equal(t, []string{"Verify sender domains", "Report suspicious mail"}, result.Tips.Dos)
	assert.Equal(t, []string{"Don't open unexpected attachments"}, result.Tips.Donts)
}

func TestRecoverLineHeuristic(t *testing.T) {
	raw := `The model decided to answer in prose instead.

Do: enable multi-factor authentication
Do: rotate exposed credentials
Don't: reuse passwords across systems`

	result := Recover(raw)
	assert.Equal(t, TierLineHeuristic, result.Tier)
	assert.Equal(t, []string{"enable multi-factor authentication", "rotate exposed credentials"}, result.Tips.Dos)
	assert.Equal(t, []string{"reuse passwords across systems"}, result.Tips.Donts)
	// summary falls back to the default
	assert.Equal(t, models.DefaultTipsSummaryText, result.Tips.Summary)
}

func TestRecoverDefaults(t *testing.T) {
	result := Recover("nothing useful in here at all")

	assert.Equal(t, TierDefaults, result.Tier)
	assert.Equal(t, models.DefaultTipsSummaryText, result.Tips.Summary)
	assert.Equal(t, []string{models.DefaultDoText}, result.Tips.Dos)
	assert.Equal(t, []string{models.DefaultDontText}, result.Tips.Donts)
}

func TestRecoverAlwaysNonEmpty(t *testing.T) {
	inputs := []string{
		"",
		"{}",
		`{"summary": "", "dos": [], "donts": []}`,
		`{"summary": "text only"}`,
		"random prose with no structure",
		`{"summary": broken, "dos": [a, b], "donts": [c]}`,
	}
	for _, raw := range inputs {
		result := Recover(raw)
		require.NotEmpty(t, result.Tips.Summary, "input %q", raw)
		require.NotEmpty(t, result.Tips.Dos, "input %q", raw)
		require.NotEmpty(t, result.Tips.Donts, "input %q", raw)
	}
}

func TestExtractCandidateIgnoresBracesInStrings(t *testing.T) {
	raw := `{"summary": "uses {braces} inside", "dos": ["a"], "donts": ["b"]}`
	candidate := extractCandidate(raw)
	assert.Equal(t, raw, candidate)

	result := Recover(raw)
	assert.Equal(t, TierDirect, result.Tier)
	assert.Equal(t, "uses {braces} inside", result.Tips.Summary)
}
