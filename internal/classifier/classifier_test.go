package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPrimaryCategory(t *testing.T) {
	c := New()

	class := c.Classify("Critical vulnerability found in popular router firmware", "")
	assert.Equal(t, "vulnerability", class.Primary)

	class = c.Classify("New ransomware strain spreads through phishing emails", "")
	assert.Equal(t, "malware", class.Primary)
	assert.Equal(t, "phishing", class.Secondary)
}

func TestClassifyTitleOutweighsBody(t *testing.T) {
	c := New()

	// one title keyword (x3) beats two body keywords (x1 each)
	class := c.Classify(
		"Phishing campaign hits banks",
		"the malware payload is a trojan",
	)
	assert.Equal(t, "phishing", class.Primary)
	assert.Equal(t, "malware", class.Secondary)
}

func TestClassifyGeneralFallback(t *testing.T) {
	c := New()

	class := c.Classify("Quarterly industry report released", "nothing security specific here")
	assert.Equal(t, GeneralCategory, class.Primary)
	assert.Empty(t, class.Secondary)
}

func TestClassifyDeterministic(t *testing.T) {
	c := New()
	title := "Ransomware exploits router flaw in phishing wave"
	body := "details about the cloud breach"

	first := c.Classify(title, body)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(title, body))
	}
}

func TestTipsVulnerabilityCustomization(t *testing.T) {
	c := New()

	tips := c.Tips("Fortinet patches critical vulnerability CVE-2025-12345", "exploit details")
	assert.Contains(t, tips.Summary, "CVE-2025-12345")
	assert.Contains(t, tips.Summary, "Fortinet")
	require.NotEmpty(t, tips.Dos)
	assert.Contains(t, tips.Dos[0], "Fortinet")
	assert.Contains(t, tips.Dos[2], "CVE-2025-12345")
}

func TestTipsMalwareCustomization(t *testing.T) {
	c := New()

	tips := c.Tips("Windows ransomware campaign expands", "")
	assert.Contains(t, tips.Summary, "Windows")
	assert.Contains(t, tips.Dos[0], "Windows")
}

func TestTipsSecondaryBlending(t *testing.T) {
	c := New()

	// primary malware, secondary phishing: three primary items plus one
	// blended item from the secondary category
	tips := c.Tips("New ransomware strain spreads through phishing emails", "")
	require.Len(t, tips.Dos, 4)
	require.Len(t, tips.Donts, 4)
	assert.Equal(t, defaultCategories()[2].Template.Dos[0], tips.Dos[3])
	assert.Equal(t, defaultCategories()[2].Template.Donts[0], tips.Donts[3])
}

func TestTipsGeneralKeyTerms(t *testing.T) {
	c := New()

	tips := c.Tips("Quarterly Report covers Technology trends", "")
	assert.Contains(t, tips.Summary, "Quarterly, Report")
	assert.NotEmpty(t, tips.Dos)
	assert.NotEmpty(t, tips.Donts)
}

func TestTipsDoesNotMutateTemplates(t *testing.T) {
	c := New()

	before := defaultCategories()[0].Template.Dos[0]
	_ = c.Tips("Fortinet patches critical vulnerability CVE-2025-12345", "")
	assert.Equal(t, before, c.categories[0].Template.Dos[0])
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")
	content := `categories:
  - name: supply_chain
    keywords: ["supply chain", "dependency", "package registry"]
    summary: "Supply chain compromise advice."
    dos:
      - "Pin dependency versions"
    donts:
      - "Don't auto-merge dependency updates"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := NewFromFile(path)
	require.NoError(t, err)

	class := c.Classify("Package registry dependency attack", "")
	assert.Equal(t, "supply_chain", class.Primary)

	tips := c.Tips("Package registry dependency attack", "")
	assert.Equal(t, "Supply chain compromise advice.", tips.Summary)

	// built-in general template survives an override with no general block
	class = c.Classify("unrelated text", "")
	assert.Equal(t, GeneralCategory, class.Primary)
}

func TestNewFromFileRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0644))

	_, err := NewFromFile(path)
	assert.Error(t, err)
}
