package classifier

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/ternarybob/secbrief/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	titleMatchWeight = 3
	bodyMatchWeight  = 1
)

var (
	productNamePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s[A-Z][a-z]+)*)\b`)
	cveIDPattern       = regexp.MustCompile(`CVE-\d{4}-\d{4,}`)
)

// Classification records which categories an article matched.
type Classification struct {
	Primary   string
	Secondary string
}

// Classifier infers a security category from keyword frequency and
// produces canned, article-customized tips for it. All methods are pure
// and deterministic given the same input text and category table.
type Classifier struct {
	categories []categoryDef
	general    Template
}

// New returns a classifier with the built-in category table.
func New() *Classifier {
	return &Classifier{
		categories: defaultCategories(),
		general:    defaultGeneralTemplate(),
	}
}

// templatesFile is the YAML override shape: a replacement category list
// and optional general template.
type templatesFile struct {
	Categories []categoryDef `yaml:"categories"`
	General    *Template     `yaml:"general"`
}

// NewFromFile loads a category table override from a YAML file. Categories
// present in the file replace the built-in table entirely; an absent
// general section keeps the built-in general template.
func NewFromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier templates: %w", err)
	}

	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse classifier templates: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("classifier templates file %s defines no categories", path)
	}
	for _, cat := range file.Categories {
		if cat.Name == "" || len(cat.Keywords) == 0 {
			return nil, fmt.Errorf("classifier category entries require a name and keywords")
		}
	}

	c := New()
	c.categories = file.Categories
	if file.General != nil {
		c.general = *file.General
	}
	return c, nil
}

// Classify scores every category against the article text. Title matches
// weigh 3x body matches. The top score becomes the primary category, the
// runner-up (score > 0) the secondary; zero matches everywhere selects
// "general" with no secondary.
func (c *Classifier) Classify(title, body string) Classification {
	lowerTitle := strings.ToLower(title)
	lowerBody := strings.ToLower(body)

	type scored struct {
		name  string
		score int
		order int
	}
	var matches []scored
	for i, cat := range c.categories {
		score := 0
		for _, keyword := range cat.Keywords {
			kw := strings.ToLower(keyword)
			if strings.Contains(lowerTitle, kw) {
				score += titleMatchWeight
			}
			if lowerBody != "" && strings.Contains(lowerBody, kw) {
				score += bodyMatchWeight
			}
		}
		if score > 0 {
			matches = append(matches, scored{cat.Name, score, i})
		}
	}

	// Ties resolve by table order so classification stays deterministic.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if len(matches) == 0 {
		return Classification{Primary: GeneralCategory}
	}
	result := Classification{Primary: matches[0].name}
	if len(matches) > 1 {
		result.Secondary = matches[1].name
	}
	return result
}

// Tips builds a complete tips record for an article from its classified
// category templates, customized with any product name or CVE id found in
// the text and blended with one item each from the secondary category.
func (c *Classifier) Tips(title, body string) models.Tips {
	class := c.Classify(title, body)

	primary, ok := c.template(class.Primary)
	if !ok || class.Primary == GeneralCategory {
		return c.generalTips(title)
	}
	tips := models.Tips{
		Summary: primary.Summary,
		Dos:     append([]string(nil), primary.Dos...),
		Donts:   append([]string(nil), primary.Donts...),
	}

	productName := ""
	if match := productNamePattern.FindStringSubmatch(title); match != nil {
		productName = match[1]
	}
	cveID := cveIDPattern.FindString(title + " " + body)

	switch {
	case productName != "" && class.Primary == "vulnerability":
		tips.Summary = fmt.Sprintf("This article discusses critical vulnerabilities affecting %s that could be exploited if left unaddressed. Users of these systems should apply security patches immediately.", productName)
		if len(tips.Dos) > 0 {
			tips.Dos[0] = fmt.Sprintf("Apply the latest security patches for %s as soon as possible", productName)
		}
		if cveID != "" {
			tips.Summary = fmt.Sprintf("This article reveals details about %s, a vulnerability affecting %s. Users should apply patches to mitigate exploitation risks.", cveID, productName)
			if len(tips.Dos) > 2 {
				tips.Dos[2] = fmt.Sprintf("Monitor vendor advisories for %s regarding %s", productName, cveID)
			}
		}
	case productName != "" && class.Primary == "malware":
		tips.Summary = fmt.Sprintf("This article discusses malware threats targeting %s systems. Users should implement protective measures to safeguard against infection.", productName)
		if len(tips.Dos) > 0 {
			tips.Dos[0] = fmt.Sprintf("Ensure anti-malware solutions are updated and configured to protect %s systems", productName)
		}
	}

	if secondary, ok := c.template(class.Secondary); ok {
		if len(tips.Dos) >= 3 && len(secondary.Dos) > 0 {
			tips.Dos = append(tips.Dos[:3:3], secondary.Dos[0])
		}
		if len(tips.Donts) >= 3 && len(secondary.Donts) > 0 {
			tips.Donts = append(tips.Donts[:3:3], secondary.Donts[0])
		}
	}

	tips.ApplyDefaults()
	return tips
}

// generalTips customizes the general template with significant capitalized
// terms from the title.
func (c *Classifier) generalTips(title string) models.Tips {
	tips := models.Tips{
		Summary: c.general.Summary,
		Dos:     append([]string(nil), c.general.Dos...),
		Donts:   append([]string(nil), c.general.Donts...),
	}

	var keyTerms []string
	for _, word := range strings.Fields(title) {
		if len(word) > 4 && word[0] >= 'A' && word[0] <= 'Z' {
			keyTerms = append(keyTerms, word)
		}
		if len(keyTerms) == 2 {
			break
		}
	}
	if len(keyTerms) > 0 {
		tips.Summary = fmt.Sprintf("This article discusses cybersecurity issues related to %s. Following security best practices can help mitigate associated risks.", strings.Join(keyTerms, ", "))
	}

	tips.ApplyDefaults()
	return tips
}

func (c *Classifier) template(name string) (Template, bool) {
	if name == "" {
		return Template{}, false
	}
	if name == GeneralCategory {
		return c.general, true
	}
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat.Template, true
		}
	}
	return Template{}, false
}
