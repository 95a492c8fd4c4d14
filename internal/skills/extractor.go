// Package skills detects catalog skills in resume text by synonym containment.
//
// Matching is plain substring containment on lowercased text with no word
// boundaries, so short synonyms over-match: "js" is found inside "node.js" and
// "ts" inside "charts". Results are tuned against this behavior; do not switch to
// token matching without revisiting the catalog.
package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/types"
)

var certificationPattern = regexp.MustCompile(`(?i)certified\s+in\s+([^,.;]+)`)

// Extractor builds skill profiles from text using a catalog
type Extractor struct {
	cat *catalog.Catalog
}

// NewExtractor creates an extractor over cat. A nil catalog means the built-in one.
func NewExtractor(cat *catalog.Catalog) *Extractor {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Extractor{cat: cat}
}

// Extract classifies the skills mentioned in text into technical, soft, tools and
// certifications. Blank text yields an empty (non-nil) profile.
func (e *Extractor) Extract(text string) types.SkillProfile {
	profile := types.NewSkillProfile()
	if strings.TrimSpace(text) == "" {
		return profile
	}

	lower := strings.ToLower(text)
	profile.Technical = matchEntries(lower, e.cat.Technical)
	profile.Soft = matchEntries(lower, e.cat.Soft)
	profile.Tools = matchEntries(lower, e.cat.Tools)
	profile.Certifications = extractCertifications(text, lower)
	return profile
}

// ExtractTech returns the flat list of tech skills from the coarse tech-only table,
// in catalog order.
func (e *Extractor) ExtractTech(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return matchEntries(strings.ToLower(text), e.cat.TechSkills)
}

// matchEntries returns the name of every entry with at least one synonym in lower
func matchEntries(lower string, entries []catalog.Entry) []string {
	found := []string{}
	for _, entry := range entries {
		for _, synonym := range entry.Synonyms {
			if strings.Contains(lower, synonym) {
				found = append(found, entry.Name)
				break
			}
		}
	}
	return found
}

// extractCertifications collects every "certified in <phrase>" match as written.
// Duplicates are kept; a match whose phrase is blank is skipped.
func extractCertifications(text, lower string) []string {
	certs := []string{}
	if !strings.Contains(lower, "certified") && !strings.Contains(lower, "certification") {
		return certs
	}
	for _, m := range certificationPattern.FindAllStringSubmatch(text, -1) {
		if strings.TrimSpace(m[1]) == "" {
			continue
		}
		certs = append(certs, strings.TrimSpace(m[0]))
	}
	return certs
}
