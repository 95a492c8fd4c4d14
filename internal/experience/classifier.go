// Package experience assigns an experience tier to resume text.
package experience

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/types"
)

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`)

// Rule identifies which classification rule produced a tier
type Rule string

// Rules in evaluation order
const (
	RuleYears     Rule = "years"
	RuleWork      Rule = "work_keywords"
	RuleEducation Rule = "education_keywords"
	RuleFallback  Rule = "fallback"
)

// Assessment is a tier together with the evidence behind it
type Assessment struct {
	Tier types.ExperienceTier `json:"tier"`
	Rule Rule                 `json:"rule"`
	// Years is the first explicit year count found, or -1 when there is none
	Years int `json:"years"`
}

// Classifier maps text to an experience tier using the catalog's keyword lists
type Classifier struct {
	work      []string
	education []string
}

// NewClassifier creates a classifier over cat. A nil catalog means the built-in one.
func NewClassifier(cat *catalog.Catalog) *Classifier {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Classifier{
		work:      cat.Experience.Work,
		education: cat.Experience.Education,
	}
}

// Classify returns the experience tier for text
func (c *Classifier) Classify(text string) types.ExperienceTier {
	return c.Assess(text).Tier
}

// Assess applies the rules in order and stops at the first that decides:
//  1. an explicit "<N> years experience" mention with N >= 1
//  2. work keywords without education keywords
//  3. education keywords, or no work keywords at all
//  4. beginner
func (c *Classifier) Assess(text string) Assessment {
	years := -1
	if m := yearsPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// only overflow is possible after \d+, and that many years is plenty
			return Assessment{Tier: types.TierIntermediate, Rule: RuleYears, Years: -1}
		}
		years = n
		switch {
		case n >= 3:
			return Assessment{Tier: types.TierIntermediate, Rule: RuleYears, Years: n}
		case n >= 1:
			return Assessment{Tier: types.TierEarlyCareer, Rule: RuleYears, Years: n}
		}
	}

	lower := strings.ToLower(text)
	hasWork := containsAny(lower, c.work)
	hasEducation := containsAny(lower, c.education)

	switch {
	case hasWork && !hasEducation:
		return Assessment{Tier: types.TierEarlyCareer, Rule: RuleWork, Years: years}
	case hasEducation || !hasWork:
		return Assessment{Tier: types.TierHighSchoolGraduate, Rule: RuleEducation, Years: years}
	default:
		return Assessment{Tier: types.TierBeginner, Rule: RuleFallback, Years: years}
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
