// Package feedback composes sectioned, role-aware resume feedback from plain text.
package feedback

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/skills"
	"github.com/jonathan/skillbyte/internal/types"
)

// Composer builds feedback documents from resume text
type Composer struct {
	cat       *catalog.Catalog
	extractor *skills.Extractor
}

// NewComposer creates a composer over cat. A nil catalog means the built-in one.
func NewComposer(cat *catalog.Catalog) *Composer {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Composer{cat: cat, extractor: skills.NewExtractor(cat)}
}

// Compose returns the feedback document for text. It never fails: blank text
// produces a document built from generic template text.
func (c *Composer) Compose(text string) types.FeedbackDocument {
	lines := splitLines(text)
	tech := c.extractor.ExtractTech(text)
	role := InferRole(c.cat, tech)
	tmpl, _ := c.cat.Role(role)

	bullets := detectBullets(lines)
	rewrites := rewriteBullets(bullets)

	doc := types.FeedbackDocument{Role: role}
	doc.Sections = append(doc.Sections,
		summarySection(role, summaryLine(lines), len(bullets), len(tech)),
		headlineSection(role, tmpl, tech),
	)
	if len(rewrites) > 0 {
		doc.Sections = append(doc.Sections, bulletSection(rewrites))
	}
	doc.Sections = append(doc.Sections,
		roleTipsSection(role, tmpl),
		nextStepsSection(tech),
	)
	return doc
}

func summarySection(role types.Role, summary string, bullets, skills int) types.FeedbackSection {
	summaryNote := "No clear summary found"
	if summary != "" {
		summaryNote = "Found summary but could be more impactful"
	}
	bulletNote := "add more"
	if bullets >= 3 {
		bulletNote = "good!"
	}
	return types.FeedbackSection{
		Kind:  types.SectionSummary,
		Title: "Quick Summary",
		Intro: fmt.Sprintf("Your resume suggests a %s focus. Here's a quick analysis:", role),
		Lines: []string{
			"- " + summaryNote,
			fmt.Sprintf("- %d achievement bullets found (%s)", bullets, bulletNote),
			fmt.Sprintf("- %d relevant skills detected", skills),
		},
	}
}

// headlineSection always offers exactly three headlines
func headlineSection(role types.Role, tmpl catalog.RoleTemplate, tech []string) types.FeedbackSection {
	expertise := "proven project"
	if len(tech) > 0 {
		expertise = strings.Join(clip(tech, 0, 2), " & ")
	}
	lead := "Software"
	if len(tech) > 0 {
		lead = tech[0]
	}
	passion := "building great products"
	if rest := clip(tech, 1, 3); len(rest) > 0 {
		passion = strings.Join(rest, " & ")
	}

	headlines := []string{
		tmpl.Headline,
		fmt.Sprintf("%s Developer with %s expertise", role.Title(), expertise),
		fmt.Sprintf("%s Developer passionate about %s", lead, passion),
	}
	lines := make([]string, len(headlines))
	for i, h := range headlines {
		lines[i] = `"` + h + `"`
	}
	return types.FeedbackSection{
		Kind:  types.SectionHeadlines,
		Title: "Suggested Headlines",
		Intro: "Try one of these concise, role-focused headlines:",
		Lines: lines,
	}
}

func bulletSection(rewrites []rewrite) types.FeedbackSection {
	var lines []string
	for i, rw := range rewrites {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Original: "+rw.original, "Suggestions:")
		lines = append(lines, rw.suggestions...)
	}
	return types.FeedbackSection{
		Kind:  types.SectionBullets,
		Title: "Achievement Bullet Improvements",
		Intro: "Make achievements concrete with metrics:",
		Lines: lines,
	}
}

func roleTipsSection(role types.Role, tmpl catalog.RoleTemplate) types.FeedbackSection {
	lines := []string{
		"- Key skills: " + strings.Join(tmpl.Skills, ", "),
		"- Example achievement:",
	}
	if len(tmpl.Bullets) > 0 {
		lines = append(lines, tmpl.Bullets[0])
	}
	return types.FeedbackSection{
		Kind:  types.SectionRoleTips,
		Title: "Role-Specific Tips",
		Intro: fmt.Sprintf("For %s roles, emphasize:", role),
		Lines: lines,
	}
}

func nextStepsSection(tech []string) types.FeedbackSection {
	highlight := "3. Add a skills section listing the technologies you use"
	if len(tech) > 0 {
		highlight = "3. Highlight these skills: " + strings.Join(clip(tech, 0, 4), ", ")
	}
	return types.FeedbackSection{
		Kind:  types.SectionNextSteps,
		Title: "Next Steps",
		Lines: []string{
			"1. Add a clear headline at the top",
			"2. Ensure each bullet shows concrete impact (metrics)",
			highlight,
			"4. Keep resume focused and under one page",
		},
	}
}

// clip returns s[from:to] clamped to the bounds of s
func clip(s []string, from, to int) []string {
	if to > len(s) {
		to = len(s)
	}
	if from >= to {
		return nil
	}
	return s[from:to]
}
