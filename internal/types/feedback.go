// Package types provides type definitions for structured data used throughout the skillbyte system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SectionKind identifies a feedback section
type SectionKind string

// Feedback section kinds, in the order they appear in a document
const (
	SectionSummary   SectionKind = "summary"
	SectionHeadlines SectionKind = "headlines"
	SectionBullets   SectionKind = "bullets"
	SectionRoleTips  SectionKind = "role_tips"
	SectionNextSteps SectionKind = "next_steps"
)

var sectionIcons = map[SectionKind]string{
	SectionSummary:   "💡",
	SectionHeadlines: "✨",
	SectionBullets:   "📝",
	SectionRoleTips:  "🎯",
	SectionNextSteps: "✅",
}

// FeedbackSection is one independently meaningful block of feedback text
type FeedbackSection struct {
	Kind  SectionKind `json:"kind"`
	Title string      `json:"title"`
	Intro string      `json:"intro,omitempty"`
	Lines []string    `json:"lines"`
}

// String renders the section as display text
func (s FeedbackSection) String() string {
	var sb strings.Builder
	if icon, ok := sectionIcons[s.Kind]; ok {
		sb.WriteString(icon)
		sb.WriteString(" ")
	}
	sb.WriteString(s.Title)
	sb.WriteString("\n")
	if s.Intro != "" {
		sb.WriteString(s.Intro)
		sb.WriteString("\n")
	}
	for _, line := range s.Lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FeedbackDocument is the ordered, human-facing resume feedback
type FeedbackDocument struct {
	Role     Role              `json:"role"`
	Sections []FeedbackSection `json:"sections"`
}

// Section returns the first section of the given kind
func (d FeedbackDocument) Section(kind SectionKind) (FeedbackSection, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return FeedbackSection{}, false
}

// String joins all sections with a blank line between them
func (d FeedbackDocument) String() string {
	parts := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, "\n")
}
