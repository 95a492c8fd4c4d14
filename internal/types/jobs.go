// Package types provides type definitions for structured data used throughout the skillbyte system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobArchetype is a static, pre-authored job record used as a recommendation candidate
type JobArchetype struct {
	Title    string `json:"title"`
	Company  string `json:"company,omitempty"`
	Type     string `json:"type,omitempty"`
	Location string `json:"location,omitempty"`
	Reason   string `json:"reason,omitempty"`
	// Skills is the descriptive skill list shown to the user
	Skills []string `json:"skills"`
	// RequiredSkills gates eligibility for tech archetypes; empty means always eligible
	RequiredSkills []string `json:"required_skills,omitempty"`
	// Match is a pre-authored fit percentage, not computed
	Match int `json:"match,omitempty"`
}

// RankedMatch pairs an archetype with its score.
// Score is the skill overlap count (overlap mode); Match is the archetype's
// pre-authored percentage (eligibility mode).
type RankedMatch struct {
	Job   JobArchetype `json:"job"`
	Score int          `json:"score"`
	Match int          `json:"match,omitempty"`
}
