// Package types provides type definitions for structured data used throughout the skillbyte system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillProfile is the keyword-derived skill inventory for a single resume text.
// Technical, Soft and Tools hold canonical catalog names in catalog order.
type SkillProfile struct {
	Technical      []string `json:"technical"`
	Soft           []string `json:"soft"`
	Tools          []string `json:"tools"`
	Certifications []string `json:"certifications"`
}

// NewSkillProfile returns a profile with every category initialized to an empty slice
func NewSkillProfile() SkillProfile {
	return SkillProfile{
		Technical:      []string{},
		Soft:           []string{},
		Tools:          []string{},
		Certifications: []string{},
	}
}

// Flat returns technical skills followed by soft skills, without duplicates.
// This is the skill list used by the eligibility job matcher.
func (p SkillProfile) Flat() []string {
	seen := make(map[string]bool, len(p.Technical)+len(p.Soft))
	flat := make([]string, 0, len(p.Technical)+len(p.Soft))
	for _, group := range [][]string{p.Technical, p.Soft} {
		for _, skill := range group {
			if seen[skill] {
				continue
			}
			seen[skill] = true
			flat = append(flat, skill)
		}
	}
	return flat
}

// IsEmpty reports whether no skill of any category was detected
func (p SkillProfile) IsEmpty() bool {
	return len(p.Technical) == 0 && len(p.Soft) == 0 && len(p.Tools) == 0 && len(p.Certifications) == 0
}
