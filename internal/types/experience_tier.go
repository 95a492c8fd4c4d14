// Package types provides type definitions for structured data used throughout the skillbyte system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ExperienceTier is the inferred career stage of a candidate
type ExperienceTier string

// Experience tiers, from least to most experienced
const (
	TierBeginner           ExperienceTier = "beginner"
	TierHighSchoolGraduate ExperienceTier = "high_school_graduate"
	TierEarlyCareer        ExperienceTier = "early_career"
	TierIntermediate       ExperienceTier = "intermediate"
)

// Label returns a human-readable label for the tier
func (t ExperienceTier) Label() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierHighSchoolGraduate:
		return "High school graduate"
	case TierEarlyCareer:
		return "Early career"
	case TierIntermediate:
		return "Intermediate"
	default:
		return string(t)
	}
}

// Role is the job family a resume leans toward
type Role string

// Supported roles
const (
	RoleFrontend Role = "frontend"
	RoleBackend  Role = "backend"
	RoleData     Role = "data"
)

// Roles returns every role in tie-break precedence order: frontend, backend, data.
func Roles() []Role {
	return []Role{RoleFrontend, RoleBackend, RoleData}
}

// Title returns the role name with its first letter capitalized ("Frontend")
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := string(r)
	return strings.ToUpper(s[:1]) + s[1:]
}
