// Package types provides type definitions for structured data used throughout the skillbyte system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// FeedbackSource tells where Report.FeedbackText came from
type FeedbackSource string

// Feedback sources
const (
	FeedbackLocal  FeedbackSource = "local"
	FeedbackRemote FeedbackSource = "remote"
)

// Report is the complete result of analyzing one resume text
type Report struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	Profile         SkillProfile     `json:"profile"`
	TechSkills      []string         `json:"tech_skills"`
	Tier            ExperienceTier   `json:"experience_level"`
	Role            Role             `json:"role"`
	Recommendations []RankedMatch    `json:"recommendations"`
	Listings        []RankedMatch    `json:"listings"`
	Feedback        FeedbackDocument `json:"feedback_document"`
	FeedbackText    string           `json:"feedback"`
	FeedbackSource  FeedbackSource   `json:"feedback_source"`
	RemoteError     string           `json:"remote_error,omitempty"`
	Preview         string           `json:"preview"`
}
