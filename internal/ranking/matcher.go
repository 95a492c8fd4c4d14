// Package ranking selects and orders job archetypes for a skill profile.
//
// Two strategies are available. Overlap mode scores every listing by how many of
// its skills the candidate has. Eligibility mode picks pre-scored archetypes from
// an entry-level pool and a tech pool according to the candidate's tier and skills.
package ranking

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/types"
)

// Mode selects a matching strategy
type Mode string

// Matching modes
const (
	ModeOverlap     Mode = "overlap"
	ModeEligibility Mode = "eligibility"
)

const (
	maxTechMatches      = 3
	blendedTechMatches  = 1
	blendedEntryMatches = 2
)

// ParseMode converts a user-supplied mode name. An empty name selects overlap mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeOverlap:
		return ModeOverlap, nil
	case ModeEligibility:
		return ModeEligibility, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (want %q or %q)", s, ModeOverlap, ModeEligibility)
	}
}

// Matcher ranks the job archetypes of a catalog
type Matcher struct {
	listings   []types.JobArchetype
	entryLevel []types.JobArchetype
	tech       []types.JobArchetype
}

// NewMatcher creates a matcher over cat. A nil catalog means the built-in one.
func NewMatcher(cat *catalog.Catalog) *Matcher {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Matcher{
		listings:   cat.Listings,
		entryLevel: cat.EntryLevelJobs,
		tech:       cat.TechJobs,
	}
}

// Match dispatches to the strategy named by mode. Overlap mode ranks by techSkills;
// eligibility mode uses the profile and tier.
func (m *Matcher) Match(mode Mode, profile types.SkillProfile, techSkills []string, tier types.ExperienceTier) ([]types.RankedMatch, error) {
	switch mode {
	case ModeOverlap:
		return m.RankByOverlap(techSkills), nil
	case ModeEligibility:
		return m.SelectEligible(profile, tier), nil
	default:
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}
}

// RankByOverlap scores every listing by the number of its skills present in skills
// (case-insensitive exact names) and sorts descending. Equal scores keep catalog
// order and zero scores are kept.
func (m *Matcher) RankByOverlap(skills []string) []types.RankedMatch {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[strings.ToLower(s)] = true
	}

	ranked := make([]types.RankedMatch, 0, len(m.listings))
	for _, job := range m.listings {
		score := 0
		for _, s := range job.Skills {
			if have[strings.ToLower(s)] {
				score++
			}
		}
		ranked = append(ranked, types.RankedMatch{Job: cloneJob(job), Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectEligible applies the two-pool policy:
//  1. no skills, or a high school graduate: the entry-level pool, or the first
//     tech archetypes when that pool is empty
//  2. otherwise the first tech archetypes the candidate is eligible for
//  3. with no eligible tech archetype: one tech archetype followed by two entry-level ones
//
// Results keep catalog order and carry the archetypes' pre-authored match percentages.
func (m *Matcher) SelectEligible(profile types.SkillProfile, tier types.ExperienceTier) []types.RankedMatch {
	skills := profile.Flat()

	if len(skills) == 0 || tier == types.TierHighSchoolGraduate {
		if len(m.entryLevel) == 0 {
			return toMatches(head(m.tech, maxTechMatches))
		}
		return toMatches(m.entryLevel)
	}

	eligible := make([]types.JobArchetype, 0, len(m.tech))
	for _, job := range m.tech {
		if isEligible(job, skills) {
			eligible = append(eligible, job)
		}
	}
	if len(eligible) > 0 {
		return toMatches(head(eligible, maxTechMatches))
	}

	blended := append(slices.Clone(head(m.tech, blendedTechMatches)), head(m.entryLevel, blendedEntryMatches)...)
	return toMatches(blended)
}

// isEligible reports whether the job has no requirements or one of its required
// skills appears inside one of the candidate's skills
func isEligible(job types.JobArchetype, skills []string) bool {
	if len(job.RequiredSkills) == 0 {
		return true
	}
	for _, req := range job.RequiredSkills {
		req = strings.ToLower(req)
		for _, s := range skills {
			if strings.Contains(strings.ToLower(s), req) {
				return true
			}
		}
	}
	return false
}

func head(jobs []types.JobArchetype, n int) []types.JobArchetype {
	if len(jobs) < n {
		return jobs
	}
	return jobs[:n]
}

func toMatches(jobs []types.JobArchetype) []types.RankedMatch {
	out := make([]types.RankedMatch, len(jobs))
	for i, job := range jobs {
		out[i] = types.RankedMatch{Job: cloneJob(job), Match: job.Match}
	}
	return out
}

// cloneJob copies the slices so callers cannot modify the shared catalog
func cloneJob(job types.JobArchetype) types.JobArchetype {
	job.Skills = slices.Clone(job.Skills)
	job.RequiredSkills = slices.Clone(job.RequiredSkills)
	return job
}
