package ranking

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(matches []types.RankedMatch) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Job.Title
	}
	return out
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeOverlap, mode)

	mode, err = ParseMode(" Eligibility ")
	require.NoError(t, err)
	assert.Equal(t, ModeEligibility, mode)

	_, err = ParseMode("random")
	assert.Error(t, err)
}

func TestRankByOverlap_ScoresAndOrder(t *testing.T) {
	m := NewMatcher(nil)

	ranked := m.RankByOverlap([]string{"React", "CSS"})
	require.Len(t, ranked, 3)

	assert.Equal(t, "Frontend Developer", ranked[0].Job.Title)
	assert.Equal(t, 2, ranked[0].Score)
	assert.Equal(t, "Full Stack Developer", ranked[1].Job.Title)
	assert.Equal(t, 1, ranked[1].Score)
	assert.Equal(t, "Backend Engineer", ranked[2].Job.Title)
	assert.Equal(t, 0, ranked[2].Score)
}

func TestRankByOverlap_CaseInsensitive(t *testing.T) {
	m := NewMatcher(nil)

	ranked := m.RankByOverlap([]string{"node.js", "EXPRESS"})
	assert.Equal(t, "Backend Engineer", ranked[0].Job.Title)
	assert.Equal(t, 2, ranked[0].Score)
}

func TestRankByOverlap_StableTies(t *testing.T) {
	m := NewMatcher(nil)

	ranked := m.RankByOverlap(nil)
	assert.Equal(t, []string{"Frontend Developer", "Backend Engineer", "Full Stack Developer"}, titles(ranked))
	for _, r := range ranked {
		assert.Zero(t, r.Score)
	}

	// React and Node.js tie Frontend (React) against Backend (Node.js) at 1; Full Stack has 2
	ranked = m.RankByOverlap([]string{"React", "Node.js"})
	assert.Equal(t, []string{"Full Stack Developer", "Frontend Developer", "Backend Engineer"}, titles(ranked))
}

func TestRankByOverlap_Idempotent(t *testing.T) {
	m := NewMatcher(nil)
	skills := []string{"SQL", "React", "JavaScript"}

	assert.Equal(t, m.RankByOverlap(skills), m.RankByOverlap(skills))
}

func TestRankByOverlap_DoesNotShareCatalogSlices(t *testing.T) {
	m := NewMatcher(nil)

	ranked := m.RankByOverlap([]string{"React"})
	ranked[0].Job.Skills[0] = "changed"

	assert.NotEqual(t, "changed", catalog.Default().Listings[0].Skills[0])
}

func TestSelectEligible_NoSkillsGetsEntryLevel(t *testing.T) {
	m := NewMatcher(nil)

	got := m.SelectEligible(types.NewSkillProfile(), types.TierIntermediate)
	assert.Equal(t, []string{"Retail Sales Associate", "Administrative Assistant", "Food Service Worker"}, titles(got))
	assert.Equal(t, []int{60, 65, 55}, []int{got[0].Match, got[1].Match, got[2].Match})
}

func TestSelectEligible_HighSchoolGraduateGetsEntryLevel(t *testing.T) {
	m := NewMatcher(nil)
	profile := types.SkillProfile{Technical: []string{"React", "JavaScript"}}

	got := m.SelectEligible(profile, types.TierHighSchoolGraduate)
	assert.Equal(t, "Entry Level", got[0].Job.Type)
	assert.Len(t, got, 3)
}

func TestSelectEligible_FirstThreeEligibleTechJobs(t *testing.T) {
	m := NewMatcher(nil)
	profile := types.SkillProfile{Technical: []string{"React", "Node"}}

	got := m.SelectEligible(profile, types.TierEarlyCareer)
	assert.Equal(t, []string{"Frontend Developer Intern", "Junior Full Stack Developer", "IT Support Specialist"}, titles(got))
	assert.Equal(t, 90, got[0].Match)
}

func TestSelectEligible_RequiredSkillIsSubstringOfUserSkill(t *testing.T) {
	m := NewMatcher(nil)
	// "html" is contained in "HTML5 pages"
	profile := types.SkillProfile{Technical: []string{"HTML5 pages"}}

	got := m.SelectEligible(profile, types.TierEarlyCareer)
	assert.Equal(t, []string{"Junior Web Developer", "IT Support Specialist"}, titles(got))
}

func TestSelectEligible_BlendedFallback(t *testing.T) {
	cat := *catalog.Default()
	cat.TechJobs = []types.JobArchetype{
		{Title: "Cloud Intern", Type: "Tech", Match: 75, Skills: []string{"AWS"}, RequiredSkills: []string{"AWS"}},
		{Title: "Data Intern", Type: "Tech", Match: 70, Skills: []string{"Python"}, RequiredSkills: []string{"Python"}},
	}
	m := NewMatcher(&cat)
	profile := types.SkillProfile{Soft: []string{"Teamwork"}}

	got := m.SelectEligible(profile, types.TierEarlyCareer)
	assert.Equal(t, []string{"Cloud Intern", "Retail Sales Associate", "Administrative Assistant"}, titles(got))
	assert.Equal(t, 75, got[0].Match)
}

func TestSelectEligible_NeverEmptyWhileAPoolHasJobs(t *testing.T) {
	profiles := []types.SkillProfile{
		types.NewSkillProfile(),
		{Technical: []string{"Excel"}},
		{Soft: []string{"Leadership"}},
		{Technical: []string{"React"}, Soft: []string{"Communication"}},
	}
	tiers := []types.ExperienceTier{
		types.TierBeginner, types.TierHighSchoolGraduate, types.TierEarlyCareer, types.TierIntermediate,
	}

	emptyTech := *catalog.Default()
	emptyTech.TechJobs = nil
	emptyEntry := *catalog.Default()
	emptyEntry.EntryLevelJobs = nil
	emptyEntry.TechJobs = []types.JobArchetype{{Title: "Gated", RequiredSkills: []string{"Rust"}}}

	for _, cat := range []*catalog.Catalog{catalog.Default(), &emptyTech} {
		m := NewMatcher(cat)
		for _, p := range profiles {
			for _, tier := range tiers {
				assert.NotEmpty(t, m.SelectEligible(p, tier), "profile %+v tier %s", p, tier)
			}
		}
	}

	m := NewMatcher(&emptyEntry)
	got := m.SelectEligible(types.SkillProfile{Technical: []string{"Go"}}, types.TierIntermediate)
	assert.Equal(t, []string{"Gated"}, titles(got))

	noEntry := *catalog.Default()
	noEntry.EntryLevelJobs = nil
	m = NewMatcher(&noEntry)
	for _, p := range profiles {
		for _, tier := range tiers {
			assert.NotEmpty(t, m.SelectEligible(p, tier), "no entry pool: profile %+v tier %s", p, tier)
		}
	}
	assert.NotEmpty(t, m.SelectEligible(types.NewSkillProfile(), types.TierBeginner))
	assert.NotEmpty(t, m.SelectEligible(types.SkillProfile{Technical: []string{"React"}}, types.TierHighSchoolGraduate))

	cat, err := catalog.Parse("no-entry.json", catalogWithoutEntryJobs(t))
	require.NoError(t, err)
	got = NewMatcher(cat).SelectEligible(types.NewSkillProfile(), types.TierBeginner)
	assert.Len(t, got, min(len(cat.TechJobs), maxTechMatches))
}

// catalogWithoutEntryJobs returns the built-in catalog JSON with an empty entry-level pool
func catalogWithoutEntryJobs(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "catalog", "catalog.json"))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	raw["entry_level_jobs"] = []any{}
	out, err := json.Marshal(raw)
	require.NoError(t, err)
	return out
}

func TestMatch_Dispatch(t *testing.T) {
	m := NewMatcher(nil)
	profile := types.SkillProfile{Technical: []string{"React"}}

	overlap, err := m.Match(ModeOverlap, profile, []string{"React"}, types.TierEarlyCareer)
	require.NoError(t, err)
	assert.Len(t, overlap, 3)
	assert.Equal(t, 1, overlap[0].Score)

	eligible, err := m.Match(ModeEligibility, profile, nil, types.TierEarlyCareer)
	require.NoError(t, err)
	assert.Equal(t, "Frontend Developer Intern", eligible[0].Job.Title)

	_, err = m.Match(Mode("bogus"), profile, nil, types.TierEarlyCareer)
	assert.Error(t, err)
}
