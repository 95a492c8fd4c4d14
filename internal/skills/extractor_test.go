package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_CanonicalNamesPerCategory(t *testing.T) {
	ex := NewExtractor(nil)

	profile := ex.Extract("Built apps with React and Django. Strong communication, used Jira daily.")

	assert.Equal(t, []string{"React", "Python"}, profile.Technical)
	assert.Equal(t, []string{"Communication"}, profile.Soft)
	assert.Equal(t, []string{"Jira"}, profile.Tools)
	assert.Empty(t, profile.Certifications)
}

func TestExtract_SkillListedOnceRegardlessOfRepeats(t *testing.T) {
	ex := NewExtractor(nil)

	profile := ex.Extract("python python PYTHON django flask. Python!")

	count := 0
	for _, s := range profile.Technical {
		if s == "Python" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtract_EverySynonymMapsToItsSkill(t *testing.T) {
	ex := NewExtractor(nil)

	for _, entry := range ex.cat.Technical {
		for _, synonym := range entry.Synonyms {
			profile := ex.Extract("I know " + synonym + " well")
			assert.Contains(t, profile.Technical, entry.Name, "synonym %q", synonym)
		}
	}
	for _, entry := range ex.cat.Soft {
		for _, synonym := range entry.Synonyms {
			profile := ex.Extract("I am " + synonym)
			assert.Contains(t, profile.Soft, entry.Name, "synonym %q", synonym)
		}
	}
}

func TestExtract_EmptyAndWhitespace(t *testing.T) {
	ex := NewExtractor(nil)

	for _, text := range []string{"", "   ", "\n\t \n"} {
		profile := ex.Extract(text)
		assert.NotNil(t, profile.Technical)
		assert.Empty(t, profile.Technical)
		assert.Empty(t, profile.Soft)
		assert.Empty(t, profile.Tools)
		assert.Empty(t, profile.Certifications)
		assert.True(t, profile.IsEmpty())
		assert.Empty(t, ex.ExtractTech(text))
	}
}

func TestExtract_SubstringMatchingOverMatches(t *testing.T) {
	ex := NewExtractor(nil)

	// "js" inside "node.js" counts as JavaScript
	assert.Equal(t, []string{"JavaScript", "Node"}, ex.ExtractTech("node.js"))
}

func TestExtractTech_CatalogOrder(t *testing.T) {
	ex := NewExtractor(nil)

	skills := ex.ExtractTech("Kubernetes, docker, Postgres and AWS lambda, React")
	assert.Equal(t, []string{"React", "AWS", "Docker", "SQL", "Kubernetes"}, skills)
}

func TestExtract_Certifications(t *testing.T) {
	ex := NewExtractor(nil)

	profile := ex.Extract("Certified in AWS Solutions Architect, also certified in Scrum")

	require.Len(t, profile.Certifications, 2)
	assert.Equal(t, "Certified in AWS Solutions Architect", profile.Certifications[0])
	assert.Equal(t, "certified in Scrum", profile.Certifications[1])
	for _, c := range profile.Certifications {
		assert.NotEmpty(t, c)
		assert.Equal(t, strings.TrimSpace(c), c)
	}
}

func TestExtract_CertificationsKeepDuplicates(t *testing.T) {
	ex := NewExtractor(nil)

	profile := ex.Extract("Certified in Scrum. Certified in Scrum.")
	assert.Equal(t, []string{"Certified in Scrum", "Certified in Scrum"}, profile.Certifications)
}

func TestExtract_CertificationsRequireTrigger(t *testing.T) {
	ex := NewExtractor(nil)

	assert.Empty(t, ex.Extract("Trained in first aid").Certifications)
	assert.Empty(t, ex.Extract("Certification pending").Certifications)
}

func TestExtract_BlankCertificationDropped(t *testing.T) {
	ex := NewExtractor(nil)

	profile := ex.Extract("certified in  , certified in Kubernetes")
	assert.Equal(t, []string{"certified in Kubernetes"}, profile.Certifications)
}

func TestExtract_RoundTripScenario(t *testing.T) {
	ex := NewExtractor(nil)
	text := "Resume\nSummary: 3 years experience with React and Node.js\n- built dashboard"

	tech := ex.ExtractTech(text)
	assert.Subset(t, tech, []string{"React", "Node"})
	assert.Equal(t, []string{"JavaScript", "React", "Node"}, tech)
}
