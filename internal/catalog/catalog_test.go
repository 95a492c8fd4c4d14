package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/skillbyte/internal/schemas"
	"github.com/jonathan/skillbyte/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsBuiltInTables(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)

	assert.Len(t, cat.TechSkills, 10)
	assert.Len(t, cat.Technical, 11)
	assert.Len(t, cat.Soft, 6)
	assert.NotEmpty(t, cat.Tools)
	assert.Len(t, cat.Listings, 3)
	assert.Len(t, cat.EntryLevelJobs, 3)
	assert.Len(t, cat.TechJobs, 4)

	assert.Equal(t, []string{"experience", "worked", "employed", "position", "role"}, cat.Experience.Work)
	assert.Contains(t, cat.Experience.Education, "student")

	assert.Same(t, cat, Default(), "built-in catalog should be loaded once")
}

func TestDefault_SynonymsAreLowercaseAndUnique(t *testing.T) {
	cat := Default()
	for _, table := range [][]Entry{cat.TechSkills, cat.Technical, cat.Soft, cat.Tools} {
		for _, e := range table {
			require.NotEmpty(t, e.Synonyms, e.Name)
			seen := map[string]bool{}
			for _, s := range e.Synonyms {
				assert.Equal(t, strings.ToLower(s), s, "synonym of %s must be lowercase", e.Name)
				assert.False(t, seen[s], "duplicate synonym %q in %s", s, e.Name)
				seen[s] = true
			}
		}
	}
}

func TestDefault_EveryRoleHasTemplate(t *testing.T) {
	cat := Default()
	for _, role := range types.Roles() {
		tmpl, ok := cat.Role(role)
		require.True(t, ok, "missing template for %s", role)
		assert.NotEmpty(t, tmpl.Headline)
		assert.NotEmpty(t, tmpl.Skills)
		assert.NotEmpty(t, tmpl.Bullets)
		assert.NotEmpty(t, tmpl.Keywords)
	}

	_, ok := cat.Role(types.Role("fullstack"))
	assert.False(t, ok)
}

func TestDefault_RoleKeywordsAreCanonicalTechSkills(t *testing.T) {
	cat := Default()
	names := map[string]bool{}
	for _, n := range Names(cat.TechSkills) {
		names[n] = true
	}
	for _, tmpl := range cat.Roles {
		for _, kw := range tmpl.Keywords {
			assert.True(t, names[kw], "role %s keyword %q is not a tech skill", tmpl.Role, kw)
		}
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cat, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), cat)
}

func TestLoad_CustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.NotSame(t, Default(), cat)
	assert.Equal(t, Names(Default().Technical), Names(cat.Technical))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "failed to read file", loadErr.Message)
}

func TestParse_RejectsUppercaseSynonym(t *testing.T) {
	data := strings.Replace(string(defaultCatalog), `"reactjs"`, `"ReactJS"`, 1)

	_, err := Parse("test", []byte(data))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr), "expected schema validation error, got %v", err)
}

func TestParse_RejectsDuplicateSynonym(t *testing.T) {
	data := strings.Replace(string(defaultCatalog), `["docker"]`, `["docker", "docker"]`, 1)

	_, err := Parse("test", []byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestParse_RejectsDuplicateSkillName(t *testing.T) {
	data := strings.Replace(string(defaultCatalog),
		`{"name": "Docker", "synonyms": ["docker"]}`,
		`{"name": "Docker", "synonyms": ["docker"]},
    {"name": "docker", "synonyms": ["containers"]}`, 1)

	_, err := Parse("test", []byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate skill "docker"`)
}

func TestParse_RejectsMissingRole(t *testing.T) {
	var raw map[string]any
	require.NoError(t, json.Unmarshal(defaultCatalog, &raw))
	roles := raw["roles"].([]any)
	raw["roles"] = roles[:2]

	data, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = Parse("test", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing template for "data"`)
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	_, err := Parse("test", []byte(`{"tech_skills": [`))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "test", loadErr.Source)
}

func TestSchema_ReturnsCopy(t *testing.T) {
	s := Schema()
	require.NotEmpty(t, s)
	s[0] = 'x'
	assert.NotEqual(t, s[0], Schema()[0])
}
