// Package catalog holds the static keyword tables used by the analysis pipeline:
// skill synonyms, experience keywords, role templates and job archetypes.
// A catalog is loaded once and never mutated, so it is safe to share between goroutines.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/skillbyte/internal/schemas"
	"github.com/jonathan/skillbyte/internal/types"
)

//go:embed catalog.json
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

// Entry maps a canonical skill name to the lowercase phrases that indicate it
type Entry struct {
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms"`
}

// ExperienceKeywords are the contextual phrases used when no explicit year count is present
type ExperienceKeywords struct {
	Work      []string `json:"work_keywords"`
	Education []string `json:"education_keywords"`
}

// RoleTemplate is the feedback material for one role
type RoleTemplate struct {
	Role types.Role `json:"role"`
	// Keywords are canonical skill names that count toward this role during inference
	Keywords []string `json:"keywords"`
	Headline string   `json:"headline"`
	Skills   []string `json:"skills"`
	Bullets  []string `json:"bullets"`
}

// Catalog is the full set of static tables.
type Catalog struct {
	// TechSkills is the coarse tech-only table behind the flat skill list
	TechSkills []Entry `json:"tech_skills"`

	Technical []Entry `json:"technical"`
	Soft      []Entry `json:"soft"`
	Tools     []Entry `json:"tools"`

	Experience ExperienceKeywords `json:"experience"`
	Roles      []RoleTemplate     `json:"roles"`

	// Listings are scored by skill overlap
	Listings []types.JobArchetype `json:"listings"`
	// EntryLevelJobs and TechJobs are the two pools used by eligibility matching
	EntryLevelJobs []types.JobArchetype `json:"entry_level_jobs"`
	TechJobs       []types.JobArchetype `json:"tech_jobs"`

	roles map[types.Role]RoleTemplate
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the built-in catalog. It panics if the embedded data is invalid,
// which can only happen when the binary was built from a broken catalog.json.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Parse("(built-in)", defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
		}
		defaultCat = cat
	})
	return defaultCat
}

// Load reads and validates a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(path, content)
}

// Parse validates data against the catalog schema, decodes it and checks the
// constraints a schema cannot express.
func Parse(source string, data []byte) (*Catalog, error) {
	if err := schemas.Validate("catalog", catalogSchema, data); err != nil {
		return nil, &LoadError{Source: source, Message: "schema validation failed", Cause: err}
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, &LoadError{Source: source, Message: "failed to unmarshal JSON", Cause: err}
	}

	if err := cat.check(); err != nil {
		return nil, &LoadError{Source: source, Message: err.Error()}
	}
	return &cat, nil
}

// Schema returns the JSON Schema catalog files are validated against.
func Schema() []byte {
	out := make([]byte, len(catalogSchema))
	copy(out, catalogSchema)
	return out
}

func (c *Catalog) check() error {
	tables := []struct {
		name    string
		entries []Entry
	}{
		{"tech_skills", c.TechSkills},
		{"technical", c.Technical},
		{"soft", c.Soft},
		{"tools", c.Tools},
	}
	for _, table := range tables {
		seen := make(map[string]bool, len(table.entries))
		for _, e := range table.entries {
			key := strings.ToLower(e.Name)
			if seen[key] {
				return fmt.Errorf("%s: duplicate skill %q", table.name, e.Name)
			}
			seen[key] = true
		}
	}

	c.roles = make(map[types.Role]RoleTemplate, len(c.Roles))
	for _, tmpl := range c.Roles {
		if _, dup := c.roles[tmpl.Role]; dup {
			return fmt.Errorf("roles: duplicate role %q", tmpl.Role)
		}
		c.roles[tmpl.Role] = tmpl
	}
	for _, role := range types.Roles() {
		if _, ok := c.roles[role]; !ok {
			return fmt.Errorf("roles: missing template for %q", role)
		}
	}
	return nil
}

// Role returns the template for role. Every role in types.Roles is guaranteed to exist
// in a catalog returned by Parse.
func (c *Catalog) Role(role types.Role) (RoleTemplate, bool) {
	tmpl, ok := c.roles[role]
	return tmpl, ok
}

// Names returns the canonical names of entries in declaration order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
