package feedback

import (
	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/types"
)

// InferRole counts, per role, the skills that belong to the role's keyword set and
// returns the role with the highest count. Ties go to the earlier role in
// types.Roles (frontend, backend, data), which is also the answer when nothing matches.
func InferRole(cat *catalog.Catalog, skills []string) types.Role {
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[s] = true
	}

	best, bestCount := types.Roles()[0], -1
	for _, role := range types.Roles() {
		tmpl, ok := cat.Role(role)
		if !ok {
			continue
		}
		count := 0
		for _, kw := range tmpl.Keywords {
			if have[kw] {
				count++
			}
		}
		if count > bestCount {
			best, bestCount = role, count
		}
	}
	return best
}
