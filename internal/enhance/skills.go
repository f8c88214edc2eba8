package enhance

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// DedupeSkills removes duplicate skills, comparing trimmed, lower-cased
// names. The first occurrence wins and the original order is preserved, so
// the pass is idempotent.
func DedupeSkills(skills []types.Skill) []types.Skill {
	if len(skills) == 0 {
		return skills
	}

	out := make([]types.Skill, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))

	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill.Name))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}

	return out
}
