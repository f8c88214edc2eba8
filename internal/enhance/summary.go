package enhance

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// maxSummaryChars is the soft cap applied to summaries after enhancement.
const maxSummaryChars = 350

// maxSummarySkills is how many top skill names feed a synthesized summary.
const maxSummarySkills = 6

// defaultRole is used when the draft has no work experience to name a role.
const defaultRole = "Engineer"

// impactPhrases is the fixed list an "impact phrase" is chosen from, indexed
// by (role title length + top skill count) modulo the list size.
var impactPhrases = []string{
	"deliver high-quality solutions on time",
	"drive measurable improvements across teams",
	"translate business requirements into robust software",
	"lead projects from concept to production",
	"collaborate effectively across disciplines",
}

// NormalizeSummary whitespace-normalizes and caps an existing summary, or
// synthesizes one from the deduplicated skills and the first work-experience
// title when the draft has none. Given identical input the output is
// identical; no randomness is involved.
func NormalizeSummary(summary string, skills []types.Skill, work []types.WorkExperience) string {
	if strings.TrimSpace(summary) != "" {
		return truncate(collapseWhitespace(summary), maxSummaryChars)
	}
	return truncate(collapseWhitespace(synthesizeSummary(skills, work)), maxSummaryChars)
}

func synthesizeSummary(skills []types.Skill, work []types.WorkExperience) string {
	names := make([]string, 0, maxSummarySkills)
	for _, skill := range skills {
		if len(names) == maxSummarySkills {
			break
		}
		name := titleCase(strings.TrimSpace(skill.Name))
		if name == "" {
			continue
		}
		names = append(names, name)
	}

	role := defaultRole
	if len(work) > 0 && strings.TrimSpace(work[0].Title) != "" {
		role = strings.TrimSpace(work[0].Title)
	}

	impact := impactPhrases[(len([]rune(role))+len(names))%len(impactPhrases)]

	return fmt.Sprintf("Results-driven %s with strengths in %s. Proven ability to %s.",
		role, strings.Join(names, ", "), impact)
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalizeFirst(w)
	}
	return strings.Join(words, " ")
}
