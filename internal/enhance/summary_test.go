package enhance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestNormalizeSummary_ExistingSummary(t *testing.T) {
	summary := "  Seasoned   engineer\nwith a decade of   experience.  "

	result := NormalizeSummary(summary, nil, nil)
	assert.Equal(t, "Seasoned engineer with a decade of experience.", result)
}

func TestNormalizeSummary_ExistingSummaryCapped(t *testing.T) {
	summary := strings.Repeat("a", 500)

	result := NormalizeSummary(summary, nil, nil)
	assert.LessOrEqual(t, len([]rune(result)), maxSummaryChars)
}

func TestNormalizeSummary_Synthesized(t *testing.T) {
	skills := []types.Skill{
		{Name: "go"},
		{Name: "postgres"},
	}
	work := []types.WorkExperience{
		{Title: "Backend Developer"},
	}

	result := NormalizeSummary("", skills, work)

	assert.True(t, strings.HasPrefix(result, "Results-driven Backend Developer with strengths in Go, Postgres."), result)
	assert.Contains(t, result, "Proven ability to ")
	assert.LessOrEqual(t, len([]rune(result)), maxSummaryChars)

	// Impact phrase selection is a pure function of role length and skill count.
	idx := (len([]rune("Backend Developer")) + 2) % len(impactPhrases)
	assert.Contains(t, result, impactPhrases[idx])
}

func TestNormalizeSummary_SynthesisDeterministic(t *testing.T) {
	skills := []types.Skill{{Name: "Go"}, {Name: "Kubernetes"}, {Name: "SQL"}}
	work := []types.WorkExperience{{Title: "Platform Engineer"}}

	first := NormalizeSummary("", skills, work)
	second := NormalizeSummary("", skills, work)
	assert.Equal(t, first, second)
}

func TestNormalizeSummary_DefaultRole(t *testing.T) {
	result := NormalizeSummary("", nil, nil)
	assert.Contains(t, result, "Results-driven Engineer")
}

func TestNormalizeSummary_TopSixSkills(t *testing.T) {
	skills := make([]types.Skill, 10)
	names := []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"}
	for i, n := range names {
		skills[i] = types.Skill{Name: n}
	}

	result := NormalizeSummary("", skills, nil)
	assert.Contains(t, result, "Six")
	assert.NotContains(t, result, "Seven")
}
