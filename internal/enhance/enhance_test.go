package enhance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func sampleDraft() types.ResumeData {
	return types.ResumeData{
		PersonalInfo: types.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com"},
		Skills: []types.Skill{
			{Name: "Go", Category: types.SkillCategoryTechnical},
			{Name: "go ", Category: types.SkillCategoryTechnical},
			{Name: "SQL", Category: types.SkillCategoryTechnical},
		},
		WorkExperience: []types.WorkExperience{
			{
				ID:          "w1",
				Company:     "Initech",
				Title:       "Software Engineer",
				Description: "responsible for billing\nworked on reports.",
			},
		},
	}
}

func TestEnhance_DoesNotMutateInput(t *testing.T) {
	draft := sampleDraft()
	original := draft.Clone()

	_ = Enhance(draft)

	assert.Equal(t, original, draft, "enhancement must operate on a copy")
}

func TestEnhance_FullPass(t *testing.T) {
	result := Enhance(sampleDraft())

	// Skills deduplicated, first occurrence kept, order preserved.
	require.Len(t, result.Skills, 2)
	assert.Equal(t, "Go", result.Skills[0].Name)
	assert.Equal(t, "SQL", result.Skills[1].Name)

	// Bullets normalized with deterministic verb prefixes.
	lines := strings.Split(result.WorkExperience[0].Description, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Led responsible for billing", lines[0])
	assert.Equal(t, "Developed worked on reports", lines[1])

	// Summary synthesized from deduplicated skills and the first role.
	assert.True(t, strings.HasPrefix(result.Summary, "Results-driven Software Engineer with strengths in Go, SQL."), result.Summary)
}

func TestEnhance_EmptyDraft(t *testing.T) {
	result := Enhance(types.ResumeData{})

	assert.Empty(t, result.Skills)
	assert.Empty(t, result.WorkExperience)
	// Even an empty draft gets a synthesized summary; transforms are total.
	assert.Contains(t, result.Summary, "Results-driven Engineer")
}

func TestEnhance_Deterministic(t *testing.T) {
	first := Enhance(sampleDraft())
	second := Enhance(sampleDraft())
	assert.Equal(t, first, second)
}
