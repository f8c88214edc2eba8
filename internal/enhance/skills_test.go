package enhance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-studio/internal/types"
)

func skillNames(skills []types.Skill) []string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

func TestDedupeSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "case and whitespace variants collapse to one",
			input:    []string{"React ", "react", "REACT"},
			expected: []string{"React "},
		},
		{
			name:     "first occurrence wins",
			input:    []string{"Go", "Python", "go", "Rust", "PYTHON"},
			expected: []string{"Go", "Python", "Rust"},
		},
		{
			name:     "no duplicates untouched",
			input:    []string{"Go", "Python", "Rust"},
			expected: []string{"Go", "Python", "Rust"},
		},
		{
			name:     "empty input",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := make([]types.Skill, len(tt.input))
			for i, n := range tt.input {
				skills[i] = types.Skill{Name: n, Category: types.SkillCategoryTechnical}
			}

			result := DedupeSkills(skills)
			if tt.expected == nil {
				assert.Empty(t, result)
				return
			}
			assert.Equal(t, tt.expected, skillNames(result))
		})
	}
}

func TestDedupeSkills_Idempotent(t *testing.T) {
	skills := []types.Skill{
		{Name: "React "},
		{Name: "react"},
		{Name: "Go"},
		{Name: "REACT"},
		{Name: " go "},
	}

	once := DedupeSkills(skills)
	twice := DedupeSkills(once)
	assert.Equal(t, once, twice, "dedupe should be idempotent")
	assert.Equal(t, []string{"React ", "Go"}, skillNames(once))
}

func TestDedupeSkills_PreservesCategoryAndProficiency(t *testing.T) {
	skills := []types.Skill{
		{Name: "Go", Category: types.SkillCategoryTechnical, Proficiency: types.ProficiencyExpert},
		{Name: "go", Category: types.SkillCategorySoft, Proficiency: types.ProficiencyBeginner},
	}

	result := DedupeSkills(skills)
	assert.Len(t, result, 1)
	assert.Equal(t, types.ProficiencyExpert, result[0].Proficiency, "first occurrence should win wholesale")
}
