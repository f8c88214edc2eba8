// Package types provides type definitions for structured data used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Skill categories accepted on the wire.
const (
	SkillCategoryTechnical = "technical"
	SkillCategorySoft      = "soft"
	SkillCategoryLanguage  = "language"
	SkillCategoryOther     = "other"
)

// Skill proficiency levels accepted on the wire.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// PersonalInfo holds the contact block of a resume. All fields are free text;
// non-empty checks are left to the caller.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description,omitempty"`
}

// WorkExperience represents a single work-experience entry.
type WorkExperience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Project represents a single project entry.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

// Certification represents a single certification entry.
type Certification struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issueDate,omitempty"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	CredentialID string `json:"credentialId,omitempty"`
}

// Skill represents a single named skill with category and proficiency.
type Skill struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

// ResumeData is the root aggregate for a resume draft. Field names on the
// wire are camelCase to match the rendering/extraction backend contract.
type ResumeData struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	Education      []Education      `json:"education"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Projects       []Project        `json:"projects"`
	Skills         []Skill          `json:"skills"`
	Certifications []Certification  `json:"certifications"`
	Template       string           `json:"template,omitempty"`
	AIEnhancement  bool             `json:"aiEnhancement,omitempty"`
}

// Clone returns a deep copy of the resume. Slices are copied so mutations of
// the clone never reach the original draft.
func (r ResumeData) Clone() ResumeData {
	out := r
	out.Education = append([]Education(nil), r.Education...)
	out.WorkExperience = append([]WorkExperience(nil), r.WorkExperience...)
	if r.Projects != nil {
		out.Projects = make([]Project, len(r.Projects))
		for i, p := range r.Projects {
			out.Projects[i] = p
			out.Projects[i].Technologies = append([]string(nil), p.Technologies...)
		}
	}
	out.Skills = append([]Skill(nil), r.Skills...)
	out.Certifications = append([]Certification(nil), r.Certifications...)
	return out
}

// IsEmpty reports whether the resume carries no usable content at all.
func (r ResumeData) IsEmpty() bool {
	return r.PersonalInfo == (PersonalInfo{}) &&
		r.Summary == "" &&
		len(r.Education) == 0 &&
		len(r.WorkExperience) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Certifications) == 0
}
