// Package types provides type definitions for structured data used throughout the cv-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// PersonalInfo holds the contact header of a CV. All fields are plain strings;
// a missing value is an empty string, never an absent key.
type PersonalInfo struct {
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Address  string `json:"address"`
}

// Experience represents one work-experience entry. ID is assigned at creation
// and never mutated; it is the merge/update target for the entry's lifetime.
type Experience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // may hold the "Present" sentinel
	Description string `json:"description"`
}

// Education represents one education entry.
type Education struct {
	ID        string `json:"id"`
	School    string `json:"school"`
	Degree    string `json:"degree"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Skill represents a single named skill.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Project represents one project entry.
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Role        string `json:"role"`
	Context     string `json:"context,omitempty"`
	Description string `json:"description"`
}

// Document is the canonical in-memory representation of one CV.
// A well-formed Document always has all five collections present (possibly
// empty) and a full PersonalInfo record; consumers never null-check.
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	Projects     []Project    `json:"projects"`
}

// Section identifies one of the document's entry collections.
type Section string

// Section constants name the entry collections of a Document.
const (
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
)

// Sections lists all entry collections in display order.
func Sections() []Section {
	return []Section{SectionExperience, SectionEducation, SectionSkills, SectionProjects}
}

// Valid reports whether s names a known entry collection.
func (s Section) Valid() bool {
	switch s {
	case SectionExperience, SectionEducation, SectionSkills, SectionProjects:
		return true
	}
	return false
}

// EnsureShape returns a copy of d with nil collections replaced by empty
// slices, restoring the fully-shaped invariant after JSON decoding.
func (d Document) EnsureShape() Document {
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	return d
}
