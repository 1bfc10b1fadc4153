// Package normalize converts CV-shaped data from heterogeneous, partially
// populated import sources into the canonical document form, and merges
// partial documents into existing data without destroying it.
package normalize

import (
	"fmt"

	"github.com/jonathan/cv-studio/internal/types"
)

// Partial is a CV-shaped value where any field or collection may be absent.
// It is what every import source produces before normalization. Pointer
// fields distinguish "absent" from "present but empty".
type Partial struct {
	PersonalInfo *types.PersonalInfo `json:"personalInfo,omitempty"`
	Summary      string              `json:"summary,omitempty"`
	Experience   []types.Experience  `json:"experience,omitempty"`
	Education    []types.Education   `json:"education,omitempty"`
	Skills       []types.Skill       `json:"skills,omitempty"`
	Projects     []types.Project     `json:"projects,omitempty"`
}

// Normalize produces a fully-shaped document from a partial one. Absent
// fields default to their empty values and every entry gets a non-empty,
// collection-unique id; entries missing one are re-indexed positionally as
// <section>-<n>.
func Normalize(p Partial) types.Document {
	doc := types.Document{
		Summary:    p.Summary,
		Experience: []types.Experience{},
		Education:  []types.Education{},
		Skills:     []types.Skill{},
		Projects:   []types.Project{},
	}
	if p.PersonalInfo != nil {
		doc.PersonalInfo = *p.PersonalInfo
	}

	for i, e := range p.Experience {
		if e.ID == "" {
			e.ID = syntheticID(types.SectionExperience, i)
		}
		doc.Experience = append(doc.Experience, e)
	}
	for i, e := range p.Education {
		if e.ID == "" {
			e.ID = syntheticID(types.SectionEducation, i)
		}
		doc.Education = append(doc.Education, e)
	}
	for i, s := range p.Skills {
		if s.ID == "" {
			s.ID = syntheticID(types.SectionSkills, i)
		}
		doc.Skills = append(doc.Skills, s)
	}
	for i, pr := range p.Projects {
		if pr.ID == "" {
			pr.ID = syntheticID(types.SectionProjects, i)
		}
		doc.Projects = append(doc.Projects, pr)
	}

	return dedupeIDs(doc)
}

func syntheticID(section types.Section, idx int) string {
	return fmt.Sprintf("%s-%d", section, idx+1)
}

// dedupeIDs re-indexes any collection whose source-provided ids collide, so
// the collection-unique invariant holds even for malformed input.
func dedupeIDs(doc types.Document) types.Document {
	if hasDuplicateExperienceIDs(doc.Experience) {
		for i := range doc.Experience {
			doc.Experience[i].ID = syntheticID(types.SectionExperience, i)
		}
	}
	if hasDuplicateEducationIDs(doc.Education) {
		for i := range doc.Education {
			doc.Education[i].ID = syntheticID(types.SectionEducation, i)
		}
	}
	if hasDuplicateSkillIDs(doc.Skills) {
		for i := range doc.Skills {
			doc.Skills[i].ID = syntheticID(types.SectionSkills, i)
		}
	}
	if hasDuplicateProjectIDs(doc.Projects) {
		for i := range doc.Projects {
			doc.Projects[i].ID = syntheticID(types.SectionProjects, i)
		}
	}
	return doc
}

func hasDuplicateExperienceIDs(entries []types.Experience) bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return true
		}
		seen[e.ID] = true
	}
	return false
}

func hasDuplicateEducationIDs(entries []types.Education) bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return true
		}
		seen[e.ID] = true
	}
	return false
}

func hasDuplicateSkillIDs(entries []types.Skill) bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return true
		}
		seen[e.ID] = true
	}
	return false
}

func hasDuplicateProjectIDs(entries []types.Project) bool {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return true
		}
		seen[e.ID] = true
	}
	return false
}
