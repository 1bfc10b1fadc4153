package normalize

import (
	"fmt"

	"github.com/jonathan/cv-studio/internal/types"
)

// Merge folds an update into a base document additively. Scalar fields
// (summary, each personal-info field) are overridden only when the update
// provides a non-empty value; collections are strictly appended, never
// replaced or de-duplicated. Base entry ids are never touched; update
// entries whose ids are missing or collide with existing ones are re-issued
// so the collection-unique invariant survives multi-batch imports.
//
// Merge and whole-document replacement are deliberately separate entry
// points with different data-loss characteristics: callers choosing
// replacement use document.Store.Replace instead.
func Merge(base types.Document, update Partial) types.Document {
	out := base.EnsureShape()
	out.Experience = append([]types.Experience{}, out.Experience...)
	out.Education = append([]types.Education{}, out.Education...)
	out.Skills = append([]types.Skill{}, out.Skills...)
	out.Projects = append([]types.Project{}, out.Projects...)

	if update.PersonalInfo != nil {
		out.PersonalInfo = mergePersonalInfo(out.PersonalInfo, *update.PersonalInfo)
	}
	if update.Summary != "" {
		out.Summary = update.Summary
	}

	seen := collectIDs(out)

	for _, e := range update.Experience {
		e.ID = uniqueID(seen, e.ID, types.SectionExperience, len(out.Experience))
		out.Experience = append(out.Experience, e)
	}
	for _, e := range update.Education {
		e.ID = uniqueID(seen, e.ID, types.SectionEducation, len(out.Education))
		out.Education = append(out.Education, e)
	}
	for _, s := range update.Skills {
		s.ID = uniqueID(seen, s.ID, types.SectionSkills, len(out.Skills))
		out.Skills = append(out.Skills, s)
	}
	for _, p := range update.Projects {
		p.ID = uniqueID(seen, p.ID, types.SectionProjects, len(out.Projects))
		out.Projects = append(out.Projects, p)
	}

	return out
}

func mergePersonalInfo(base, update types.PersonalInfo) types.PersonalInfo {
	if update.Name != "" {
		base.Name = update.Name
	}
	if update.JobTitle != "" {
		base.JobTitle = update.JobTitle
	}
	if update.Email != "" {
		base.Email = update.Email
	}
	if update.Phone != "" {
		base.Phone = update.Phone
	}
	if update.LinkedIn != "" {
		base.LinkedIn = update.LinkedIn
	}
	if update.GitHub != "" {
		base.GitHub = update.GitHub
	}
	if update.Address != "" {
		base.Address = update.Address
	}
	return base
}

func collectIDs(doc types.Document) map[string]bool {
	seen := make(map[string]bool)
	for _, e := range doc.Experience {
		seen[e.ID] = true
	}
	for _, e := range doc.Education {
		seen[e.ID] = true
	}
	for _, s := range doc.Skills {
		seen[s.ID] = true
	}
	for _, p := range doc.Projects {
		seen[p.ID] = true
	}
	return seen
}

// uniqueID keeps the incoming id when it is fresh, otherwise issues the next
// free positional id for the section. The seen set is updated either way.
func uniqueID(seen map[string]bool, id string, section types.Section, position int) string {
	if id != "" && !seen[id] {
		seen[id] = true
		return id
	}
	for n := position + 1; ; n++ {
		candidate := fmt.Sprintf("%s-%d", section, n)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}
