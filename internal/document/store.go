package document

import (
	"github.com/jonathan/cv-studio/internal/types"
)

// ChangeFunc is invoked after every successful mutation with a snapshot of
// the new document state. The store itself is single-writer; listeners
// receive a value copy and re-enter through the mutator API if they need to
// apply results back.
type ChangeFunc func(types.Document)

// Store owns the single mutable CV document for an editing session.
// All structural edits go through its methods; none of them error under
// normal use — they are total functions over the document shape.
type Store struct {
	doc      types.Document
	onChange ChangeFunc
}

// NewStore creates a store seeded with the given document. The document is
// reshaped so the fully-formed invariant holds regardless of the source.
func NewStore(doc types.Document, onChange ChangeFunc) *Store {
	return &Store{doc: doc.EnsureShape(), onChange: onChange}
}

// Document returns a snapshot of the current document.
func (s *Store) Document() types.Document {
	return s.doc
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.doc)
	}
}

// UpdatePersonalField replaces one scalar field of the personal info record.
// Unknown field names are ignored; callers use the exported field name
// constants from the HTTP layer or static strings.
func (s *Store) UpdatePersonalField(field, value string) {
	switch field {
	case "name":
		s.doc.PersonalInfo.Name = value
	case "jobTitle":
		s.doc.PersonalInfo.JobTitle = value
	case "email":
		s.doc.PersonalInfo.Email = value
	case "phone":
		s.doc.PersonalInfo.Phone = value
	case "linkedin":
		s.doc.PersonalInfo.LinkedIn = value
	case "github":
		s.doc.PersonalInfo.GitHub = value
	case "address":
		s.doc.PersonalInfo.Address = value
	default:
		return
	}
	s.notify()
}

// UpdateSummary replaces the summary wholesale.
func (s *Store) UpdateSummary(value string) {
	s.doc.Summary = value
	s.notify()
}

// AddEntry appends a new empty entry to the named section and returns its id.
func (s *Store) AddEntry(section types.Section) string {
	id := NewEntryID(section)
	switch section {
	case types.SectionExperience:
		s.doc.Experience = append(s.doc.Experience, types.Experience{ID: id})
	case types.SectionEducation:
		s.doc.Education = append(s.doc.Education, types.Education{ID: id})
	case types.SectionSkills:
		s.doc.Skills = append(s.doc.Skills, types.Skill{ID: id})
	case types.SectionProjects:
		s.doc.Projects = append(s.doc.Projects, types.Project{ID: id})
	default:
		return ""
	}
	s.notify()
	return id
}

// RemoveEntry filters the named section to exclude the entry with the given
// id. Removing a non-existent id is a no-op.
func (s *Store) RemoveEntry(section types.Section, id string) {
	switch section {
	case types.SectionExperience:
		out := s.doc.Experience[:0:0]
		for _, e := range s.doc.Experience {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if out == nil {
			out = []types.Experience{}
		}
		s.doc.Experience = out
	case types.SectionEducation:
		out := s.doc.Education[:0:0]
		for _, e := range s.doc.Education {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if out == nil {
			out = []types.Education{}
		}
		s.doc.Education = out
	case types.SectionSkills:
		out := s.doc.Skills[:0:0]
		for _, e := range s.doc.Skills {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if out == nil {
			out = []types.Skill{}
		}
		s.doc.Skills = out
	case types.SectionProjects:
		out := s.doc.Projects[:0:0]
		for _, e := range s.doc.Projects {
			if e.ID != id {
				out = append(out, e)
			}
		}
		if out == nil {
			out = []types.Project{}
		}
		s.doc.Projects = out
	default:
		return
	}
	s.notify()
}

// UpdateEntry replaces one field of the entry with the given id in the named
// section. A missing id is a no-op.
func (s *Store) UpdateEntry(section types.Section, id, field, value string) {
	changed := false
	switch section {
	case types.SectionExperience:
		for i := range s.doc.Experience {
			if s.doc.Experience[i].ID == id {
				changed = setExperienceField(&s.doc.Experience[i], field, value)
				break
			}
		}
	case types.SectionEducation:
		for i := range s.doc.Education {
			if s.doc.Education[i].ID == id {
				changed = setEducationField(&s.doc.Education[i], field, value)
				break
			}
		}
	case types.SectionSkills:
		for i := range s.doc.Skills {
			if s.doc.Skills[i].ID == id {
				if field == "name" {
					s.doc.Skills[i].Name = value
					changed = true
				}
				break
			}
		}
	case types.SectionProjects:
		for i := range s.doc.Projects {
			if s.doc.Projects[i].ID == id {
				changed = setProjectField(&s.doc.Projects[i], field, value)
				break
			}
		}
	}
	if changed {
		s.notify()
	}
}

// Replace swaps the entire document for a new one (bulk import/replace flow).
func (s *Store) Replace(doc types.Document) {
	s.doc = doc.EnsureShape()
	s.notify()
}

// Reset restores the template default (the "clear" flow).
func (s *Store) Reset() {
	s.doc = Template()
	s.notify()
}

func setExperienceField(e *types.Experience, field, value string) bool {
	switch field {
	case "jobTitle":
		e.JobTitle = value
	case "company":
		e.Company = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	case "description":
		e.Description = value
	default:
		return false
	}
	return true
}

func setEducationField(e *types.Education, field, value string) bool {
	switch field {
	case "school":
		e.School = value
	case "degree":
		e.Degree = value
	case "startDate":
		e.StartDate = value
	case "endDate":
		e.EndDate = value
	default:
		return false
	}
	return true
}

func setProjectField(p *types.Project, field, value string) bool {
	switch field {
	case "title":
		p.Title = value
	case "role":
		p.Role = value
	case "context":
		p.Context = value
	case "description":
		p.Description = value
	default:
		return false
	}
	return true
}
