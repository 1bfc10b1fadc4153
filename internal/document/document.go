// Package document holds the canonical in-memory CV document and the mutator
// API through which every edit, import and reset flows.
package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/types"
)

// Template returns the default starter document used at first session start
// and after a full reset.
func Template() types.Document {
	return types.Document{
		PersonalInfo: types.PersonalInfo{
			Name:     "Your Name",
			JobTitle: "Your Job Title",
			Email:    "email@example.com",
			Phone:    "555-123-4567",
			LinkedIn: "linkedin.com/in/yourname",
			GitHub:   "github.com/yourname",
			Address:  "City, Country",
		},
		Summary: "Write your professional summary here. In two or three sentences, highlight your expertise, experience and career goals.",
		Experience: []types.Experience{
			{
				ID:          "experience-1",
				JobTitle:    "Position Title",
				Company:     "Company Name",
				StartDate:   "Month Year",
				EndDate:     "Present",
				Description: "- List your responsibilities and achievements.\n- Include measurable results.\n- Start each item with an action verb.",
			},
		},
		Education: []types.Education{
			{
				ID:        "education-1",
				School:    "University Name",
				Degree:    "Degree and Field of Study",
				StartDate: "Month Year",
				EndDate:   "Month Year",
			},
		},
		Skills: []types.Skill{
			{ID: "skill-1", Name: "Go"},
			{ID: "skill-2", Name: "TypeScript"},
			{ID: "skill-3", Name: "Project Management"},
		},
		Projects: []types.Project{},
	}
}

// NewEntryID generates a collection-unique id for a freshly added entry.
// The section name keeps ids readable; the UUID suffix guarantees uniqueness
// for the document's lifetime.
func NewEntryID(section types.Section) string {
	return fmt.Sprintf("%s-%s", section, uuid.NewString())
}
