package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

// ValidateDocument checks every formatted field of a document and returns a
// ValidationError listing all violations, or nil when the document is clean.
func ValidateDocument(doc types.Document) error {
	var violations []FieldViolation

	add := func(field string, err error) {
		if err != nil {
			violations = append(violations, FieldViolation{Field: field, Message: err.Error()})
		}
	}

	add("personalInfo.email", ValidateEmail(doc.PersonalInfo.Email))
	add("personalInfo.phone", ValidatePhone(doc.PersonalInfo.Phone))
	add("personalInfo.linkedin", ValidateLinkedIn(doc.PersonalInfo.LinkedIn))
	add("personalInfo.github", ValidateGitHub(doc.PersonalInfo.GitHub))

	for i, e := range doc.Experience {
		add(fmt.Sprintf("experience[%d].startDate", i), ValidateDate(e.StartDate))
		add(fmt.Sprintf("experience[%d].endDate", i), ValidateDate(e.EndDate))
	}
	for i, e := range doc.Education {
		add(fmt.Sprintf("education[%d].startDate", i), ValidateDate(e.StartDate))
		add(fmt.Sprintf("education[%d].endDate", i), ValidateDate(e.EndDate))
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// CheckExportReady reports whether a document carries the minimum content for
// a useful export: a name, a contact channel, and at least one substantive
// section.
func CheckExportReady(doc types.Document) error {
	var violations []FieldViolation

	if strings.TrimSpace(doc.PersonalInfo.Name) == "" {
		violations = append(violations, FieldViolation{
			Field:   "personalInfo.name",
			Message: "name is required for export",
		})
	}
	if strings.TrimSpace(doc.PersonalInfo.Email) == "" && strings.TrimSpace(doc.PersonalInfo.Phone) == "" {
		violations = append(violations, FieldViolation{
			Field:   "personalInfo",
			Message: "at least one contact channel (email or phone) is required for export",
		})
	}
	if strings.TrimSpace(doc.Summary) == "" && len(doc.Experience) == 0 && len(doc.Education) == 0 &&
		len(doc.Skills) == 0 && len(doc.Projects) == 0 {
		violations = append(violations, FieldViolation{
			Field:   "document",
			Message: "document has no content to export",
		})
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}
