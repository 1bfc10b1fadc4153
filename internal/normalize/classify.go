package normalize

import (
	"strings"
)

// SourceKind is the closed set of section identities a tabular import source
// can resolve to.
type SourceKind string

// SourceKind values returned by Classify.
const (
	SourcePersonalInfo SourceKind = "personalInfo"
	SourceExperience   SourceKind = "experience"
	SourceEducation    SourceKind = "education"
	SourceSkills       SourceKind = "skills"
	SourceUnrecognized SourceKind = "unrecognized"
)

// Classify determines which CV section a tabular source holds. Filename
// hints are consulted first; if they are absent or ambiguous the
// column-header signature decides. Sources matching neither are
// SourceUnrecognized and contribute nothing to an import (not an error).
func Classify(filename string, headers []string) SourceKind {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "profile"):
		return SourcePersonalInfo
	case strings.Contains(name, "position"), strings.Contains(name, "experience"):
		return SourceExperience
	case strings.Contains(name, "education"):
		return SourceEducation
	case strings.Contains(name, "skill"):
		return SourceSkills
	}
	return classifyHeaders(headers)
}

func classifyHeaders(headers []string) SourceKind {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	switch {
	case set["company name"] || set["title"]:
		return SourceExperience
	case set["school name"] || set["degree name"]:
		return SourceEducation
	case set["skill"]:
		return SourceSkills
	case set["first name"] || set["email address"]:
		return SourcePersonalInfo
	}
	return SourceUnrecognized
}
