package normalize

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-studio/internal/types"
)

// archive member patterns, matched against the member base name.
var (
	profilePattern   = regexp.MustCompile(`(?i)profile\.(csv|json)$`)
	positionsPattern = regexp.MustCompile(`(?i)position.*\.(csv|json)$`)
	educationPattern = regexp.MustCompile(`(?i)education\.(csv|json)$`)
	skillsPattern    = regexp.MustCompile(`(?i)skill.*\.(csv|json)$`)
)

// ArchiveResult holds the combined partial document extracted from an
// archive plus any per-member failures. A failed member never hides the
// success of the others.
type ArchiveResult struct {
	Partial      Partial
	MemberErrors []error
}

// Failed reports which member names could not be parsed.
func (r *ArchiveResult) Failed() []string {
	names := make([]string, 0, len(r.MemberErrors))
	for _, err := range r.MemberErrors {
		var se *SourceError
		if ok := asSourceError(err, &se); ok {
			names = append(names, se.Name)
		}
	}
	return names
}

func asSourceError(err error, target **SourceError) bool {
	se, ok := err.(*SourceError)
	if ok {
		*target = se
	}
	return ok
}

// ParseArchive extracts CV data from a profile-export ZIP containing CSV
// and/or JSON member files. Members are read concurrently but their partials
// are always merged in the fixed order personal info, experience, education,
// skills, so the result does not depend on archive layout.
func ParseArchive(data []byte) (*ArchiveResult, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("unreadable archive: %w", err)
	}

	type member struct {
		kind SourceKind
		file *zip.File
	}
	var members []member
	for _, f := range reader.File {
		switch {
		case profilePattern.MatchString(f.Name):
			members = append(members, member{SourcePersonalInfo, f})
		case positionsPattern.MatchString(f.Name):
			members = append(members, member{SourceExperience, f})
		case educationPattern.MatchString(f.Name):
			members = append(members, member{SourceEducation, f})
		case skillsPattern.MatchString(f.Name):
			members = append(members, member{SourceSkills, f})
		}
	}

	partials := make(map[SourceKind]Partial, len(members))
	var (
		mu       sync.Mutex
		failures []error
	)

	var g errgroup.Group
	for _, m := range members {
		g.Go(func() error {
			partial, err := parseMember(m.file)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return nil // partial success is allowed
			}
			// First match per section wins; later duplicates are ignored.
			if _, exists := partials[m.kind]; !exists {
				partials[m.kind] = partial
			}
			return nil
		})
	}
	_ = g.Wait()

	combined := Partial{}
	for _, kind := range []SourceKind{SourcePersonalInfo, SourceExperience, SourceEducation, SourceSkills} {
		p, ok := partials[kind]
		if !ok {
			continue
		}
		if p.PersonalInfo != nil {
			combined.PersonalInfo = p.PersonalInfo
		}
		combined.Experience = append(combined.Experience, p.Experience...)
		combined.Education = append(combined.Education, p.Education...)
		combined.Skills = append(combined.Skills, p.Skills...)
	}

	return &ArchiveResult{Partial: combined, MemberErrors: failures}, nil
}

func parseMember(f *zip.File) (Partial, error) {
	rc, err := f.Open()
	if err != nil {
		return Partial{}, &SourceError{Name: f.Name, Message: "unreadable archive member", Cause: err}
	}
	defer func() { _ = rc.Close() }()

	content, err := io.ReadAll(rc)
	if err != nil {
		return Partial{}, &SourceError{Name: f.Name, Message: "failed to read archive member", Cause: err}
	}

	if strings.HasSuffix(strings.ToLower(f.Name), ".json") {
		return parseJSONMember(f.Name, content)
	}
	return ParseCSV(f.Name, string(content))
}

// --- JSON member shapes (profile-export archive format) ---

type jsonDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type jsonTimePeriod struct {
	StartDate *jsonDate `json:"startDate"`
	EndDate   *jsonDate `json:"endDate"`
}

type jsonProfile struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Headline     string `json:"headline"`
	EmailAddress string `json:"emailAddress"`
	Address      string `json:"address"`
	PhoneNumbers []struct {
		Number string `json:"number"`
	} `json:"phoneNumbers"`
	Websites []struct {
		URL string `json:"url"`
	} `json:"websites"`
}

type jsonPosition struct {
	Title       string          `json:"title"`
	CompanyName string          `json:"companyName"`
	Description string          `json:"description"`
	TimePeriod  *jsonTimePeriod `json:"timePeriod"`
}

type jsonEducation struct {
	SchoolName string          `json:"schoolName"`
	DegreeName string          `json:"degreeName"`
	TimePeriod *jsonTimePeriod `json:"timePeriod"`
	StartDate  *jsonDate       `json:"startDate"`
	EndDate    *jsonDate       `json:"endDate"`
}

type jsonSkill struct {
	Name string `json:"name"`
}

func parseJSONMember(name string, content []byte) (Partial, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "profile"):
		var profile jsonProfile
		if err := json.Unmarshal(content, &profile); err != nil {
			return Partial{}, &SourceError{Name: name, Message: "malformed JSON", Cause: err}
		}
		info := profileFromJSON(profile)
		return Partial{PersonalInfo: &info}, nil
	case strings.Contains(lower, "position"), strings.Contains(lower, "experience"):
		var positions []jsonPosition
		if err := json.Unmarshal(content, &positions); err != nil {
			return Partial{}, &SourceError{Name: name, Message: "malformed JSON", Cause: err}
		}
		return Partial{Experience: experienceFromJSON(positions)}, nil
	case strings.Contains(lower, "education"):
		var education []jsonEducation
		if err := json.Unmarshal(content, &education); err != nil {
			return Partial{}, &SourceError{Name: name, Message: "malformed JSON", Cause: err}
		}
		return Partial{Education: educationFromJSON(education)}, nil
	case strings.Contains(lower, "skill"):
		var skills []jsonSkill
		if err := json.Unmarshal(content, &skills); err != nil {
			return Partial{}, &SourceError{Name: name, Message: "malformed JSON", Cause: err}
		}
		return Partial{Skills: skillsFromJSON(skills)}, nil
	}
	return Partial{}, nil
}

func profileFromJSON(p jsonProfile) types.PersonalInfo {
	info := types.PersonalInfo{
		Name:     strings.TrimSpace(p.FirstName + " " + p.LastName),
		JobTitle: p.Headline,
		Email:    p.EmailAddress,
		Address:  p.Address,
	}
	if len(p.PhoneNumbers) > 0 {
		info.Phone = p.PhoneNumbers[0].Number
	}
	for _, site := range p.Websites {
		if strings.Contains(strings.ToLower(site.URL), "linkedin.com") {
			info.LinkedIn = site.URL
			break
		}
	}
	return info
}

func experienceFromJSON(positions []jsonPosition) []types.Experience {
	entries := make([]types.Experience, 0, len(positions))
	for i, p := range positions {
		var start, end string
		if p.TimePeriod != nil {
			if p.TimePeriod.StartDate != nil {
				start = FormatYearMonth(p.TimePeriod.StartDate.Year, p.TimePeriod.StartDate.Month)
			}
			if p.TimePeriod.EndDate != nil {
				end = FormatYearMonth(p.TimePeriod.EndDate.Year, p.TimePeriod.EndDate.Month)
			}
		}
		if end == "" {
			end = PresentSentinel
		}
		entries = append(entries, types.Experience{
			ID:          syntheticID(types.SectionExperience, i),
			JobTitle:    p.Title,
			Company:     p.CompanyName,
			StartDate:   start,
			EndDate:     end,
			Description: p.Description,
		})
	}
	return entries
}

func educationFromJSON(education []jsonEducation) []types.Education {
	entries := make([]types.Education, 0, len(education))
	for i, e := range education {
		start, end := e.StartDate, e.EndDate
		if e.TimePeriod != nil {
			if e.TimePeriod.StartDate != nil {
				start = e.TimePeriod.StartDate
			}
			if e.TimePeriod.EndDate != nil {
				end = e.TimePeriod.EndDate
			}
		}
		entry := types.Education{
			ID:     syntheticID(types.SectionEducation, i),
			School: e.SchoolName,
			Degree: e.DegreeName,
		}
		if start != nil {
			entry.StartDate = FormatYearMonth(start.Year, start.Month)
		}
		if end != nil {
			entry.EndDate = FormatYearMonth(end.Year, end.Month)
		}
		entries = append(entries, entry)
	}
	return entries
}

func skillsFromJSON(skills []jsonSkill) []types.Skill {
	entries := make([]types.Skill, 0, len(skills))
	for _, s := range skills {
		if s.Name == "" {
			continue
		}
		entries = append(entries, types.Skill{
			ID:   syntheticID(types.SectionSkills, len(entries)),
			Name: s.Name,
		})
	}
	return entries
}
