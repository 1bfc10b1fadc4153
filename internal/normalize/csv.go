package normalize

import (
	"encoding/csv"
	"strings"

	"github.com/jonathan/cv-studio/internal/types"
)

// ParseCSV parses one tabular export file into a partial document holding at
// most one section, chosen by Classify. An unrecognized file yields an empty
// partial and no error; malformed CSV surfaces a SourceError.
func ParseCSV(filename, content string) (Partial, error) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1 // LinkedIn exports pad rows unevenly
	records, err := reader.ReadAll()
	if err != nil {
		return Partial{}, &SourceError{Name: filename, Message: "malformed CSV", Cause: err}
	}
	if len(records) == 0 {
		return Partial{}, nil
	}

	headers := records[0]
	rows := recordsToRows(headers, records[1:])

	switch Classify(filename, headers) {
	case SourcePersonalInfo:
		info := profileFromRows(rows)
		return Partial{PersonalInfo: &info}, nil
	case SourceExperience:
		return Partial{Experience: experienceFromRows(rows)}, nil
	case SourceEducation:
		return Partial{Education: educationFromRows(rows)}, nil
	case SourceSkills:
		return Partial{Skills: skillsFromRows(rows)}, nil
	default:
		return Partial{}, nil
	}
}

// row is one CSV record keyed by lower-cased header name.
type row map[string]string

func recordsToRows(headers []string, records [][]string) []row {
	rows := make([]row, 0, len(records))
	for _, record := range records {
		if isBlankRecord(record) {
			continue
		}
		r := make(row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				r[strings.ToLower(strings.TrimSpace(h))] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, r)
	}
	return rows
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func profileFromRows(rows []row) types.PersonalInfo {
	if len(rows) == 0 {
		return types.PersonalInfo{}
	}
	r := rows[0]
	name := strings.TrimSpace(r["first name"] + " " + r["last name"])
	return types.PersonalInfo{
		Name:     name,
		JobTitle: r["headline"],
		Email:    r["email address"],
		Phone:    r["phone numbers"],
		Address:  r["address"],
	}
}

func experienceFromRows(rows []row) []types.Experience {
	entries := make([]types.Experience, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, types.Experience{
			ID:          syntheticID(types.SectionExperience, i),
			JobTitle:    r["title"],
			Company:     r["company name"],
			StartDate:   NormalizeDate(r["started on"]),
			EndDate:     NormalizeEndDate(r["finished on"]),
			Description: r["description"],
		})
	}
	return entries
}

func educationFromRows(rows []row) []types.Education {
	entries := make([]types.Education, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, types.Education{
			ID:        syntheticID(types.SectionEducation, i),
			School:    r["school name"],
			Degree:    r["degree name"],
			StartDate: NormalizeDate(r["start date"]),
			EndDate:   NormalizeDate(r["end date"]),
		})
	}
	return entries
}

func skillsFromRows(rows []row) []types.Skill {
	entries := make([]types.Skill, 0, len(rows))
	for _, r := range rows {
		name := r["skill"]
		if name == "" {
			name = r["name"]
		}
		if name == "" {
			continue
		}
		entries = append(entries, types.Skill{
			ID:   syntheticID(types.SectionSkills, len(entries)),
			Name: name,
		})
	}
	return entries
}
