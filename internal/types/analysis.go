package types

// AnalysisReport is the structured result of an ATS match analysis between a
// CV and a job description.
type AnalysisReport struct {
	MatchScore         int      `json:"matchScore"` // 0-100
	Summary            string   `json:"summary"`
	MatchingKeywords   []string `json:"matchingKeywords"`
	MissingKeywords    []string `json:"missingKeywords"`
	ActionableFeedback []string `json:"actionableFeedback"`
}
