// Package ats analyzes a CV against a job description and produces a
// structured compatibility report.
package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/schemas"
	"github.com/jonathan/cv-studio/internal/types"
)

// EmptyJobDescriptionError is returned before any model call when the job
// description is blank.
type EmptyJobDescriptionError struct{}

func (e *EmptyJobDescriptionError) Error() string {
	return "job description must not be empty"
}

const analysisPromptTemplate = `You are an Application Tracking System (ATS) expert. Your task is to analyze a provided CV against a job description and provide a detailed report in a structured JSON format.

Here is the CV data:
` + "```json\n%s\n```" + `

Here is the job description:
"""
%s
"""

Please perform the following analysis and return the result according to the specified JSON schema:
1. Match Score: Indicate how well the CV matches the job description as a percentage (0-100).
2. Summary: Write a brief summary of the analysis.
3. Matching Keywords: List the keywords found in both the CV and the job description.
4. Missing Keywords: List the important keywords that are in the job description but not in the CV.
5. Actionable Feedback: Provide concrete, actionable suggestions on how the candidate can improve their CV for this position.

Your entire response must be only the JSON object. Do not add any other text.`

// projection is the reduced CV view sent to the model. Ids, dates, and
// contact details carry no signal for keyword matching and are left out.
type projection struct {
	Summary    string                `json:"summary"`
	Experience []projectedExperience `json:"experience"`
	Education  []string              `json:"education"`
	Skills     []string              `json:"skills"`
}

type projectedExperience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// Analyzer runs ATS compatibility analysis through an LLM client.
type Analyzer struct {
	client llm.Client
	retry  llm.RetryOptions
}

// NewAnalyzer creates an Analyzer with the default quota-retry policy.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client, retry: llm.DefaultRetryOptions()}
}

// WithRetryOptions overrides the retry policy, mainly for tests.
func (a *Analyzer) WithRetryOptions(opts llm.RetryOptions) *Analyzer {
	a.retry = opts
	return a
}

// Analyze compares the document against a job description and returns a
// structured report. The job description is checked locally before any
// network traffic.
func (a *Analyzer) Analyze(ctx context.Context, doc types.Document, jobDescription string) (*types.AnalysisReport, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &EmptyJobDescriptionError{}
	}

	prompt, err := buildPrompt(doc, jobDescription)
	if err != nil {
		return nil, err
	}

	raw, err := llm.Retry(ctx, a.retry, func(ctx context.Context) (string, error) {
		return a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	})
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateAnalysis(cleaned); err != nil {
		return nil, &llm.ResponseError{
			Message: "analysis report does not match the expected shape",
			Cause:   err,
		}
	}

	var report types.AnalysisReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, &llm.ResponseError{
			Message: "failed to decode analysis report",
			Cause:   err,
		}
	}

	return &report, nil
}

func buildPrompt(doc types.Document, jobDescription string) (string, error) {
	proj := projection{
		Summary:    doc.Summary,
		Experience: make([]projectedExperience, 0, len(doc.Experience)),
		Education:  make([]string, 0, len(doc.Education)),
		Skills:     make([]string, 0, len(doc.Skills)),
	}
	for _, e := range doc.Experience {
		proj.Experience = append(proj.Experience, projectedExperience{
			Position:    e.JobTitle,
			Company:     e.Company,
			Description: e.Description,
		})
	}
	for _, e := range doc.Education {
		proj.Education = append(proj.Education, fmt.Sprintf("%s, %s", e.Degree, e.School))
	}
	for _, s := range doc.Skills {
		proj.Skills = append(proj.Skills, s.Name)
	}

	cvJSON, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode CV projection: %w", err)
	}

	return fmt.Sprintf(analysisPromptTemplate, cvJSON, jobDescription), nil
}
