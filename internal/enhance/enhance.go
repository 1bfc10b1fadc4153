// Package enhance rewrites free-text CV fields (summary, experience
// descriptions) into more professional, ATS-friendly wording.
package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/llm"
)

// Field identifies which kind of text is being rewritten; it selects the
// prompt variant.
type Field string

// Field constants name the rewritable text fields.
const (
	FieldSummary    Field = "summary"
	FieldExperience Field = "experience"
)

// Valid reports whether f names a known rewritable field.
func (f Field) Valid() bool {
	return f == FieldSummary || f == FieldExperience
}

// Request describes one rewrite. Text may be empty, in which case the model
// drafts new content from the JobTitle/Company context instead of improving
// existing content.
type Request struct {
	Field    Field
	Text     string
	JobTitle string
	Company  string
}

// UnknownFieldError is returned when a request names a field that cannot be
// rewritten.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown enhance field: %q (expected %q or %q)", e.Field, FieldSummary, FieldExperience)
}

const summaryImprovePrompt = `Make the following CV summary more professional, ATS-friendly, and impressive. Improve grammar, fluency, and professionalism while preserving the existing content.

IMPORTANT FORMATTING RULES:
- Respond only in plain text format.
- Do not use any markdown characters (**, *, _, etc.).
- Leave a blank line between paragraphs.
- Use the "-" character for list items.
- Write each list item on a new line.
- Maintain the original structure and format.

Current summary:
"%s"

Return only the improved summary text, preserving paragraph spacing and list format.`

const summaryDraftPrompt = `For an ATS-friendly CV, write a professional summary for an experienced professional in the "%s" position. The summary should highlight key skills and career goals.

IMPORTANT: Respond only in plain text format. Do not use any markdown characters. Leave a blank line between paragraphs.

Return only the summary text.`

const experienceImprovePrompt = `Make the following job experience description more professional, ATS-friendly, and impressive. Use action verbs, add measurable results, and highlight achievements.

IMPORTANT FORMATTING RULES:
- Respond only in plain text format.
- Do not use any markdown characters.
- Keep it SHORT AND CONCISE (maximum 3-4 bullet points).
- Each bullet point should be on a single line, not too long.
- Use the "-" character for list items.
- Write each list item on a new line.
- Maintain the original list format but make it shorter.

Current description:
"%s"

Return only the improved and CONCISE description text, keeping each bullet point on a single line.`

const experienceDraftPrompt = `For an ATS-friendly CV, create a SHORT AND CONCISE list of responsibilities and achievements for the "%s" position at "%s".

IMPORTANT RULES:
- Respond only in plain text format.
- Write a maximum of 3-4 bullet points.
- Each bullet point should be on a single line, short and concise.
- Start each bullet point with "-".
- Start with an action verb.
- Include measurable results.

Return only the short list items.`

// Enhancer rewrites CV text through an LLM client. Rewrites are short
// single-field operations, so they run on the lite model tier.
type Enhancer struct {
	client llm.Client
	retry  llm.RetryOptions
}

// NewEnhancer creates an Enhancer with the default quota-retry policy.
func NewEnhancer(client llm.Client) *Enhancer {
	return &Enhancer{client: client, retry: llm.DefaultRetryOptions()}
}

// WithRetryOptions overrides the retry policy, mainly for tests.
func (e *Enhancer) WithRetryOptions(opts llm.RetryOptions) *Enhancer {
	e.retry = opts
	return e
}

// Enhance rewrites one text field. The result has residual markdown
// formatting stripped even though the prompt forbids it; models add it
// anyway.
func (e *Enhancer) Enhance(ctx context.Context, req Request) (string, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return "", err
	}

	result, err := llm.Retry(ctx, e.retry, func(ctx context.Context) (string, error) {
		return e.client.GenerateContent(ctx, prompt, llm.TierLite)
	})
	if err != nil {
		return "", err
	}

	cleaned := llm.StripMarkdown(result)
	if cleaned == "" {
		return "", &llm.ResponseError{Message: "model returned empty rewrite"}
	}
	return cleaned, nil
}

func buildPrompt(req Request) (string, error) {
	hasText := strings.TrimSpace(req.Text) != ""
	switch req.Field {
	case FieldSummary:
		if hasText {
			return fmt.Sprintf(summaryImprovePrompt, req.Text), nil
		}
		return fmt.Sprintf(summaryDraftPrompt, req.JobTitle), nil
	case FieldExperience:
		if hasText {
			return fmt.Sprintf(experienceImprovePrompt, req.Text), nil
		}
		return fmt.Sprintf(experienceDraftPrompt, req.JobTitle, req.Company), nil
	default:
		return "", &UnknownFieldError{Field: req.Field}
	}
}
