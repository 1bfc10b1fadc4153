package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/normalize"
	"github.com/jonathan/cv-studio/internal/schemas"
)

const profilePromptTemplate = `SCENARIO:
You are an expert data conversion agent specializing in extracting structured data from unstructured text. Your task is to analyze the content of a profile or resume export and convert the essential CV information (Personal Info, Work Experience, Education, Skills, Projects) into a clean, structured JSON format.

RULES:
- Your output MUST be ONLY a valid JSON object. Do not add any other text.
- The top-level keys are: personalInfo, summary, experience, education, skills, projects.
- personalInfo is an object with string fields: name, jobTitle, email, phone, linkedin, github, address.
- IMPORTANT: For each work experience, education, skill, and project entry, assign a unique string to the 'id' field, such as 'experience-1', 'education-2'.
- If you cannot find a section, include that field as an empty array [] or an empty string "" but never break the JSON format.
- Extract dates and titles as cleanly as possible.

Here is the content to parse:
"""
%s
"""`

// Extractor structures free text into CV data via an LLM call.
type Extractor struct {
	client llm.Client
	retry  llm.RetryOptions
}

// NewExtractor creates an Extractor on the given client. Quota failures are
// retried with the default policy.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client, retry: llm.DefaultRetryOptions()}
}

// WithRetryOptions overrides the retry policy, mainly for tests.
func (x *Extractor) WithRetryOptions(opts llm.RetryOptions) *Extractor {
	x.retry = opts
	return x
}

// ExtractProfile asks the model to structure raw profile text into CV data.
// The response is schema-validated before decoding, so a malformed model
// payload surfaces as an error rather than a half-filled document.
func (x *Extractor) ExtractProfile(ctx context.Context, text string) (normalize.Partial, error) {
	if strings.TrimSpace(text) == "" {
		return normalize.Partial{}, fmt.Errorf("no text content to extract from")
	}

	prompt := fmt.Sprintf(profilePromptTemplate, text)

	raw, err := llm.Retry(ctx, x.retry, func(ctx context.Context) (string, error) {
		return x.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	})
	if err != nil {
		return normalize.Partial{}, err
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.ValidateDocument(cleaned); err != nil {
		return normalize.Partial{}, &llm.ResponseError{
			Message: "extracted profile does not match the expected shape",
			Cause:   err,
		}
	}

	var partial normalize.Partial
	if err := json.Unmarshal([]byte(cleaned), &partial); err != nil {
		return normalize.Partial{}, &llm.ResponseError{
			Message: "failed to decode extracted profile",
			Cause:   err,
		}
	}

	return partial, nil
}

// ExtractFromHTML recovers the visible text of an HTML profile export and
// structures it.
func (x *Extractor) ExtractFromHTML(ctx context.Context, html string) (normalize.Partial, error) {
	text, err := HTMLToText(html)
	if err != nil {
		return normalize.Partial{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return x.ExtractProfile(ctx, text)
}

// ExtractFromPDF recovers text from a PDF resume and structures it.
func (x *Extractor) ExtractFromPDF(ctx context.Context, data []byte) (normalize.Partial, error) {
	text, err := PDFToText(data)
	if err != nil {
		return normalize.Partial{}, err
	}
	if text == "" {
		return normalize.Partial{}, fmt.Errorf("no text content found in PDF")
	}
	return x.ExtractProfile(ctx, text)
}
