package extraction

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/llm"
)

// fakeClient returns queued responses and records every prompt it receives.
type fakeClient struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeClient) next() (string, error) {
	idx := len(f.prompts) - 1
	var err error
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return "", &llm.ResponseError{Message: "no queued response"}
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.next()
}

func (f *fakeClient) Close() error { return nil }

func noDelay(_ context.Context, _ time.Duration) error { return nil }

const validProfileJSON = `{
	"personalInfo": {"name": "Ada Lovelace", "jobTitle": "Engineer", "email": "ada@example.com", "phone": "", "linkedin": "", "github": "", "address": ""},
	"summary": "Engineer with a decade of experience.",
	"experience": [{"id": "experience-1", "jobTitle": "Engineer", "company": "Acme", "startDate": "Jan 2020", "endDate": "Present", "description": "Built APIs"}],
	"education": [{"id": "education-1", "school": "MIT", "degree": "BSc", "startDate": "2014", "endDate": "2018"}],
	"skills": [{"id": "skill-1", "name": "Go"}],
	"projects": []
}`

func TestExtractProfile_Success(t *testing.T) {
	client := &fakeClient{responses: []string{validProfileJSON}}
	x := NewExtractor(client)

	partial, err := x.ExtractProfile(context.Background(), "Ada Lovelace, Engineer at Acme since 2020")

	require.NoError(t, err)
	require.NotNil(t, partial.PersonalInfo)
	assert.Equal(t, "Ada Lovelace", partial.PersonalInfo.Name)
	require.Len(t, partial.Experience, 1)
	assert.Equal(t, "experience-1", partial.Experience[0].ID)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Ada Lovelace, Engineer at Acme")
}

func TestExtractProfile_EmptyInputRejectedWithoutCall(t *testing.T) {
	client := &fakeClient{}
	x := NewExtractor(client)

	_, err := x.ExtractProfile(context.Background(), "   \n ")

	require.Error(t, err)
	assert.Empty(t, client.prompts)
}

func TestExtractProfile_FencedResponseAccepted(t *testing.T) {
	client := &fakeClient{responses: []string{"```json\n" + validProfileJSON + "\n```"}}
	x := NewExtractor(client)

	partial, err := x.ExtractProfile(context.Background(), "some profile text")

	require.NoError(t, err)
	require.NotNil(t, partial.PersonalInfo)
	assert.Equal(t, "Ada Lovelace", partial.PersonalInfo.Name)
}

func TestExtractProfile_SchemaViolationRejected(t *testing.T) {
	client := &fakeClient{responses: []string{`{"summary": "no collections here"}`}}
	x := NewExtractor(client)

	_, err := x.ExtractProfile(context.Background(), "some profile text")

	var respErr *llm.ResponseError
	require.ErrorAs(t, err, &respErr)
}

func TestExtractProfile_QuotaRetried(t *testing.T) {
	client := &fakeClient{
		errs:      []error{&llm.QuotaError{Message: "rate limited", RetryAfter: time.Second}, nil},
		responses: []string{"", validProfileJSON},
	}
	x := NewExtractor(client).WithRetryOptions(llm.RetryOptions{MaxAttempts: 2, Delay: noDelay})

	partial, err := x.ExtractProfile(context.Background(), "some profile text")

	require.NoError(t, err)
	assert.Len(t, client.prompts, 2)
	require.NotNil(t, partial.PersonalInfo)
}

func TestExtractFromHTML(t *testing.T) {
	client := &fakeClient{responses: []string{validProfileJSON}}
	x := NewExtractor(client)

	html := `<html><body><script>junk()</script><h1>Ada Lovelace</h1><p>Engineer at Acme</p></body></html>`
	_, err := x.ExtractFromHTML(context.Background(), html)

	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Ada Lovelace")
	assert.NotContains(t, client.prompts[0], "junk()")
}

func TestExtractFromPDF_EmptyData(t *testing.T) {
	client := &fakeClient{}
	x := NewExtractor(client)

	_, err := x.ExtractFromPDF(context.Background(), []byte("not a pdf"))

	require.Error(t, err)
	assert.Empty(t, client.prompts)
}
