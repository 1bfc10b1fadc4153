package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/types"
)

type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) next() (string, error) {
	idx := f.calls - 1
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

func (f *fakeClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.next()
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.next()
}

func (f *fakeClient) Close() error { return nil }

func newTestServer(t *testing.T, client llm.Client) *Server {
	t.Helper()
	s, err := New(Config{
		Port:             0,
		DataPath:         filepath.Join(t.TempDir(), "cv.json"),
		DebounceInterval: 10 * time.Millisecond,
		LLMClient:        client,
	})
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestGetDocument_StartsFromTemplate(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "GET", "/document", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.NotEmpty(t, doc.Experience)
	assert.NotEmpty(t, doc.Skills)
}

func TestUpdatePersonalField(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PATCH", "/document/personal", fieldUpdateRequest{Field: "name", Value: "Ada Lovelace"})

	require.Equal(t, http.StatusOK, rec.Code)
	var info types.PersonalInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Ada Lovelace", info.Name)
}

func TestUpdatePersonalField_UnknownFieldRejected(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PATCH", "/document/personal", fieldUpdateRequest{Field: "twitter", Value: "@ada"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateSummary(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PUT", "/document/summary", summaryUpdateRequest{Summary: "New summary"})
	require.Equal(t, http.StatusOK, rec.Code)

	get := doJSON(t, s, "GET", "/document", nil)
	var doc types.Document
	require.NoError(t, json.Unmarshal(get.Body.Bytes(), &doc))
	assert.Equal(t, "New summary", doc.Summary)
}

func TestEntryLifecycle(t *testing.T) {
	s := newTestServer(t, nil)

	// Add
	rec := doJSON(t, s, "POST", "/document/experience/entries", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	id := created["id"]
	require.NotEmpty(t, id)

	// Update
	rec = doJSON(t, s, "PUT", "/document/experience/entries/"+id, fieldUpdateRequest{Field: "company", Value: "Acme"})
	require.Equal(t, http.StatusOK, rec.Code)
	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	found := false
	for _, e := range doc.Experience {
		if e.ID == id {
			found = true
			assert.Equal(t, "Acme", e.Company)
		}
	}
	assert.True(t, found)

	// Remove
	rec = doJSON(t, s, "DELETE", "/document/experience/entries/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Remove again: gone
	rec = doJSON(t, s, "DELETE", "/document/experience/entries/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntry_InvalidSection(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/document/references/entries", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEntry_MissingID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "PUT", "/document/skills/entries/skill-999", fieldUpdateRequest{Field: "name", Value: "Go"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetDocument(t *testing.T) {
	s := newTestServer(t, nil)

	doJSON(t, s, "PUT", "/document/summary", summaryUpdateRequest{Summary: "custom"})
	rec := doJSON(t, s, "POST", "/document/reset", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.NotEqual(t, "custom", doc.Summary)
}

func TestReplaceDocument(t *testing.T) {
	s := newTestServer(t, nil)

	newDoc := types.Document{
		PersonalInfo: types.PersonalInfo{Name: "Ada"},
		Summary:      "Replaced",
	}
	rec := doJSON(t, s, "PUT", "/document", newDoc)

	require.Equal(t, http.StatusOK, rec.Code)
	var doc types.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "Replaced", doc.Summary)
	assert.NotNil(t, doc.Experience, "replace reshapes missing collections")
}

func TestValidateDocument(t *testing.T) {
	s := newTestServer(t, nil)

	doJSON(t, s, "PATCH", "/document/personal", fieldUpdateRequest{Field: "email", Value: "not-an-email"})
	rec := doJSON(t, s, "GET", "/document/validate", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, false, result["valid"])
	assert.NotEmpty(t, result["violations"])
}

func importFile(t *testing.T, s *Server, filename string, content []byte, mode string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	if mode != "" {
		require.NoError(t, mw.WriteField("mode", mode))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestImport_CSVMerge(t *testing.T) {
	s := newTestServer(t, nil)

	csv := "Company Name,Title,Started On,Finished On\nAcme,Engineer,Jan 2020,\n"
	rec := importFile(t, s, "Positions.csv", []byte(csv), "merge")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Document types.Document `json:"document"`
		Mode     string         `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "merge", resp.Mode)

	companies := make([]string, 0)
	for _, e := range resp.Document.Experience {
		companies = append(companies, e.Company)
	}
	assert.Contains(t, companies, "Acme")
	// Merge keeps the template's starter entry too.
	assert.Greater(t, len(resp.Document.Experience), 1)
}

func TestImport_CSVReplace(t *testing.T) {
	s := newTestServer(t, nil)

	csv := "Company Name,Title,Started On,Finished On\nAcme,Engineer,Jan 2020,\n"
	rec := importFile(t, s, "Positions.csv", []byte(csv), "replace")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Document types.Document `json:"document"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Document.Experience, 1)
	assert.Equal(t, "Acme", resp.Document.Experience[0].Company)
}

func TestImport_UnsupportedExtension(t *testing.T) {
	s := newTestServer(t, nil)

	rec := importFile(t, s, "resume.docx", []byte("binary"), "")

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestImport_InvalidMode(t *testing.T) {
	s := newTestServer(t, nil)

	rec := importFile(t, s, "Positions.csv", []byte("Company Name,Title\nAcme,Engineer\n"), "overwrite")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImport_HTMLWithoutAPIKey(t *testing.T) {
	s := newTestServer(t, nil)

	rec := importFile(t, s, "profile.html", []byte("<html><body><p>Ada</p></body></html>"), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

const analyzeReportJSON = `{
	"matchScore": 80,
	"summary": "Good match.",
	"matchingKeywords": ["Go"],
	"missingKeywords": [],
	"actionableFeedback": ["Add metrics."]
}`

func TestAnalyze(t *testing.T) {
	client := &fakeClient{responses: []string{analyzeReportJSON}}
	s := newTestServer(t, client)

	rec := doJSON(t, s, "POST", "/analyze", analyzeRequest{JobDescription: "Go engineer"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report types.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 80, report.MatchScore)
}

func TestAnalyze_EmptyJobDescription(t *testing.T) {
	client := &fakeClient{}
	s := newTestServer(t, client)

	rec := doJSON(t, s, "POST", "/analyze", analyzeRequest{JobDescription: "  "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, client.calls, "no model call for a blank job description")
}

func TestAnalyze_WithoutAPIKey(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doJSON(t, s, "POST", "/analyze", analyzeRequest{JobDescription: "Go engineer"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalyze_QuotaSurfacesRetryAfter(t *testing.T) {
	quota := &llm.QuotaError{Message: "rate limited", RetryAfter: 12 * time.Second}
	client := &fakeClient{errs: []error{quota, quota, quota}}
	s := newTestServer(t, client)
	// Collapse the retry loop so the test does not sleep.
	s.analyzer = s.analyzer.WithRetryOptions(llm.RetryOptions{
		MaxAttempts: 1,
		Delay:       func(context.Context, time.Duration) error { return nil },
	})

	rec := doJSON(t, s, "POST", "/analyze", analyzeRequest{JobDescription: "Go engineer"})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestEnhance(t *testing.T) {
	client := &fakeClient{responses: []string{"Polished summary."}}
	s := newTestServer(t, client)

	rec := doJSON(t, s, "POST", "/enhance", enhanceRequest{Field: "summary", Text: "my summary"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Polished summary.")
}

func TestEnhance_UnknownField(t *testing.T) {
	client := &fakeClient{}
	s := newTestServer(t, client)

	rec := doJSON(t, s, "POST", "/enhance", enhanceRequest{Field: "education"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, client.calls)
}

func TestPreview_ReflectsDocument(t *testing.T) {
	s := newTestServer(t, nil)

	doJSON(t, s, "PATCH", "/document/personal", fieldUpdateRequest{Field: "name", Value: "Ada Lovelace"})
	doJSON(t, s, "PUT", "/document/summary", summaryUpdateRequest{Summary: "- Built APIs"})

	req := httptest.NewRequest("GET", "/preview", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Ada Lovelace")
	assert.Contains(t, rec.Body.String(), "<li>Built APIs</li>")
}

func TestExportJSON(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/export/json", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cv.json")
	var doc types.Document
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
}

func TestExportPDF_NotReady(t *testing.T) {
	s := newTestServer(t, nil)

	// Blank out the template content so the document is not export-ready.
	doJSON(t, s, "PUT", "/document", types.Document{})

	req := httptest.NewRequest("GET", "/export/pdf", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditsArePersisted(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "cv.json")
	s, err := New(Config{DataPath: dataPath, DebounceInterval: 5 * time.Millisecond})
	require.NoError(t, err)

	doJSON(t, s, "PATCH", "/document/personal", fieldUpdateRequest{Field: "name", Value: "Ada Lovelace"})

	// Wait out the debounce interval, then reload from disk.
	require.Eventually(t, func() bool {
		reloaded, err := New(Config{DataPath: dataPath, DebounceInterval: time.Hour})
		if err != nil {
			return false
		}
		return reloaded.store.Document().PersonalInfo.Name == "Ada Lovelace"
	}, time.Second, 20*time.Millisecond)
}

func TestModelRateLimit(t *testing.T) {
	responses := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		responses = append(responses, analyzeReportJSON)
	}
	client := &fakeClient{responses: responses}
	s := newTestServer(t, client)

	limited := false
	for i := 0; i < 10; i++ {
		rec := doJSON(t, s, "POST", "/analyze", analyzeRequest{JobDescription: fmt.Sprintf("job %d", i)})
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			break
		}
	}
	assert.True(t, limited, "burst of model calls should hit the rate limit")
}
