package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/cv-studio/internal/enhance"
)

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

// handleAnalyze runs the ATS compatibility analysis for the current document
// against a job description.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.handleError(w, &ErrLLMUnavailable{})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid request JSON: " + err.Error()})
		return
	}

	if !s.checkModelLimit(w, r) {
		return
	}

	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()

	report, err := s.analyzer.Analyze(r.Context(), doc, req.JobDescription)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

type enhanceRequest struct {
	Field    string `json:"field"`
	Text     string `json:"text"`
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
}

// handleEnhance rewrites one free-text field. The result is returned to the
// caller, not applied; the editor decides whether to keep it.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if s.enhancer == nil {
		s.handleError(w, &ErrLLMUnavailable{})
		return
	}

	var req enhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid request JSON: " + err.Error()})
		return
	}

	if !s.checkModelLimit(w, r) {
		return
	}

	result, err := s.enhancer.Enhance(r.Context(), enhance.Request{
		Field:    enhance.Field(req.Field),
		Text:     req.Text,
		JobTitle: req.JobTitle,
		Company:  req.Company,
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"text": result})
}
