package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/cv-studio/internal/types"
	"github.com/jonathan/cv-studio/internal/validation"
)

// handleGetDocument returns the current document.
func (s *Server) handleGetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleReplaceDocument swaps the entire document (the import/replace flow).
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	var doc types.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid document JSON: " + err.Error()})
		return
	}

	s.mu.Lock()
	s.store.Replace(doc)
	updated := s.store.Document()
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleResetDocument restores the starter template.
func (s *Server) handleResetDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.store.Reset()
	doc := s.store.Document()
	s.mu.Unlock()
	s.jsonResponse(w, http.StatusOK, doc)
}

type fieldUpdateRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

var personalFields = map[string]bool{
	"name": true, "jobTitle": true, "email": true, "phone": true,
	"linkedin": true, "github": true, "address": true,
}

// handleUpdatePersonal replaces one scalar field of the personal info record.
func (s *Server) handleUpdatePersonal(w http.ResponseWriter, r *http.Request) {
	var req fieldUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid request JSON: " + err.Error()})
		return
	}
	if !personalFields[req.Field] {
		s.handleError(w, &ErrBadRequest{Message: "unknown personal info field: " + req.Field})
		return
	}

	s.mu.Lock()
	s.store.UpdatePersonalField(req.Field, req.Value)
	doc := s.store.Document()
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, doc.PersonalInfo)
}

type summaryUpdateRequest struct {
	Summary string `json:"summary"`
}

// handleUpdateSummary replaces the summary wholesale.
func (s *Server) handleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid request JSON: " + err.Error()})
		return
	}

	s.mu.Lock()
	s.store.UpdateSummary(req.Summary)
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusOK, map[string]string{"summary": req.Summary})
}

// handleValidateDocument reports field-format violations and export
// readiness for the current document.
func (s *Server) handleValidateDocument(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()

	response := map[string]any{
		"valid":       true,
		"exportReady": true,
	}
	var vErr *validation.ValidationError
	if err := validation.ValidateDocument(doc); errors.As(err, &vErr) {
		response["valid"] = false
		response["violations"] = vErr.Violations
	}
	if err := validation.CheckExportReady(doc); errors.As(err, &vErr) {
		response["exportReady"] = false
		response["exportViolations"] = vErr.Violations
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleAddEntry appends a new empty entry to the named section.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	section := types.Section(r.PathValue("section"))
	if !section.Valid() {
		s.handleError(w, &ErrInvalidSection{Section: string(section)})
		return
	}

	s.mu.Lock()
	id := s.store.AddEntry(section)
	s.mu.Unlock()

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id})
}

// handleUpdateEntry replaces one field of an existing entry.
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	section := types.Section(r.PathValue("section"))
	id := r.PathValue("id")
	if !section.Valid() {
		s.handleError(w, &ErrInvalidSection{Section: string(section)})
		return
	}

	var req fieldUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid request JSON: " + err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !entryExists(s.store.Document(), section, id) {
		s.handleError(w, &ErrEntryNotFound{Section: string(section), ID: id})
		return
	}
	s.store.UpdateEntry(section, id, req.Field, req.Value)

	s.jsonResponse(w, http.StatusOK, s.store.Document())
}

// handleRemoveEntry deletes an entry by id.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	section := types.Section(r.PathValue("section"))
	id := r.PathValue("id")
	if !section.Valid() {
		s.handleError(w, &ErrInvalidSection{Section: string(section)})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !entryExists(s.store.Document(), section, id) {
		s.handleError(w, &ErrEntryNotFound{Section: string(section), ID: id})
		return
	}
	s.store.RemoveEntry(section, id)

	w.WriteHeader(http.StatusNoContent)
}

func entryExists(doc types.Document, section types.Section, id string) bool {
	switch section {
	case types.SectionExperience:
		for _, e := range doc.Experience {
			if e.ID == id {
				return true
			}
		}
	case types.SectionEducation:
		for _, e := range doc.Education {
			if e.ID == id {
				return true
			}
		}
	case types.SectionSkills:
		for _, e := range doc.Skills {
			if e.ID == id {
				return true
			}
		}
	case types.SectionProjects:
		for _, e := range doc.Projects {
			if e.ID == id {
				return true
			}
		}
	}
	return false
}
