package server

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-studio/internal/normalize"
	"github.com/jonathan/cv-studio/internal/types"
)

// maxImportSize caps uploaded import files at 32 MiB.
const maxImportSize = 32 << 20

// handleImport ingests an uploaded profile export and merges or replaces the
// current document. The format is dispatched on the file extension; HTML and
// PDF go through the LLM extraction path and count against the model-call
// rate limit.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		s.handleError(w, &ErrBadRequest{Message: "invalid multipart form: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, &ErrBadRequest{Message: "missing 'file' form field"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		s.handleError(w, &ErrBadRequest{Message: "failed to read upload: " + err.Error()})
		return
	}

	mode := r.FormValue("mode")
	if mode == "" {
		mode = "merge"
	}
	if mode != "merge" && mode != "replace" {
		s.handleError(w, &ErrBadRequest{Message: "mode must be 'merge' or 'replace'"})
		return
	}

	name := header.Filename
	var (
		partial      normalize.Partial
		memberErrors []string
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		partial, err = normalize.ParseCSV(name, string(data))
	case ".json":
		partial, err = normalize.ParseJSONDocument(name, data)
	case ".zip":
		var result *normalize.ArchiveResult
		result, err = normalize.ParseArchive(data)
		if err == nil {
			partial = result.Partial
			memberErrors = result.Failed()
		}
	case ".html", ".htm":
		if s.extractor == nil {
			s.handleError(w, &ErrLLMUnavailable{})
			return
		}
		if !s.checkModelLimit(w, r) {
			return
		}
		partial, err = s.extractor.ExtractFromHTML(r.Context(), string(data))
	case ".pdf":
		if s.extractor == nil {
			s.handleError(w, &ErrLLMUnavailable{})
			return
		}
		if !s.checkModelLimit(w, r) {
			return
		}
		partial, err = s.extractor.ExtractFromPDF(r.Context(), data)
	default:
		s.handleError(w, &normalize.UnsupportedFormatError{Name: name})
		return
	}
	if err != nil {
		s.handleError(w, err)
		return
	}

	var updated types.Document
	s.mu.Lock()
	if mode == "replace" {
		s.store.Replace(normalize.Normalize(partial))
	} else {
		s.store.Replace(normalize.Merge(s.store.Document(), partial))
	}
	updated = s.store.Document()
	s.mu.Unlock()

	response := map[string]any{
		"document": updated,
		"mode":     mode,
	}
	if len(memberErrors) > 0 {
		response["failedSources"] = memberErrors
	}
	s.jsonResponse(w, http.StatusOK, response)
}
