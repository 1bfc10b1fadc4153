package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jonathan/cv-studio/internal/render"
	"github.com/jonathan/cv-studio/internal/validation"
)

// handlePreview serves the HTML rendering of the current document.
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()

	html, err := render.HTML(doc)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(html); err != nil {
		slog.Error("failed to write preview", "error", err)
	}
}

// handleExportJSON serves the document as a downloadable JSON snapshot.
func (s *Server) handleExportJSON(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.json"`)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		slog.Error("failed to encode export", "error", err)
	}
}

// handleExportPDF renders the document to PDF. Export readiness is checked
// first so an empty document fails fast instead of spawning a browser.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.store.Document()
	s.mu.Unlock()

	if err := validation.CheckExportReady(doc); err != nil {
		s.handleError(w, err)
		return
	}

	pdf, err := render.PDF(r.Context(), doc)
	if err != nil {
		s.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("failed to write pdf", "error", err)
	}
}
