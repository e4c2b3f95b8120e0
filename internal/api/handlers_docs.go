package api

import (
	"errors"
	"net/http"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/store"
	"github.com/go-chi/chi/v5"
)

// handleGetResume returns a stored artifact. ?artifact=text selects the
// extracted text instead of the record.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	name, contentType := store.RecordArtifact, "application/json"
	if r.URL.Query().Get("artifact") == "text" {
		name, contentType = store.TextArtifact, "text/plain; charset=utf-8"
	}

	data, err := s.pipeline.Store().Get(r.Context(), docID, name)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteResume deletes every artifact stored for a resume.
func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.pipeline.Store().Delete(r.Context(), docID); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, "resume not found", http.StatusNotFound)
	case errors.Is(err, store.ErrInvalidName):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("artifact store failed", "error", err)
		jsonError(w, "artifact store failed", http.StatusInternalServerError)
	}
}
