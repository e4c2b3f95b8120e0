package api

import (
	"net/http"
)

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	rec := s.pipeline.Recoverer()
	if rec == nil || rec.Stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model": rec.Model(),
		"stats": rec.Stats.Snapshot(),
	})
}
