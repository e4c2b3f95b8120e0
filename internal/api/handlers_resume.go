package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/RiyaBanerjee29/Resume-Parser/internal/extract"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/parser"
	"github.com/RiyaBanerjee29/Resume-Parser/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// uploadField is the multipart field carrying the resume.
const uploadField = "resume"

// readUpload returns the uploaded resume, or writes the error response and
// returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (filename string, data []byte, ok bool) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return "", nil, false
		}
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return "", nil, false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil || header.Filename == "" {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, (&parser.UnsupportedFormatError{Ext: strings.ToLower(filepath.Ext(filename))}).Error(), http.StatusBadRequest)
		return "", nil, false
	}

	data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// handleParseResume runs the whole pipeline synchronously and returns the
// record. A record that failed to parse is still a 200.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	res, err := s.pipeline.Run(r.Context(), filename, data, pipeline.Hooks{})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	w.Header().Set("X-Doc-ID", res.DocID)
	writeJSON(w, http.StatusOK, res.Record)
}

func (s *Server) handleExtractText(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	text, err := s.pipeline.Text(r.Context(), filename, data)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id": pipeline.DocID(data),
		"text":   text,
	})
}

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	job := pipeline.NewJob(uuid.NewString(), filename, data)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/resumes/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// writePipelineError maps pipeline failures onto status codes.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var fmtErr *parser.UnsupportedFormatError
	var openErr *parser.OpenError
	switch {
	case errors.As(err, &fmtErr):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &openErr):
		jsonError(w, err.Error(), http.StatusInternalServerError)
	case errors.Is(err, extract.ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "request canceled", http.StatusServiceUnavailable)
	case errors.Is(err, extract.ErrCompletion):
		jsonError(w, err.Error(), http.StatusBadGateway)
	default:
		s.log.Error("pipeline failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func sanitizeFilename(name string) string {
	// Browsers on Windows may send full paths.
	name = strings.ReplaceAll(name, "\\", "/")
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
