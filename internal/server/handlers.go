package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/hyperjump/genie/internal/chat"
	"github.com/hyperjump/genie/internal/dialogue"
	"github.com/hyperjump/genie/internal/llm"
	"github.com/hyperjump/genie/internal/models"
	"github.com/hyperjump/genie/internal/session"
	"go.uber.org/zap"
)

// maxUploadBytes bounds one multipart upload batch.
const maxUploadBytes = 64 << 20

func (s *Server) handleProcessDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	var docs []models.SourceDocument
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "unreadable upload: "+header.Filename)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "unreadable upload: "+header.Filename)
			return
		}
		docs = append(docs, models.SourceDocument{
			Filename: header.Filename,
			Format:   models.FormatFromExt(filepath.Ext(header.Filename)),
			Content:  content,
		})
	}
	s.logger.Debug("process documents request", zap.Int("files", len(docs)))

	s.mu.Lock()
	units, err := s.session.ProcessDocuments(r.Context(), docs)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			s.respondError(w, http.StatusBadRequest, "no text could be extracted from the uploaded files")
			return
		}
		s.logger.Error("document processing failed", zap.Error(err))
		s.respondError(w, serviceStatus(err), err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "processed",
		"units":  units,
		"chunks": s.session.ChunkCount(),
	})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	s.logger.Debug("chat request", zap.String("question", req.Question))

	s.mu.Lock()
	answer, err := s.session.Ask(r.Context(), req.Question)
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, chat.ErrNotReady) {
			s.respondError(w, http.StatusConflict, "process documents before asking questions")
			return
		}
		s.logger.Error("chat failed", zap.Error(err))
		s.respondError(w, serviceStatus(err), err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summary, err := s.session.Summarize(r.Context())
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			s.respondError(w, http.StatusConflict, "process documents before summarizing")
			return
		}
		s.logger.Error("summarization failed", zap.Error(err))
		s.respondError(w, serviceStatus(err), err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	script, err := s.session.GenerateScript(r.Context())
	s.mu.Unlock()
	if err != nil {
		if errors.Is(err, session.ErrEmptyInput) {
			s.respondError(w, http.StatusConflict, "process documents before generating a script")
			return
		}
		s.logger.Error("script generation failed", zap.Error(err))
		// A stopping failure may still leave a usable partial script.
		s.respondJSON(w, serviceStatus(err), map[string]string{
			"error":  err.Error(),
			"script": script,
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"script": script})
}

func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	audio, err := s.session.SynthesizeAudio(r.Context(), nil)
	s.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoScript):
			s.respondError(w, http.StatusConflict, "generate a podcast script first")
		case errors.Is(err, dialogue.ErrNoDialogueFound):
			s.respondError(w, http.StatusUnprocessableEntity, "script contains no recognizable dialogue lines")
		default:
			s.logger.Error("audio synthesis failed", zap.Error(err))
			s.respondError(w, serviceStatus(err), err.Error())
		}
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", `attachment; filename="podcast_dual_voice.mp3"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.session.Reset()
	s.mu.Unlock()
	s.logger.Debug("session reset", zap.String("session", s.session.ID()))
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]interface{}{
		"session":    s.session.ID(),
		"ready":      s.session.Ready(),
		"has_script": s.session.HasScript(),
		"units":      s.session.UnitCount(),
		"chunks":     s.session.ChunkCount(),
		"progress":   s.session.Progress(),
	}
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serviceStatus maps classified collaborator failures to 502; everything else is 500.
func serviceStatus(err error) int {
	if llm.IsServiceError(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
