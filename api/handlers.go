package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/poiesic/hukumpedia/answer"
	"github.com/poiesic/hukumpedia/core"
	"github.com/poiesic/hukumpedia/index"
	"github.com/poiesic/hukumpedia/search"
)

const maxBodyBytes = 64 << 10

type searchRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
	TopK  int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

type askRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=50"`
}

// trimmer is implemented by requests whose text fields are trimmed before
// validation, so that whitespace-only input fails "required".
type trimmer interface {
	trim()
}

func (r *searchRequest) trim() { r.Query = strings.TrimSpace(r.Query) }

func (r *askRequest) trim() { r.Question = strings.TrimSpace(r.Question) }

type decisionResponse struct {
	Chapter      string  `json:"bab"`
	ChapterTitle string  `json:"judul,omitempty"`
	Distance     float32 `json:"distance"`
	Scoped       bool    `json:"scoped"`
	Widened      bool    `json:"widened"`
	ScopeSize    int     `json:"scope_size"`
}

type searchResponse struct {
	Results  []*core.SearchResult `json:"results"`
	Decision decisionResponse     `json:"decision"`
}

type askResponse struct {
	Question string               `json:"question"`
	Answer   string               `json:"answer,omitempty"`
	Fallback bool                 `json:"fallback"`
	Error    string               `json:"error,omitempty"`
	Results  []*core.SearchResult `json:"results"`
	Decision decisionResponse     `json:"decision"`
}

type chapterResponse struct {
	Chapter  string `json:"bab"`
	Title    string `json:"judul"`
	Articles int    `json:"pasal_count"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"chapters": len(s.backend.Chapters()),
	})
}

func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request) {
	chapters := s.backend.Chapters()
	out := make([]chapterResponse, len(chapters))
	for i, c := range chapters {
		out[i] = chapterResponse{Chapter: c.ID, Title: c.Title, Articles: len(c.Articles)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !s.decode(w, r, &req) {
		return
	}

	retrieval, err := s.backend.Retrieve(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.serviceError(w, "search failed", err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:  retrieval.Results,
		Decision: toDecision(retrieval.Decision),
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.backend.Ask(r.Context(), req.Question, req.TopK)
	if err != nil {
		s.serviceError(w, "ask failed", err)
		return
	}

	out := askResponse{
		Question: resp.Question,
		Answer:   resp.Answer,
		Fallback: resp.Fallback,
		Results:  resp.Results,
		Decision: toDecision(resp.Decision),
	}
	if resp.ComposeErr != nil {
		out.Error = "answer composition unavailable"
	}
	writeJSON(w, http.StatusOK, out)
}

// decode reads and validates a JSON body. It writes the error response and
// returns false when the request is rejected.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		jsonError(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if t, ok := dst.(trimmer); ok {
		t.trim()
	}
	if err := s.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fieldErrors(err),
		})
		return false
	}
	return true
}

func (s *Server) serviceError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, answer.ErrEmptyQuestion):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, index.ErrCollaboratorUnavailable):
		s.log.Error(msg, "err", err)
		jsonError(w, "embedding service unavailable", http.StatusBadGateway)
	default:
		s.log.Error(msg, "err", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func toDecision(d search.Decision) decisionResponse {
	out := decisionResponse{
		Distance:  d.Distance,
		Scoped:    d.Scoped,
		Widened:   d.Widened,
		ScopeSize: d.ScopeSize,
	}
	if d.Chapter != nil {
		out.Chapter = d.Chapter.ID
		out.ChapterTitle = d.Chapter.Title
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
