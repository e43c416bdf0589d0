package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/errors"
	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/layout"
	"github.com/flowpad/flowpad/pkg/parse"
	"github.com/flowpad/flowpad/pkg/render"
	"github.com/flowpad/flowpad/pkg/share"
	"github.com/flowpad/flowpad/pkg/store"
)

// noticeInsufficient is returned with an empty state when the text had no
// recognizable structure. Not an error: the client shows it to the user.
const noticeInsufficient = "add at least two lines, or connect labels with ->"

type parseRequest struct {
	Text      string            `json:"text"`
	Direction diagram.Direction `json:"direction,omitempty"`
	Theme     string            `json:"themeName,omitempty"`
}

type stateResponse struct {
	*diagram.State
	Notice string `json:"notice,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	result := parse.Parse(req.Text)
	st := diagram.FromGraph(result.Nodes, result.Edges, req.Direction, req.Theme)
	if result.Empty() {
		s.respondJSON(w, http.StatusOK, stateResponse{State: st, Notice: noticeInsufficient})
		return
	}
	if err := layout.AutoLayout(st, s.engine); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "layout"))
		return
	}
	s.respondJSON(w, http.StatusOK, stateResponse{State: st})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	st, err := decodeState(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := layout.AutoLayout(st, s.engine); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "layout"))
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	st, err := decodeState(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := uuid.NewString()
	if err := s.store.Save(r.Context(), id, st); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "save diagram"))
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadDiagram(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handlePutDiagram(w http.ResponseWriter, r *http.Request) {
	st, err := decodeState(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.store.Save(r.Context(), id, st); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "save diagram"))
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete diagram"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportDiagram(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadDiagram(r)
	if err != nil {
		s.respondError(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="diagram.json"`)
		if err := export.Write(st, w); err != nil {
			s.logger.Error("export json", "err", err)
		}
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(render.SVG(st))
	case "png":
		png, err := render.ToPNG(render.SVG(st), 2.0)
		if err != nil {
			s.respondError(w, errors.Wrap(errors.ErrCodeUnsupported, err, "rasterize"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	default:
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "unknown export format %q", format))
	}
}

func (s *Server) handleShareEncode(w http.ResponseWriter, r *http.Request) {
	st, err := decodeState(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	token, err := share.Encode(st)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleShareDecode never fails on malformed tokens: the client falls
// back to autosave or defaults, matching how the canvas treats a bad
// share link in the URL.
func (s *Server) handleShareDecode(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	st, err := share.Decode(token)
	if err != nil {
		s.logger.Debug("ignoring malformed share token", "err", err)
		s.respondJSON(w, http.StatusOK, diagram.NewState(diagram.TopToBottom, ""))
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleAutosaveGet(w http.ResponseWriter, r *http.Request) {
	st, err := s.store.Load(r.Context(), store.AutosaveKey)
	if err != nil {
		if err == store.ErrNotFound {
			s.respondError(w, errors.New(errors.ErrCodeNotFound, "no autosave"))
			return
		}
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "load autosave"))
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleAutosavePut(w http.ResponseWriter, r *http.Request) {
	st, err := decodeState(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), store.AutosaveKey, st); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "save autosave"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) loadDiagram(r *http.Request) (*diagram.State, error) {
	id := chi.URLParam(r, "id")
	st, err := s.store.Load(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "diagram %s not found", id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load diagram")
	}
	return st, nil
}

// decodeState reads a diagram state from the request body and re-seeds
// its ID counters so follow-up edits get fresh IDs.
func decodeState(r *http.Request) (*diagram.State, error) {
	var raw diagram.State
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode diagram state")
	}
	st := diagram.NewState(raw.Direction, raw.Theme)
	st.Replace(&raw)
	return st, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case code == errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	case strings.HasPrefix(string(code), "INVALID"):
		status = http.StatusBadRequest
	}
	s.respondJSON(w, status, errorResponse{Code: string(code), Message: errors.UserMessage(err)})
}
