package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mhartvig/colstack/pkg/column"
	"github.com/mhartvig/colstack/pkg/errors"
	"github.com/mhartvig/colstack/pkg/pipeline"
	"github.com/mhartvig/colstack/pkg/render"
	"github.com/mhartvig/colstack/pkg/store"
)

// maxBodySize bounds solve request bodies. Item manifests are tiny;
// anything near this limit is malformed or hostile.
const maxBodySize = 1 << 20

// solveRequest is the POST /api/v1/solve body. Items are inline; the
// service never reads manifest files on behalf of callers.
type solveRequest struct {
	Items       []column.Item   `json:"items"`
	Spacing     *column.Spacing `json:"spacing,omitempty"`
	ColumnLimit int             `json:"column_limit,omitempty"`
	WidthLimit  float64         `json:"width_limit,omitempty"`
	Method      string          `json:"method,omitempty"`
	Formats     []string        `json:"formats,omitempty"`
	Refresh     bool            `json:"refresh,omitempty"`
}

// solveResponse is the POST /api/v1/solve reply.
type solveResponse struct {
	ID         string              `json:"id"`
	Method     string              `json:"method"`
	Result     column.Result       `json:"result"`
	Layouts    []column.ItemLayout `json:"layouts"`
	Iterations int                 `json:"iterations,omitempty"`
	SVG        string              `json:"svg,omitempty"`
	Cache      pipeline.CacheInfo  `json:"cache"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request"))
		return
	}
	if len(req.Items) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "items are required"))
		return
	}

	opts := pipeline.Options{
		Items:       req.Items,
		Spacing:     req.Spacing,
		ColumnLimit: req.ColumnLimit,
		WidthLimit:  req.WidthLimit,
		Method:      req.Method,
		Formats:     req.Formats,
		Refresh:     req.Refresh,
		Logger:      s.cfg.Logger,
	}

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewLayout(render.Document{
		Items:       result.Items,
		Spacing:     result.Spacing,
		ColumnLimit: result.ColumnLimit,
		WidthLimit:  req.WidthLimit,
		Method:      result.Method.String(),
		Result:      result.Solve,
		Layouts:     result.Layouts,
	})
	rec.InputHash = result.InputHash
	if err := s.cfg.Store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}

	resp := solveResponse{
		ID:         rec.ID,
		Method:     result.Method.String(),
		Result:     result.Solve,
		Layouts:    result.Layouts,
		Iterations: result.Iterations,
		SVG:        string(result.Artifacts[pipeline.FormatSVG]),
		Cache:      result.CacheInfo,
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.cfg.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Layout{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// statusFor maps error codes to HTTP statuses. Unknown codes (including
// wrapped non-Error values) map to 500.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidItem,
		errors.ErrCodeInvalidMethod,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidManifest,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeLayoutNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotSolved:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
