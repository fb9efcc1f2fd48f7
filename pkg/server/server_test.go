package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mhartvig/colstack/pkg/pipeline"
	"github.com/mhartvig/colstack/pkg/store"
)

func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(Config{
		Runner: pipeline.NewRunner(nil, nil, logger),
		Store:  st,
		Logger: logger,
	})
	return s, st
}

const solveBody = `{
	"items": [
		{"width": 50, "height": 10},
		{"width": 50, "height": 20},
		{"width": 40, "height": 25}
	],
	"spacing": {"row": 4, "column": 8},
	"column_limit": 2,
	"method": "dp"
}`

func postSolve(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestSolve(t *testing.T) {
	s, _ := testServer(t)

	w := postSolve(t, s, solveBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp solveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID == "" {
		t.Error("response has no ID")
	}
	if resp.Result.MinHeight != 34 {
		t.Errorf("MinHeight = %v, want 34", resp.Result.MinHeight)
	}
	if len(resp.Layouts) != 3 {
		t.Errorf("len(Layouts) = %d, want 3", len(resp.Layouts))
	}
	if !strings.HasPrefix(resp.SVG, "<svg") {
		t.Error("response has no SVG artifact")
	}
	if got := w.Header().Get("X-Request-Id"); got == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestSolveInvalid(t *testing.T) {
	s, _ := testServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"malformed json", `{"items": [`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no items", `{"column_limit": 2}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad method", `{"items": [{"width":1,"height":1}], "method": "annealing"}`, http.StatusBadRequest, "INVALID_METHOD"},
		{"negative item", `{"items": [{"width":-1,"height":1}]}`, http.StatusBadRequest, "INVALID_ITEM"},
		{"bad column limit", `{"items": [{"width":1,"height":1}], "column_limit": -3}`, http.StatusBadRequest, "INVALID_CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postSolve(t, s, tt.body)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestLayoutLifecycle(t *testing.T) {
	s, _ := testServer(t)

	w := postSolve(t, s, solveBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("solve status = %d", w.Code)
	}
	var created solveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	t.Run("get", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts/"+created.ID, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var rec store.Layout
		if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
			t.Fatal(err)
		}
		if rec.Document.Result.MinHeight != 34 {
			t.Errorf("MinHeight = %v, want 34", rec.Document.Result.MinHeight)
		}
	})

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts", nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var recs []store.Layout
		if err := json.Unmarshal(w.Body.Bytes(), &recs); err != nil {
			t.Fatal(err)
		}
		if len(recs) != 1 {
			t.Errorf("len = %d, want 1", len(recs))
		}
	})

	t.Run("bad list limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts?limit=x", nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/layouts/"+created.ID, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", w.Code)
		}

		req = httptest.NewRequest(http.MethodGet, "/api/v1/layouts/"+created.ID, nil)
		w = httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", w.Code)
		}
	})
}

func TestGetLayoutNotFound(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/layouts/nonexistent", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "LAYOUT_NOT_FOUND" {
		t.Errorf("code = %q, want LAYOUT_NOT_FOUND", resp.Code)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	s, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "caller-id")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "caller-id" {
		t.Errorf("X-Request-Id = %q, want caller-id", got)
	}
}

func TestBodyTooLarge(t *testing.T) {
	s, _ := testServer(t)

	var buf bytes.Buffer
	buf.WriteString(`{"items": [`)
	for buf.Len() < maxBodySize+1024 {
		buf.WriteString(`{"width": 1, "height": 1},`)
	}
	buf.WriteString(`{"width": 1, "height": 1}]}`)

	w := postSolve(t, s, buf.String())
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
