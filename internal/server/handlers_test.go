package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/llm"
	"github.com/claude/replog/internal/models"
	"github.com/claude/replog/internal/parse"
)

// newTestServer builds a Server with the parse stack wired but no database.
// Handlers that only touch the engine or catalog are testable through it.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	parser := parse.New(cat, parse.Options{})
	return &Server{
		engine: llm.NewFallback(parser, nil, slog.Default()),
		parser: parser,
		cat:    cat,
		log:    slog.Default(),
	}
}

// TestHandleParse verifies the preview endpoint returns parsed exercises
// without touching storage.
func TestHandleParse(t *testing.T) {
	s := newTestServer(t)
	body := strings.NewReader(`{"text": "bench press 3x10 at 185"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", body)
	rec := httptest.NewRecorder()

	s.handleParse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Exercises []models.ParsedExercise `json:"exercises"`
		Source    string                  `json:"source"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Source != "engine" {
		t.Errorf("source = %q, want engine", resp.Source)
	}
	if len(resp.Exercises) != 1 || resp.Exercises[0].Name != "Bench Press" {
		t.Errorf("exercises = %+v, want Bench Press", resp.Exercises)
	}
	if len(resp.Exercises[0].Sets) != 3 {
		t.Errorf("sets = %d, want 3", len(resp.Exercises[0].Sets))
	}
}

// TestHandleParseBadRequest verifies malformed or empty input is rejected.
func TestHandleParseBadRequest(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{"not json", `{"text": ""}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.handleParse(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestHandleNormalize verifies exact, fuzzy, and unrecognized resolutions.
func TestHandleNormalize(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name           string
		wantConfidence models.Confidence
		wantCanonical  string
	}{
		{"bench", models.ConfidenceExact, "Bench Press"},
		{"bentch press", models.ConfidenceFuzzy, "Bench Press"},
		{"underwater basket weaving", models.ConfidenceUnrecognized, ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/normalize?name="+strings.ReplaceAll(tt.name, " ", "+"), nil)
		rec := httptest.NewRecorder()
		s.handleNormalize(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("normalize(%q) status = %d, want 200", tt.name, rec.Code)
		}
		var res models.NormalizationResult
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if res.Confidence != tt.wantConfidence {
			t.Errorf("normalize(%q) confidence = %q, want %q", tt.name, res.Confidence, tt.wantConfidence)
		}
		if res.CanonicalName != tt.wantCanonical {
			t.Errorf("normalize(%q) canonical = %q, want %q", tt.name, res.CanonicalName, tt.wantCanonical)
		}
		if tt.wantConfidence == models.ConfidenceUnrecognized && len(res.Suggestions) == 0 {
			t.Errorf("normalize(%q) returned no suggestions", tt.name)
		}
	}
}

// TestHandleNormalizeMissingName verifies the name parameter is required.
func TestHandleNormalizeMissingName(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises/normalize", nil)
	rec := httptest.NewRecorder()
	s.handleNormalize(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleListExercises verifies the catalog listing endpoint.
func TestHandleListExercises(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exercises", nil)
	rec := httptest.NewRecorder()
	s.handleListExercises(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("no exercises listed")
	}
	for _, e := range out {
		if e["name"] == "" || e["category"] == "" {
			t.Errorf("incomplete entry: %v", e)
		}
	}
}

// TestHandleLogBadRequest verifies request validation before any storage call.
func TestHandleLogBadRequest(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{"{", `{"text": ""}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/log", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.handleLog(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
	if info.DisplayName != "Local Dev User" {
		t.Errorf("display_name = %q, want %q", info.DisplayName, "Local Dev User")
	}
}

// TestHandleMeTailscaleUser verifies the /api/v1/me endpoint returns the
// resolved user identity when set in context.
func TestHandleMeTailscaleUser(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	ctx := context.WithValue(req.Context(), userInfoKey, UserInfo{Login: "alice@example.com", DisplayName: "Alice"})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	s.handleMe(rec, req)

	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "alice@example.com" {
		t.Errorf("login = %q, want %q", info.Login, "alice@example.com")
	}
}

// TestAPIKeyAuthOnLogRoute verifies the log route rejects requests without a
// valid key while read routes stay open.
func TestAPIKeyAuthOnLogRoute(t *testing.T) {
	s := newTestServer(t)
	s.apiKey = "secret"
	s.router = chi.NewRouter()
	s.routes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/log/", strings.NewReader(`{"text":"bench 3x10"}`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/log/", strings.NewReader(`{"text":"bench 3x10"}`))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(`{"text":"bench 3x10"}`))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("parse without key: status = %d, want 200", rec.Code)
	}
}
