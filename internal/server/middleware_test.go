package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveIdentity(t *testing.T, mw func(http.Handler) http.Handler) (int, UserInfo) {
	t.Helper()
	var gotID int
	var gotInfo UserInfo
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = userIDFromContext(r)
		gotInfo = userInfoFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workouts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	return gotID, gotInfo
}

// An accepting resolver stamps its user onto the request context.
func TestIdentityResolverAccepts(t *testing.T) {
	resolve := func(*http.Request) (int, UserInfo, bool) {
		return 7, UserInfo{Login: "carol@ts.net", DisplayName: "Carol"}, true
	}

	id, info := serveIdentity(t, Identity(resolve))
	if id != 7 {
		t.Errorf("user id = %d, want 7", id)
	}
	if info.Login != "carol@ts.net" || info.DisplayName != "Carol" {
		t.Errorf("info = %+v, want carol@ts.net / Carol", info)
	}
}

// A rejecting resolver leaves the request on the default user rather than
// failing it; access control is the listener's job, not this middleware's.
func TestIdentityResolverRejects(t *testing.T) {
	resolve := func(*http.Request) (int, UserInfo, bool) {
		return 0, UserInfo{}, false
	}

	id, info := serveIdentity(t, Identity(resolve))
	if id != 1 {
		t.Errorf("user id = %d, want default 1", id)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want local fallback", info.Login)
	}
}

// DevIdentity is the no-tailnet mode: everyone is user 1.
func TestDevIdentity(t *testing.T) {
	id, info := serveIdentity(t, DevIdentity)
	if id != 1 {
		t.Errorf("user id = %d, want 1", id)
	}
	if info.Login != "local" || info.DisplayName != "Local Dev User" {
		t.Errorf("info = %+v, want local dev user", info)
	}
}

func TestUserIDFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := userIDFromContext(req); id != 1 {
		t.Errorf("bare request user id = %d, want 1", id)
	}

	req = req.WithContext(context.WithValue(req.Context(), userIDKey, 42))
	if id := userIDFromContext(req); id != 42 {
		t.Errorf("user id = %d, want 42", id)
	}
}

func TestUserInfoFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if info := userInfoFromContext(req); info.Login != "local" {
		t.Errorf("bare request login = %q, want local", info.Login)
	}

	want := UserInfo{Login: "alice@example.com", DisplayName: "Alice"}
	req = req.WithContext(context.WithValue(req.Context(), userInfoKey, want))
	if info := userInfoFromContext(req); info != want {
		t.Errorf("info = %+v, want %+v", info, want)
	}
}

func TestRequestLoggingPassesStatusThrough(t *testing.T) {
	handler := RequestLogging(slog.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/log/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-API-Key" {
		t.Errorf("allow-headers = %q", got)
	}
}

// OPTIONS terminates at the CORS middleware; the next handler never runs.
func TestCORSPreflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler called for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
