package journal

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/replog/internal/models"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleExercises() []models.ParsedExercise {
	return []models.ParsedExercise{{
		Name:      "Squats",
		Category:  models.CategoryWeighted,
		Equipment: models.EquipmentBarbell,
		Sets:      []models.ParsedSet{{SetNumber: 1, Reps: 5, Weight: 225, Unit: models.UnitPounds}},
	}}
}

func TestAddAndPending(t *testing.T) {
	j := openTestJournal(t)
	loggedAt := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	added, err := j.Add("squats 5x5 at 225", loggedAt, sampleExercises())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Fatal("first Add = false, want true")
	}

	pending, err := j.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}
	e := pending[0]
	if e.RawText != "squats 5x5 at 225" {
		t.Errorf("raw text = %q", e.RawText)
	}
	if len(e.Exercises) != 1 || e.Exercises[0].Name != "Squats" {
		t.Errorf("exercises = %+v, want Squats", e.Exercises)
	}
	if e.Pushed {
		t.Error("new entry marked pushed")
	}
}

func TestAddDedup(t *testing.T) {
	j := openTestJournal(t)
	loggedAt := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	if _, err := j.Add("bench 3x10", loggedAt, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	added, err := j.Add("bench 3x10", loggedAt.Add(2*time.Hour), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added {
		t.Error("same text on same day added twice")
	}

	// Same text on another day is a new entry.
	added, err = j.Add("bench 3x10", loggedAt.AddDate(0, 0, 1), nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("same text on next day not added")
	}
}

func TestMarkPushed(t *testing.T) {
	j := openTestJournal(t)
	loggedAt := time.Now().UTC()

	if _, err := j.Add("deadlift 1x5 at 315", loggedAt, sampleExercises()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	pending, err := j.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if err := j.MarkPushed(pending[0].ID); err != nil {
		t.Fatalf("MarkPushed: %v", err)
	}

	pending, err = j.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after push = %d, want 0", len(pending))
	}
}

func TestPushSendsPendingEntries(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	texts := []string{"bench 3x10", "squats 5x5", "deadlift 1x5"}
	for i, text := range texts {
		if _, err := j.Add(text, base.AddDate(0, 0, i), nil); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	var received []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/log/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("api key = %q", got)
		}
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		received = append(received, payload.Text)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pushed, err := Push(j, NewClient(srv.URL, "test-key"), slog.Default())
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if pushed != 3 {
		t.Errorf("pushed = %d, want 3", pushed)
	}
	// Oldest first.
	for i, text := range texts {
		if received[i] != text {
			t.Errorf("received[%d] = %q, want %q", i, received[i], text)
		}
	}

	pending, err := j.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after push = %d, want 0", len(pending))
	}
}

func TestPushStopsOnServerError(t *testing.T) {
	j := openTestJournal(t)
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	if _, err := j.Add("bench 3x10", base, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	pushed, err := Push(j, NewClient(srv.URL, "wrong-key"), slog.Default())
	if err == nil {
		t.Fatal("expected error from rejected push")
	}
	if pushed != 0 {
		t.Errorf("pushed = %d, want 0", pushed)
	}

	pending, _ := j.Pending()
	if len(pending) != 1 {
		t.Errorf("pending = %d, want 1 (entry kept)", len(pending))
	}
}
