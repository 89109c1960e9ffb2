package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/models"
	"github.com/claude/replog/internal/parse"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestDefaultTimeRange verifies time range defaults (last 30 days) and parsing.
func TestDefaultTimeRange(t *testing.T) {
	// Both empty → defaults to last 30 days
	start, end, err := defaultTimeRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	diff := end.Sub(start)
	if diff.Hours() < 719 || diff.Hours() > 721 { // ~720 hours = 30 days
		t.Errorf("default range = %.0f hours, want ~720", diff.Hours())
	}

	// Explicit dates
	start, end, err = defaultTimeRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2024 || start.Month() != 1 || start.Day() != 1 {
		t.Errorf("start = %v, want 2024-01-01", start)
	}
	if end.Year() != 2024 || end.Month() != 1 || end.Day() != 31 {
		t.Errorf("end = %v, want 2024-01-31", end)
	}

	// RFC3339
	start, _, err = defaultTimeRange("2024-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Errorf("start = %v, want 10:30", start)
	}

	// Invalid
	_, _, err = defaultTimeRange("not-a-date", "")
	if err == nil {
		t.Error("expected error for invalid date")
	}
}

func testHandlers(t *testing.T) *handlers {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return &handlers{
		cat:    cat,
		parser: parse.New(cat, parse.Options{}),
		log:    slog.Default(),
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is not text: %+v", res.Content[0])
	}
	return text.Text
}

// TestParseWorkoutTool verifies the parse_workout tool runs the engine and
// serializes its output.
func TestParseWorkoutTool(t *testing.T) {
	h := testHandlers(t)
	res, err := h.parseWorkout(context.Background(), callRequest(map[string]any{
		"text": "benched 2 plates for 5 reps",
	}))
	if err != nil {
		t.Fatalf("parseWorkout: %v", err)
	}

	var out struct {
		Exercises []models.ParsedExercise `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Exercises) != 1 || out.Exercises[0].Name != "Bench Press" {
		t.Fatalf("exercises = %+v, want Bench Press", out.Exercises)
	}
	set := out.Exercises[0].Sets[0]
	if set.Weight != 225 || set.Reps != 5 {
		t.Errorf("set = %d reps at %v, want 5 at 225", set.Reps, set.Weight)
	}
}

// TestParseWorkoutToolMissingText verifies the required-parameter error path.
func TestParseWorkoutToolMissingText(t *testing.T) {
	h := testHandlers(t)
	res, err := h.parseWorkout(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("parseWorkout: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for missing text")
	}
}

// TestGetWorkoutToolRejectsBadID verifies UUID validation before any query.
func TestGetWorkoutToolRejectsBadID(t *testing.T) {
	h := testHandlers(t)
	res, err := h.getWorkout(context.Background(), callRequest(map[string]any{
		"workout_id": "not-a-uuid",
	}))
	if err != nil {
		t.Fatalf("getWorkout: %v", err)
	}
	if !res.IsError {
		t.Error("expected error result for malformed workout_id")
	}
}

// TestNormalizeExerciseTool verifies fuzzy normalization through the tool.
func TestNormalizeExerciseTool(t *testing.T) {
	h := testHandlers(t)
	res, err := h.normalizeExercise(context.Background(), callRequest(map[string]any{
		"name": "dedlift",
	}))
	if err != nil {
		t.Fatalf("normalizeExercise: %v", err)
	}

	var out models.NormalizationResult
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CanonicalName != "Deadlift" {
		t.Errorf("canonical = %q, want Deadlift", out.CanonicalName)
	}
	if out.Confidence != models.ConfidenceFuzzy {
		t.Errorf("confidence = %q, want fuzzy", out.Confidence)
	}
}

// TestListExercisesTool verifies the catalog listing tool.
func TestListExercisesTool(t *testing.T) {
	h := testHandlers(t)
	res, err := h.listExercises(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("listExercises: %v", err)
	}

	var out []catalogEntry
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("no exercises listed")
	}
	for _, e := range out {
		if e.Name == "" || e.Category == "" {
			t.Errorf("incomplete entry: %+v", e)
		}
	}
}
