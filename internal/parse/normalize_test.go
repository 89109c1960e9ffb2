package parse

import (
	"testing"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/models"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return New(cat, opts)
}

func TestNormalizeExactAlias(t *testing.T) {
	p := newTestParser(t, Options{})
	res := p.Normalize("bench")
	if res.Confidence != models.ConfidenceExact {
		t.Errorf("confidence = %q, want exact", res.Confidence)
	}
	if res.CanonicalName != "Bench Press" {
		t.Errorf("canonical = %q, want Bench Press", res.CanonicalName)
	}
}

func TestNormalizeCanonicalName(t *testing.T) {
	p := newTestParser(t, Options{})
	res := p.Normalize("Bench Press")
	if res.Confidence != models.ConfidenceExact {
		t.Errorf("confidence = %q, want exact", res.Confidence)
	}
	if res.CanonicalName != "Bench Press" {
		t.Errorf("canonical = %q, want Bench Press", res.CanonicalName)
	}
}

func TestNormalizeFuzzy(t *testing.T) {
	p := newTestParser(t, Options{})
	tests := []struct {
		in   string
		want string
	}{
		{"bentch press", "Bench Press"},
		{"squatts", "Squats"},
		{"dedlift", "Deadlift"},
	}
	for _, tt := range tests {
		res := p.Normalize(tt.in)
		if res.Confidence != models.ConfidenceFuzzy {
			t.Errorf("Normalize(%q) confidence = %q, want fuzzy", tt.in, res.Confidence)
		}
		if res.CanonicalName != tt.want {
			t.Errorf("Normalize(%q) canonical = %q, want %q", tt.in, res.CanonicalName, tt.want)
		}
	}
}

func TestNormalizeUnrecognized(t *testing.T) {
	p := newTestParser(t, Options{})
	res := p.Normalize("xyz")
	if res.Confidence != models.ConfidenceUnrecognized {
		t.Fatalf("confidence = %q, want unrecognized", res.Confidence)
	}
	if res.CanonicalName != "" {
		t.Errorf("canonical = %q, want empty", res.CanonicalName)
	}
	if len(res.Suggestions) == 0 || len(res.Suggestions) > 3 {
		t.Errorf("suggestions = %v, want 1-3 entries", res.Suggestions)
	}
	if res.OriginalInput != "xyz" {
		t.Errorf("original input = %q, want xyz", res.OriginalInput)
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"bench", "bench", 0},
		{"kitten", "sitting", 3},
		{"bentch press", "bench press", 1},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
