package llm

import (
	"context"
	"log/slog"

	"github.com/claude/replog/internal/models"
	"github.com/claude/replog/internal/parse"
)

// Source labels recorded on stored workouts.
const (
	SourceEngine = "engine"
	SourceLLM    = "llm"
)

// Fallback tries the remote model first when one is configured, and falls
// back to the deterministic engine on error, timeout, or an empty remote
// result. With a nil client the engine handles everything.
type Fallback struct {
	engine *parse.Parser
	client *Client
	log    *slog.Logger
}

// NewFallback pairs the engine with an optional remote client.
func NewFallback(engine *parse.Parser, client *Client, log *slog.Logger) *Fallback {
	return &Fallback{engine: engine, client: client, log: log}
}

// ParseText parses the text and reports which parser produced the result.
func (f *Fallback) ParseText(ctx context.Context, text string) ([]models.ParsedExercise, string, error) {
	if f.client != nil {
		remote, err := f.client.Parse(ctx, text)
		switch {
		case err != nil:
			f.log.Warn("remote parse failed, falling back to engine", "error", err)
		case len(remote) > 0:
			return remote, SourceLLM, nil
		}
	}

	return f.engine.Parse(text), SourceEngine, nil
}
