package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

type catalogEntry struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Equipment string   `json:"equipment"`
	Muscles   []string `json:"muscles"`
}

func (h *handlers) catalogEntries() []catalogEntry {
	names := h.cat.Names()
	out := make([]catalogEntry, 0, len(names))
	for _, name := range names {
		e, _ := h.cat.Lookup(name)
		out = append(out, catalogEntry{
			Name:      e.Name,
			Category:  string(e.Category),
			Equipment: string(e.Equipment),
			Muscles:   e.Muscles,
		})
	}
	return out
}

func (h *handlers) exerciseCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.catalogEntries())
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	end := time.Now()
	start := end.AddDate(0, 0, -14)

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workouts)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
