package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/replog/internal/catalog"
	"github.com/claude/replog/internal/parse"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, cat *catalog.Catalog, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepLog workout log server. Parse natural-language workout descriptions into structured sets, normalize exercise names, and query logged training data. All data is scoped to the authenticated user."),
	)

	h := &handlers{
		ds:     ds,
		cat:    cat,
		parser: parse.New(cat, parse.Options{}),
		log:    log,
	}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolParseWorkout, Handler: h.parseWorkout},
		server.ServerTool{Tool: toolNormalizeExercise, Handler: h.normalizeExercise},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetExerciseSets, Handler: h.getExerciseSets},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetStats, Handler: h.getStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	cat    *catalog.Catalog
	parser *parse.Parser
	log    *slog.Logger
}

// --- Resource definitions ---

var resExerciseCatalog = mcp.NewResource(
	"replog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All known exercises with their aliases resolved: canonical name, category, default equipment, and primary muscles"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"replog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workout logs from the last 14 days"),
	mcp.WithMIMEType("application/json"),
)
