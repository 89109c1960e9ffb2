package ingest

import "github.com/claude/replog/internal/models"

// Result holds the outcome of an ingest operation.
type Result struct {
	WorkoutID        string                  `json:"workout_id,omitempty"`
	WorkoutInserted  bool                    `json:"workout_inserted"`
	ExercisesParsed  int                     `json:"exercises_parsed"`
	SetsReceived     int                     `json:"sets_received"`
	SetsInserted     int64                   `json:"sets_inserted"`
	SetsSkipped      int64                   `json:"sets_skipped"`
	Source           string                  `json:"source"` // "engine" or "llm"
	Exercises        []models.ParsedExercise `json:"exercises,omitempty"`
	Message          string                  `json:"message,omitempty"`
}
