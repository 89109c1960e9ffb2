package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutRow is a row ready for insertion into the workouts table. One row per
// logged utterance; the parsed exercises hang off it in exercise_sets.
type WorkoutRow struct {
	ID       uuid.UUID `json:"id"`
	UserID   int       `json:"user_id"`
	LoggedAt time.Time `json:"logged_at"`
	RawText  string    `json:"raw_text"`
	Source   string    `json:"source"` // "engine" or "llm"
}

// ExerciseSetRow is a row ready for insertion into the exercise_sets table —
// one ParsedSet flattened together with its exercise's identity.
type ExerciseSetRow struct {
	WorkoutID     uuid.UUID `json:"workout_id"`
	UserID        int       `json:"user_id"`
	ExerciseOrder int       `json:"exercise_order"`
	ExerciseName  string    `json:"exercise_name"`
	Category      Category  `json:"category"`
	Equipment     Equipment `json:"equipment"`
	SetNumber     int       `json:"set_number"`
	Reps          int       `json:"reps"`
	Weight        float64   `json:"weight"`
	Unit          Unit      `json:"unit"`
	DurationSec   int       `json:"duration_seconds"`
	SetType       SetType   `json:"set_type"`
	RPE           float64   `json:"rpe"`
	RIR           *int      `json:"rir,omitempty"`
	RestSec       int       `json:"rest_seconds"`
	Tempo         string    `json:"tempo,omitempty"`
	Grip          Grip      `json:"grip,omitempty"`
	Stance        Stance    `json:"stance,omitempty"`
}
