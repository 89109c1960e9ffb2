// Package logtext turns free-form workout descriptions into stored rows. It
// runs the configured parsing engine over the input and persists one workout
// row plus one exercise_sets row per parsed set.
package logtext

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/claude/replog/internal/ingest"
	"github.com/claude/replog/internal/models"
	"github.com/claude/replog/internal/storage"
)

// Engine parses workout text into exercises. The second return value names
// the engine that produced the result ("engine" or "llm").
type Engine interface {
	ParseText(ctx context.Context, text string) ([]models.ParsedExercise, string, error)
}

// Store is the subset of storage.DB the provider writes through.
type Store interface {
	InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error)
	InsertExerciseSets(ctx context.Context, rows []models.ExerciseSetRow) (int64, error)
}

// Provider processes natural-language workout logs.
type Provider struct {
	store  Store
	engine Engine
	log    *slog.Logger
}

// NewProvider creates a new workout-text ingest provider.
func NewProvider(store Store, engine Engine, log *slog.Logger) *Provider {
	return &Provider{store: store, engine: engine, log: log}
}

var _ Store = (*storage.DB)(nil)

// Ingest parses the text and stores the workout with its sets. A text that
// parses to no exercises is not an error; the result carries a message and
// nothing is stored.
func (p *Provider) Ingest(ctx context.Context, text string, loggedAt time.Time, userID int) (*ingest.Result, error) {
	exercises, source, err := p.engine.ParseText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parsing workout text: %w", err)
	}

	result := &ingest.Result{
		Source:          source,
		ExercisesParsed: len(exercises),
		Exercises:       exercises,
	}
	if len(exercises) == 0 {
		result.Message = "no exercises recognized"
		return result, nil
	}

	workout := models.WorkoutRow{
		ID:       uuid.New(),
		UserID:   userID,
		LoggedAt: loggedAt,
		RawText:  text,
		Source:   source,
	}

	rows := FlattenSets(workout, exercises)
	result.SetsReceived = len(rows)

	inserted, err := p.store.InsertWorkout(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("inserting workout: %w", err)
	}
	result.WorkoutInserted = inserted
	result.WorkoutID = workout.ID.String()

	setsInserted, err := p.store.InsertExerciseSets(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("inserting sets: %w", err)
	}
	result.SetsInserted = setsInserted
	result.SetsSkipped = int64(len(rows)) - setsInserted

	p.log.Info("ingested workout log",
		"workout_id", workout.ID,
		"user_id", userID,
		"exercises", len(exercises),
		"sets", setsInserted,
		"source", source)

	return result, nil
}

// FlattenSets expands parsed exercises into insertable set rows, preserving
// exercise order as 1-based positions.
func FlattenSets(workout models.WorkoutRow, exercises []models.ParsedExercise) []models.ExerciseSetRow {
	var rows []models.ExerciseSetRow
	for i, ex := range exercises {
		for _, s := range ex.Sets {
			rows = append(rows, models.ExerciseSetRow{
				WorkoutID:     workout.ID,
				UserID:        workout.UserID,
				ExerciseOrder: i + 1,
				ExerciseName:  ex.Name,
				Category:      ex.Category,
				Equipment:     ex.Equipment,
				SetNumber:     s.SetNumber,
				Reps:          s.Reps,
				Weight:        s.Weight,
				Unit:          s.Unit,
				DurationSec:   s.DurationSeconds,
				SetType:       s.SetType,
				RPE:           s.RPE,
				RIR:           s.RIR,
				RestSec:       s.RestSeconds,
				Tempo:         s.Tempo,
				Grip:          s.Grip,
				Stance:        s.Stance,
			})
		}
	}
	return rows
}
