package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/replog/internal/models"
	"github.com/google/uuid"
)

// InsertWorkout inserts a workout row. Returns true if inserted, false if duplicate.
func (db *DB) InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, logged_at, raw_text, source)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.UserID, row.LoggedAt, row.RawText, row.Source)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// WorkoutDetail is a workout together with all of its parsed sets.
type WorkoutDetail struct {
	models.WorkoutRow
	Sets []models.ExerciseSetRow `json:"sets"`
}

// QueryWorkouts retrieves workouts in a time range, newest first.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, logged_at, raw_text, source
		 FROM workouts
		 WHERE logged_at >= $1 AND logged_at < $2 AND user_id = $3
		 ORDER BY logged_at DESC`,
		start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutRow
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.UserID, &w.LoggedAt, &w.RawText, &w.Source); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

// GetWorkout retrieves a single workout by ID with all of its sets.
func (db *DB) GetWorkout(ctx context.Context, workoutID uuid.UUID, userID int) (*WorkoutDetail, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, logged_at, raw_text, source
		 FROM workouts
		 WHERE id = $1 AND user_id = $2`,
		workoutID, userID)

	var w models.WorkoutRow
	if err := row.Scan(&w.ID, &w.UserID, &w.LoggedAt, &w.RawText, &w.Source); err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}

	detail := &WorkoutDetail{WorkoutRow: w}

	setRows, err := db.Pool.Query(ctx,
		`SELECT workout_id, user_id, exercise_order, exercise_name, category, equipment,
		 set_number, reps, weight, unit, duration_sec, set_type, rpe, rir, rest_sec,
		 tempo, grip, stance
		 FROM exercise_sets
		 WHERE workout_id = $1 AND user_id = $2
		 ORDER BY exercise_order ASC, set_number ASC`,
		workoutID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s models.ExerciseSetRow
		if err := setRows.Scan(&s.WorkoutID, &s.UserID, &s.ExerciseOrder, &s.ExerciseName,
			&s.Category, &s.Equipment, &s.SetNumber, &s.Reps, &s.Weight, &s.Unit,
			&s.DurationSec, &s.SetType, &s.RPE, &s.RIR, &s.RestSec,
			&s.Tempo, &s.Grip, &s.Stance); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		detail.Sets = append(detail.Sets, s)
	}

	return detail, setRows.Err()
}
