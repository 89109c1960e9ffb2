package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/replog/internal/models"
)

// InsertExerciseSets batch-inserts parsed set rows. Returns count inserted.
func (db *DB) InsertExerciseSets(ctx context.Context, rows []models.ExerciseSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO exercise_sets (workout_id, user_id, exercise_order, exercise_name,
		category, equipment, set_number, reps, weight, unit, duration_sec, set_type,
		rpe, rir, rest_sec, tempo, grip, stance) VALUES `
	args := make([]any, 0, len(rows)*18)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 18
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9,
			base+10, base+11, base+12, base+13, base+14, base+15, base+16, base+17, base+18,
		))
		args = append(args, r.WorkoutID, r.UserID, r.ExerciseOrder, r.ExerciseName,
			r.Category, r.Equipment, r.SetNumber, r.Reps, r.Weight, r.Unit,
			r.DurationSec, r.SetType, r.RPE, r.RIR, r.RestSec, r.Tempo, r.Grip, r.Stance)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryExerciseSets retrieves sets for one exercise in a time range, newest
// session first, set order preserved within a session.
func (db *DB) QueryExerciseSets(ctx context.Context, exerciseName string, start, end time.Time, userID int) ([]models.ExerciseSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT s.workout_id, s.user_id, s.exercise_order, s.exercise_name, s.category,
		 s.equipment, s.set_number, s.reps, s.weight, s.unit, s.duration_sec, s.set_type,
		 s.rpe, s.rir, s.rest_sec, s.tempo, s.grip, s.stance
		 FROM exercise_sets s
		 JOIN workouts w ON w.id = s.workout_id
		 WHERE s.exercise_name = $1 AND w.logged_at >= $2 AND w.logged_at < $3 AND s.user_id = $4
		 ORDER BY w.logged_at DESC, s.exercise_order ASC, s.set_number ASC`,
		exerciseName, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise sets: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseSetRow
	for rows.Next() {
		var s models.ExerciseSetRow
		if err := rows.Scan(&s.WorkoutID, &s.UserID, &s.ExerciseOrder, &s.ExerciseName,
			&s.Category, &s.Equipment, &s.SetNumber, &s.Reps, &s.Weight, &s.Unit,
			&s.DurationSec, &s.SetType, &s.RPE, &s.RIR, &s.RestSec,
			&s.Tempo, &s.Grip, &s.Stance); err != nil {
			return nil, fmt.Errorf("scanning exercise set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
