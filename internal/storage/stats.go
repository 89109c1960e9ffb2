package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about all stored data.
type DataStats struct {
	TotalWorkouts     int64              `json:"total_workouts"`
	TotalSets         int64              `json:"total_sets"`
	DistinctExercises int64              `json:"distinct_exercises"`
	EarliestData      *time.Time         `json:"earliest_data"`
	LatestData        *time.Time         `json:"latest_data"`
	SetsByExercise    []ExerciseSetStat  `json:"sets_by_exercise"`
}

// ExerciseSetStat holds summary counts for a single exercise.
type ExerciseSetStat struct {
	Name      string `json:"name"`
	SetCount  int64  `json:"set_count"`
	TotalReps int64  `json:"total_reps"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(logged_at), MAX(logged_at)
		 FROM workouts WHERE user_id = $1`,
		userID).Scan(&stats.TotalWorkouts, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("querying workout stats: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(DISTINCT exercise_name)
		 FROM exercise_sets WHERE user_id = $1`,
		userID).Scan(&stats.TotalSets, &stats.DistinctExercises)
	if err != nil {
		return nil, fmt.Errorf("querying set stats: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT exercise_name, COUNT(*), COALESCE(SUM(reps), 0)
		 FROM exercise_sets
		 WHERE user_id = $1
		 GROUP BY exercise_name
		 ORDER BY COUNT(*) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying per-exercise stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s ExerciseSetStat
		if err := rows.Scan(&s.Name, &s.SetCount, &s.TotalReps); err != nil {
			return nil, fmt.Errorf("scanning exercise stat: %w", err)
		}
		stats.SetsByExercise = append(stats.SetsByExercise, s)
	}
	return stats, rows.Err()
}
