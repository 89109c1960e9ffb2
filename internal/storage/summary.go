package storage

import (
	"context"
	"fmt"
	"time"
)

const lbsPerKg = 2.20462

// ExercisePeriodSummary holds aggregated volume stats for one exercise within
// a period. Tonnage and the estimated one-rep max are normalized to pounds.
type ExercisePeriodSummary struct {
	Exercise     string  `json:"exercise"`
	WorkingSets  int     `json:"working_sets"`
	TotalReps    int     `json:"total_reps"`
	TonnageLbs   float64 `json:"tonnage_lbs"`
	BestWeight   float64 `json:"best_weight_lbs"`
	BestE1RM     float64 `json:"best_e1rm_lbs"`
	TotalSeconds int     `json:"total_seconds,omitempty"`
}

// TrainingSummaryPeriod holds per-exercise volume for one time period.
type TrainingSummaryPeriod struct {
	Period    string                  `json:"period"`
	Sessions  int                     `json:"sessions"`
	Exercises []ExercisePeriodSummary `json:"exercises"`
}

// GetTrainingSummary returns per-exercise volume stats bucketed by period.
// The estimated one-rep max uses the Epley formula, weight * (1 + reps/30),
// over sets with 2..12 reps; true singles count as themselves.
func (db *DB) GetTrainingSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]TrainingSummaryPeriod, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.logged_at)::date AS period,
		        s.exercise_name,
		        COUNT(*) FILTER (WHERE s.set_type <> 'warmup')::int AS working_sets,
		        COALESCE(SUM(s.reps) FILTER (WHERE s.set_type <> 'warmup'), 0)::int AS total_reps,
		        COALESCE(SUM(
		            (CASE WHEN s.unit = 'kg' THEN s.weight * $5 ELSE s.weight END) * s.reps
		        ) FILTER (WHERE s.set_type <> 'warmup'), 0) AS tonnage,
		        COALESCE(MAX(CASE WHEN s.unit = 'kg' THEN s.weight * $5 ELSE s.weight END), 0) AS best_weight,
		        COALESCE(MAX(
		            CASE
		                WHEN s.reps = 1 THEN
		                    CASE WHEN s.unit = 'kg' THEN s.weight * $5 ELSE s.weight END
		                WHEN s.reps BETWEEN 2 AND 12 THEN
		                    (CASE WHEN s.unit = 'kg' THEN s.weight * $5 ELSE s.weight END)
		                    * (1 + s.reps / 30.0)
		            END
		        ), 0) AS best_e1rm,
		        COALESCE(SUM(s.duration_sec), 0)::int AS total_seconds
		 FROM exercise_sets s
		 JOIN workouts w ON w.id = s.workout_id
		 WHERE w.logged_at >= $2 AND w.logged_at < $3 AND s.user_id = $4
		 GROUP BY period, s.exercise_name
		 ORDER BY period DESC, tonnage DESC`,
		truncInterval(bucket), start, end, userID, lbsPerKg)
	if err != nil {
		return nil, fmt.Errorf("querying training summary: %w", err)
	}
	defer rows.Close()

	periodMap := make(map[string]*TrainingSummaryPeriod)
	var periodOrder []string

	for rows.Next() {
		var periodTime time.Time
		var es ExercisePeriodSummary
		if err := rows.Scan(&periodTime, &es.Exercise, &es.WorkingSets, &es.TotalReps,
			&es.TonnageLbs, &es.BestWeight, &es.BestE1RM, &es.TotalSeconds); err != nil {
			return nil, fmt.Errorf("scanning training summary: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if _, ok := periodMap[key]; !ok {
			periodMap[key] = &TrainingSummaryPeriod{Period: key}
			periodOrder = append(periodOrder, key)
		}
		periodMap[key].Exercises = append(periodMap[key].Exercises, es)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Second query: distinct sessions per period.
	sessionRows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, logged_at)::date AS period, COUNT(*)::int
		 FROM workouts
		 WHERE logged_at >= $2 AND logged_at < $3 AND user_id = $4
		 GROUP BY period`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying session counts: %w", err)
	}
	defer sessionRows.Close()

	for sessionRows.Next() {
		var periodTime time.Time
		var count int
		if err := sessionRows.Scan(&periodTime, &count); err != nil {
			return nil, fmt.Errorf("scanning session count: %w", err)
		}
		key := periodTime.Format("2006-01-02")
		if p, ok := periodMap[key]; ok {
			p.Sessions = count
		}
	}
	if err := sessionRows.Err(); err != nil {
		return nil, err
	}

	result := make([]TrainingSummaryPeriod, 0, len(periodOrder))
	for _, key := range periodOrder {
		result = append(result, *periodMap[key])
	}
	return result, nil
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 day":
		return "day"
	case "1 week":
		return "week"
	case "1 month":
		return "month"
	default:
		return "month"
	}
}
