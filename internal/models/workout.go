package models

import "time"

type WorkoutPlan struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlanExercise struct {
	ID              int64    `json:"id"`
	PlanID          int64    `json:"plan_id"`
	ExerciseID      int64    `json:"exercise_id"`
	Position        int      `json:"position"`
	Sets            int      `json:"sets"`
	Reps            int      `json:"reps"`
	Weight          *float64 `json:"weight"`
	DurationMinutes *int     `json:"duration_minutes"`
}

// PlanExerciseDetail carries the catalog fields joined at read time, so
// catalog edits show up in existing plans.
type PlanExerciseDetail struct {
	PlanExercise
	ExerciseName string `json:"exercise_name"`
	MuscleGroup  string `json:"muscle_group"`
	Equipment    string `json:"equipment"`
}

type WorkoutPlanDetail struct {
	WorkoutPlan
	Exercises []PlanExerciseDetail `json:"exercises"`
}
