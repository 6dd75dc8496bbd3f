package repository

import (
	"context"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type WorkoutPlanRepository struct {
	db DBTX
}

func NewWorkoutPlanRepository(db DBTX) *WorkoutPlanRepository {
	return &WorkoutPlanRepository{db: db}
}

func (r *WorkoutPlanRepository) CreatePlan(ctx context.Context, userID int64, name string) (*models.WorkoutPlan, error) {
	query := `
		INSERT INTO workout_plans (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at, updated_at
	`
	var plan models.WorkoutPlan
	err := r.db.QueryRow(ctx, query, userID, name).Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

type CreatePlanExerciseInput struct {
	PlanID          int64
	ExerciseID      int64
	Position        int
	Sets            int
	Reps            int
	Weight          *float64
	DurationMinutes *int
}

func (r *WorkoutPlanRepository) AddExercise(ctx context.Context, input CreatePlanExerciseInput) (*models.PlanExercise, error) {
	query := `
		INSERT INTO plan_exercises (plan_id, exercise_id, position, sets, reps, weight, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, plan_id, exercise_id, position, sets, reps, weight, duration_minutes
	`
	var entry models.PlanExercise
	err := r.db.QueryRow(ctx, query,
		input.PlanID,
		input.ExerciseID,
		input.Position,
		input.Sets,
		input.Reps,
		input.Weight,
		input.DurationMinutes,
	).Scan(
		&entry.ID,
		&entry.PlanID,
		&entry.ExerciseID,
		&entry.Position,
		&entry.Sets,
		&entry.Reps,
		&entry.Weight,
		&entry.DurationMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *WorkoutPlanRepository) GetPlanByID(ctx context.Context, id int64) (*models.WorkoutPlan, error) {
	query := `SELECT id, user_id, name, created_at, updated_at FROM workout_plans WHERE id = $1`
	var plan models.WorkoutPlan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *WorkoutPlanRepository) ListByUser(ctx context.Context, userID int64) ([]models.WorkoutPlan, error) {
	query := `SELECT id, user_id, name, created_at, updated_at FROM workout_plans WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.WorkoutPlan, 0)
	for rows.Next() {
		var plan models.WorkoutPlan
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// ListPlanExercises joins the catalog so descriptive fields always reflect
// the current exercise bank.
func (r *WorkoutPlanRepository) ListPlanExercises(ctx context.Context, planID int64) ([]models.PlanExerciseDetail, error) {
	query := `
		SELECT pe.id, pe.plan_id, pe.exercise_id, pe.position, pe.sets, pe.reps, pe.weight, pe.duration_minutes,
			   e.name, mg.name, eq.name
		FROM plan_exercises pe
		JOIN exercise_bank e ON e.id = pe.exercise_id
		JOIN muscle_groups mg ON mg.id = e.muscle_group_id
		JOIN equipment eq ON eq.id = e.equipment_id
		WHERE pe.plan_id = $1
		ORDER BY pe.position
	`
	rows, err := r.db.Query(ctx, query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.PlanExerciseDetail, 0)
	for rows.Next() {
		var entry models.PlanExerciseDetail
		if err := rows.Scan(
			&entry.ID,
			&entry.PlanID,
			&entry.ExerciseID,
			&entry.Position,
			&entry.Sets,
			&entry.Reps,
			&entry.Weight,
			&entry.DurationMinutes,
			&entry.ExerciseName,
			&entry.MuscleGroup,
			&entry.Equipment,
		); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *WorkoutPlanRepository) DeletePlan(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
