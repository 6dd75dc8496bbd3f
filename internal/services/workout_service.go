package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type workoutPlanStore interface {
	CreatePlan(ctx context.Context, userID int64, name string) (*models.WorkoutPlan, error)
	AddExercise(ctx context.Context, input repository.CreatePlanExerciseInput) (*models.PlanExercise, error)
	GetPlanByID(ctx context.Context, id int64) (*models.WorkoutPlan, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WorkoutPlan, error)
	ListPlanExercises(ctx context.Context, planID int64) ([]models.PlanExerciseDetail, error)
	DeletePlan(ctx context.Context, id int64) (bool, error)
}

type exerciseCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
}

type workoutUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// WorkoutService builds plans from the exercise catalog. Plan rows keep only
// the catalog reference and the prescription; names and groupings are joined
// at read time.
type WorkoutService struct {
	planRepo     workoutPlanStore
	exerciseRepo exerciseCatalog
	userRepo     workoutUserStore
}

func NewWorkoutService(planRepo workoutPlanStore, exerciseRepo exerciseCatalog, userRepo workoutUserStore) *WorkoutService {
	return &WorkoutService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		userRepo:     userRepo,
	}
}

type PlanEntryInput struct {
	ExerciseID      int64
	Sets            int
	Reps            int
	Weight          *float64
	DurationMinutes *int
}

type CreateWorkoutPlanInput struct {
	Name    string
	Entries []PlanEntryInput
}

func (s *WorkoutService) CreatePlan(ctx context.Context, userID int64, input CreateWorkoutPlanInput) (*models.WorkoutPlanDetail, error) {
	name := strings.TrimSpace(input.Name)
	if userID <= 0 || name == "" || len(input.Entries) == 0 {
		return nil, ErrInvalidInput
	}
	for _, entry := range input.Entries {
		if entry.ExerciseID <= 0 || entry.Sets <= 0 || entry.Reps < 0 {
			return nil, ErrInvalidInput
		}
		if entry.Weight != nil && *entry.Weight < 0 {
			return nil, ErrInvalidInput
		}
		if entry.DurationMinutes != nil && *entry.DurationMinutes <= 0 {
			return nil, ErrInvalidInput
		}
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// Resolve every catalog reference before the first insert.
	for _, entry := range input.Entries {
		exercise, err := s.exerciseRepo.GetByID(ctx, entry.ExerciseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		if !exercise.IsActive {
			return nil, ErrInvalidInput
		}
	}

	plan, err := s.planRepo.CreatePlan(ctx, userID, name)
	if err != nil {
		return nil, err
	}

	for i, entry := range input.Entries {
		_, err := s.planRepo.AddExercise(ctx, repository.CreatePlanExerciseInput{
			PlanID:          plan.ID,
			ExerciseID:      entry.ExerciseID,
			Position:        i + 1,
			Sets:            entry.Sets,
			Reps:            entry.Reps,
			Weight:          entry.Weight,
			DurationMinutes: entry.DurationMinutes,
		})
		if err != nil {
			if _, deleteErr := s.planRepo.DeletePlan(ctx, plan.ID); deleteErr != nil {
				return nil, fmt.Errorf("%w: %v (plan cleanup failed: %v)", ErrDownstream, err, deleteErr)
			}
			return nil, fmt.Errorf("%w: %v", ErrDownstream, err)
		}
	}

	exercises, err := s.planRepo.ListPlanExercises(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	return &models.WorkoutPlanDetail{WorkoutPlan: *plan, Exercises: exercises}, nil
}

func (s *WorkoutService) GetPlan(ctx context.Context, actorID, planID int64) (*models.WorkoutPlanDetail, error) {
	plan, err := s.planRepo.GetPlanByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.UserID != actorID {
		return nil, ErrForbidden
	}

	exercises, err := s.planRepo.ListPlanExercises(ctx, planID)
	if err != nil {
		return nil, err
	}
	return &models.WorkoutPlanDetail{WorkoutPlan: *plan, Exercises: exercises}, nil
}

func (s *WorkoutService) ListPlans(ctx context.Context, userID int64) ([]models.WorkoutPlan, error) {
	return s.planRepo.ListByUser(ctx, userID)
}
