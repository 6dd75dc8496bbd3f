package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type stubWorkoutPlanStore struct {
	plans      map[int64]*models.WorkoutPlan
	entries    map[int64][]models.PlanExerciseDetail
	nextPlanID int64

	failAddAfter int
	added        int
}

func newStubWorkoutPlanStore() *stubWorkoutPlanStore {
	return &stubWorkoutPlanStore{
		plans:        map[int64]*models.WorkoutPlan{},
		entries:      map[int64][]models.PlanExerciseDetail{},
		failAddAfter: -1,
	}
}

func (s *stubWorkoutPlanStore) CreatePlan(_ context.Context, userID int64, name string) (*models.WorkoutPlan, error) {
	s.nextPlanID++
	plan := &models.WorkoutPlan{ID: s.nextPlanID, UserID: userID, Name: name}
	s.plans[plan.ID] = plan
	return plan, nil
}

func (s *stubWorkoutPlanStore) AddExercise(_ context.Context, input repository.CreatePlanExerciseInput) (*models.PlanExercise, error) {
	if s.failAddAfter >= 0 && s.added >= s.failAddAfter {
		return nil, errors.New("insert failed")
	}
	s.added++
	entry := models.PlanExerciseDetail{
		PlanExercise: models.PlanExercise{
			ID:              int64(s.added),
			PlanID:          input.PlanID,
			ExerciseID:      input.ExerciseID,
			Position:        input.Position,
			Sets:            input.Sets,
			Reps:            input.Reps,
			Weight:          input.Weight,
			DurationMinutes: input.DurationMinutes,
		},
		ExerciseName: "Bench Press",
		MuscleGroup:  "Chest",
		Equipment:    "Barbell",
	}
	s.entries[input.PlanID] = append(s.entries[input.PlanID], entry)
	return &entry.PlanExercise, nil
}

func (s *stubWorkoutPlanStore) GetPlanByID(_ context.Context, id int64) (*models.WorkoutPlan, error) {
	plan, ok := s.plans[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return plan, nil
}

func (s *stubWorkoutPlanStore) ListByUser(_ context.Context, userID int64) ([]models.WorkoutPlan, error) {
	plans := []models.WorkoutPlan{}
	for _, plan := range s.plans {
		if plan.UserID == userID {
			plans = append(plans, *plan)
		}
	}
	return plans, nil
}

func (s *stubWorkoutPlanStore) ListPlanExercises(_ context.Context, planID int64) ([]models.PlanExerciseDetail, error) {
	return s.entries[planID], nil
}

func (s *stubWorkoutPlanStore) DeletePlan(_ context.Context, id int64) (bool, error) {
	if _, ok := s.plans[id]; !ok {
		return false, nil
	}
	delete(s.plans, id)
	delete(s.entries, id)
	return true, nil
}

type stubExerciseCatalog struct {
	exercises map[int64]*models.Exercise
}

func (s *stubExerciseCatalog) GetByID(_ context.Context, id int64) (*models.Exercise, error) {
	exercise, ok := s.exercises[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return exercise, nil
}

type stubWorkoutUserStore struct {
	users map[int64]*models.User
}

func (s *stubWorkoutUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newWorkoutFixture() (*WorkoutService, *stubWorkoutPlanStore, *stubExerciseCatalog) {
	plans := newStubWorkoutPlanStore()
	catalog := &stubExerciseCatalog{exercises: map[int64]*models.Exercise{
		10: {ID: 10, Name: "Bench Press", IsActive: true},
		11: {ID: 11, Name: "Squat", IsActive: true},
		12: {ID: 12, Name: "Retired Machine Fly", IsActive: false},
	}}
	users := &stubWorkoutUserStore{users: map[int64]*models.User{
		1: {ID: 1, Email: "member@example.com"},
	}}
	return NewWorkoutService(plans, catalog, users), plans, catalog
}

func twoEntryPlan() CreateWorkoutPlanInput {
	weight := 80.0
	return CreateWorkoutPlanInput{
		Name: "Push Day",
		Entries: []PlanEntryInput{
			{ExerciseID: 10, Sets: 4, Reps: 8, Weight: &weight},
			{ExerciseID: 11, Sets: 3, Reps: 5},
		},
	}
}

func TestCreatePlanPreservesEntryOrder(t *testing.T) {
	service, plans, _ := newWorkoutFixture()

	detail, err := service.CreatePlan(context.Background(), 1, twoEntryPlan())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if detail.Name != "Push Day" {
		t.Fatalf("unexpected plan name %q", detail.Name)
	}
	if len(detail.Exercises) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(detail.Exercises))
	}
	if detail.Exercises[0].Position != 1 || detail.Exercises[1].Position != 2 {
		t.Fatalf("positions must follow entry order, got %d and %d",
			detail.Exercises[0].Position, detail.Exercises[1].Position)
	}
	if len(plans.plans) != 1 {
		t.Fatalf("expected 1 stored plan, got %d", len(plans.plans))
	}
}

func TestCreatePlanRejectsUnknownExercise(t *testing.T) {
	service, plans, _ := newWorkoutFixture()

	input := twoEntryPlan()
	input.Entries[1].ExerciseID = 99
	if _, err := service.CreatePlan(context.Background(), 1, input); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("expected ErrExerciseNotFound, got %v", err)
	}
	if len(plans.plans) != 0 {
		t.Fatal("no plan may be created when an entry cannot resolve")
	}
}

func TestCreatePlanRejectsInactiveExercise(t *testing.T) {
	service, plans, _ := newWorkoutFixture()

	input := twoEntryPlan()
	input.Entries[0].ExerciseID = 12
	if _, err := service.CreatePlan(context.Background(), 1, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(plans.plans) != 0 {
		t.Fatal("no plan may be created for an inactive exercise")
	}
}

func TestCreatePlanDeletesPlanWhenEntryInsertFails(t *testing.T) {
	service, plans, _ := newWorkoutFixture()
	plans.failAddAfter = 1

	if _, err := service.CreatePlan(context.Background(), 1, twoEntryPlan()); !errors.Is(err, ErrDownstream) {
		t.Fatalf("expected ErrDownstream, got %v", err)
	}
	if len(plans.plans) != 0 {
		t.Fatal("partial plan must be deleted")
	}
}

func TestCreatePlanUnknownUser(t *testing.T) {
	service, _, _ := newWorkoutFixture()

	if _, err := service.CreatePlan(context.Background(), 42, twoEntryPlan()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreatePlanValidation(t *testing.T) {
	service, _, _ := newWorkoutFixture()
	ctx := context.Background()

	negative := -1.0
	zeroDuration := 0
	cases := []CreateWorkoutPlanInput{
		{Name: "  ", Entries: []PlanEntryInput{{ExerciseID: 10, Sets: 3, Reps: 5}}},
		{Name: "Plan", Entries: nil},
		{Name: "Plan", Entries: []PlanEntryInput{{ExerciseID: 10, Sets: 0, Reps: 5}}},
		{Name: "Plan", Entries: []PlanEntryInput{{ExerciseID: 10, Sets: 3, Reps: -1}}},
		{Name: "Plan", Entries: []PlanEntryInput{{ExerciseID: 10, Sets: 3, Reps: 5, Weight: &negative}}},
		{Name: "Plan", Entries: []PlanEntryInput{{ExerciseID: 10, Sets: 3, Reps: 5, DurationMinutes: &zeroDuration}}},
	}
	for _, input := range cases {
		if _, err := service.CreatePlan(ctx, 1, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
}

func TestGetPlanEnforcesOwnership(t *testing.T) {
	service, _, _ := newWorkoutFixture()
	ctx := context.Background()

	detail, err := service.CreatePlan(ctx, 1, twoEntryPlan())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if _, err := service.GetPlan(ctx, 2, detail.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := service.GetPlan(ctx, 1, detail.ID); err != nil {
		t.Fatalf("owner GetPlan: %v", err)
	}
}
