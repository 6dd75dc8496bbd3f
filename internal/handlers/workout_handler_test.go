package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

type stubWorkoutService struct {
	detail *models.WorkoutPlanDetail
	plans  []models.WorkoutPlan
	err    error

	createdFor int64
	created    services.CreateWorkoutPlanInput
	gotActor   int64
	gotPlan    int64
}

func (s *stubWorkoutService) CreatePlan(_ context.Context, userID int64, input services.CreateWorkoutPlanInput) (*models.WorkoutPlanDetail, error) {
	s.createdFor = userID
	s.created = input
	return s.detail, s.err
}

func (s *stubWorkoutService) GetPlan(_ context.Context, actorID, planID int64) (*models.WorkoutPlanDetail, error) {
	s.gotActor, s.gotPlan = actorID, planID
	return s.detail, s.err
}

func (s *stubWorkoutService) ListPlans(_ context.Context, _ int64) ([]models.WorkoutPlan, error) {
	return s.plans, s.err
}

func TestCreateWorkoutPlan(t *testing.T) {
	service := &stubWorkoutService{detail: &models.WorkoutPlanDetail{
		WorkoutPlan: models.WorkoutPlan{ID: 1, UserID: 1, Name: "Push Day"},
	}}
	handler := NewWorkoutHandler(service)

	app := fiber.New()
	app.Post("/api/v1/workout-plans", withIdentity(1, RoleUser), handler.CreatePlan)

	body := `{"name": "Push Day", "exercises": [{"exercise_id": 10, "sets": 4, "reps": 8, "weight": 80}, {"exercise_id": 11, "sets": 3, "reps": 5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workout-plans", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.createdFor != 1 {
		t.Fatalf("expected plan for user 1, got %d", service.createdFor)
	}
	if len(service.created.Entries) != 2 || service.created.Entries[0].ExerciseID != 10 {
		t.Fatalf("entries not forwarded: %+v", service.created.Entries)
	}
	if service.created.Entries[0].Weight == nil || *service.created.Entries[0].Weight != 80 {
		t.Fatalf("weight not forwarded: %+v", service.created.Entries[0])
	}
}

func TestCreateWorkoutPlanValidation(t *testing.T) {
	service := &stubWorkoutService{}
	handler := NewWorkoutHandler(service)

	app := fiber.New()
	app.Post("/api/v1/workout-plans", withIdentity(1, RoleUser), handler.CreatePlan)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workout-plans",
		strings.NewReader(`{"name": "", "exercises": []}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.createdFor != 0 {
		t.Fatal("service must not be called for an invalid request")
	}
}

func TestCreateWorkoutPlanUnknownExercise(t *testing.T) {
	handler := NewWorkoutHandler(&stubWorkoutService{err: services.ErrExerciseNotFound})

	app := fiber.New()
	app.Post("/api/v1/workout-plans", withIdentity(1, RoleUser), handler.CreatePlan)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workout-plans",
		strings.NewReader(`{"name": "Push Day", "exercises": [{"exercise_id": 99, "sets": 4, "reps": 8}]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetWorkoutPlanForbiddenForNonOwner(t *testing.T) {
	handler := NewWorkoutHandler(&stubWorkoutService{err: services.ErrForbidden})

	app := fiber.New()
	app.Get("/api/v1/workout-plans/:id", withIdentity(2, RoleUser), handler.GetPlan)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workout-plans/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestGetWorkoutPlanForwardsIDs(t *testing.T) {
	service := &stubWorkoutService{detail: &models.WorkoutPlanDetail{
		WorkoutPlan: models.WorkoutPlan{ID: 5, UserID: 1, Name: "Leg Day"},
	}}
	handler := NewWorkoutHandler(service)

	app := fiber.New()
	app.Get("/api/v1/workout-plans/:id", withIdentity(1, RoleUser), handler.GetPlan)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/workout-plans/5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.gotActor != 1 || service.gotPlan != 5 {
		t.Fatalf("service got actor %d plan %d", service.gotActor, service.gotPlan)
	}
}
