package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

type workoutService interface {
	CreatePlan(ctx context.Context, userID int64, input services.CreateWorkoutPlanInput) (*models.WorkoutPlanDetail, error)
	GetPlan(ctx context.Context, actorID, planID int64) (*models.WorkoutPlanDetail, error)
	ListPlans(ctx context.Context, userID int64) ([]models.WorkoutPlan, error)
}

type WorkoutHandler struct {
	service workoutService
}

func NewWorkoutHandler(service workoutService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type planExerciseRequest struct {
	ExerciseID      int64    `json:"exercise_id"`
	Sets            int      `json:"sets"`
	Reps            int      `json:"reps"`
	Weight          *float64 `json:"weight"`
	DurationMinutes *int     `json:"duration_minutes"`
}

type createWorkoutPlanRequest struct {
	Name      string                `json:"name"`
	Exercises []planExerciseRequest `json:"exercises"`
}

func (h *WorkoutHandler) CreatePlan(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createWorkoutPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validateWorkoutPlanRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	entries := make([]services.PlanEntryInput, 0, len(req.Exercises))
	for _, entry := range req.Exercises {
		entries = append(entries, services.PlanEntryInput{
			ExerciseID:      entry.ExerciseID,
			Sets:            entry.Sets,
			Reps:            entry.Reps,
			Weight:          entry.Weight,
			DurationMinutes: entry.DurationMinutes,
		})
	}

	plan, err := h.service.CreatePlan(c.Context(), userID, services.CreateWorkoutPlanInput{
		Name:    req.Name,
		Entries: entries,
	})
	if err != nil {
		return mapWorkoutError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"plan": plan})
}

func (h *WorkoutHandler) ListPlans(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plans, err := h.service.ListPlans(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch workout plans"})
	}
	return c.JSON(fiber.Map{"plans": plans})
}

func (h *WorkoutHandler) GetPlan(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	planID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || planID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plan id"})
	}

	plan, err := h.service.GetPlan(c.Context(), userID, planID)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return c.JSON(fiber.Map{"plan": plan})
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrExerciseNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"exercises": "every entry must reference a catalog exercise"}})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrDownstream):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add exercises, plan was rolled back"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout plan not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process workout plan request"})
	}
}
