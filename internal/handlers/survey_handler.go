package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

type surveyService interface {
	Complete(ctx context.Context, input services.SurveyInput) (*models.PhysicalHealthLog, error)
}

type SurveyHandler struct {
	service surveyService
}

func NewSurveyHandler(service surveyService) *SurveyHandler {
	return &SurveyHandler{service: service}
}

type initialSurveyRequest struct {
	GoalID int64   `json:"goal_id"`
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
}

// InitialSurvey runs the one-time onboarding gate for the authenticated
// user: goal assignment plus the physical baseline.
func (h *SurveyHandler) InitialSurvey(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != RoleUser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req initialSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validateSurveyRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	baseline, err := h.service.Complete(c.Context(), services.SurveyInput{
		UserID: userID,
		GoalID: req.GoalID,
		Weight: req.Weight,
		Height: req.Height,
	})
	if err != nil {
		return mapSurveyError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  "Survey completed successfully",
		"baseline": baseline,
	})
}

func mapSurveyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrGoalNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"goal_id": "goal_id must be a valid goal"}})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Initial survey already completed"})
	case errors.Is(err, services.ErrDownstream):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record baseline, survey was rolled back"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process survey"})
	}
}
