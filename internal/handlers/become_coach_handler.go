package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

type coachIntakeService interface {
	Submit(ctx context.Context, input services.CoachIntakeInput) (*models.BecomeCoachRequest, error)
	ListPending(ctx context.Context) ([]models.BecomeCoachRequest, error)
	Decide(ctx context.Context, userID int64, approve bool) (*models.Coach, error)
}

type BecomeCoachHandler struct {
	service coachIntakeService
}

func NewBecomeCoachHandler(service coachIntakeService) *BecomeCoachHandler {
	return &BecomeCoachHandler{service: service}
}

type becomeCoachRequest struct {
	GoalID     int64   `json:"goal_id"`
	Cost       float64 `json:"cost"`
	Experience int     `json:"experience"`
	Bio        string  `json:"bio"`
}

type reviewCoachRequest struct {
	UserID     int64 `json:"user_id"`
	IsApproved bool  `json:"is_approved"`
}

// Submit files the authenticated user's proposal to become a coach.
func (h *BecomeCoachHandler) Submit(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != RoleUser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req becomeCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validateCoachIntakeRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	request, err := h.service.Submit(c.Context(), services.CoachIntakeInput{
		UserID:     userID,
		GoalID:     req.GoalID,
		Cost:       req.Cost,
		Experience: req.Experience,
		Bio:        req.Bio,
	})
	if err != nil {
		return mapIntakeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": "Coach request submitted successfully",
		"request": request,
	})
}

func (h *BecomeCoachHandler) ListPending(c *fiber.Ctx) error {
	requests, err := h.service.ListPending(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coach requests"})
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// Review approves or denies a pending request; both outcomes are terminal.
func (h *BecomeCoachHandler) Review(c *fiber.Ctx) error {
	var req reviewCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"user_id": "user_id is required"}})
	}

	coach, err := h.service.Decide(c.Context(), req.UserID, req.IsApproved)
	if err != nil {
		return mapIntakeError(c, err)
	}

	if !req.IsApproved {
		return c.JSON(fiber.Map{"success": "Coach request denied successfully"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": "Coach request approved and coach created successfully",
		"coach":   coach,
	})
}

func mapIntakeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrGoalNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"goal_id": "goal_id must be a valid goal"}})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No pending coach request for the specified user"})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A pending request already exists or the user is already a coach"})
	case errors.Is(err, services.ErrDownstream):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize decision, coach creation was rolled back"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process coach request"})
	}
}
