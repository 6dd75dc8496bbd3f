package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

type engagementService interface {
	Request(ctx context.Context, userID, coachID int64) (*models.User, error)
	Accept(ctx context.Context, userID, coachID int64) (*models.User, error)
	Fire(ctx context.Context, userID int64) (*models.User, error)
}

type engagementCoachResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Coach, error)
}

type engagementClientLister interface {
	ListClientsOfCoach(ctx context.Context, coachID int64, hired bool) ([]models.User, error)
}

type EngagementHandler struct {
	service   engagementService
	coachRepo engagementCoachResolver
	userRepo  engagementClientLister
}

func NewEngagementHandler(service engagementService, coachRepo engagementCoachResolver, userRepo engagementClientLister) *EngagementHandler {
	return &EngagementHandler{service: service, coachRepo: coachRepo, userRepo: userRepo}
}

type requestCoachRequest struct {
	CoachID int64 `json:"coach_id"`
}

type acceptClientRequest struct {
	UserID int64 `json:"user_id"`
}

// RequestCoach starts an engagement for the authenticated user.
func (h *EngagementHandler) RequestCoach(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(string)
	if !ok || role != RoleUser {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	}

	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req requestCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.Request(c.Context(), userID, req.CoachID)
	if err != nil {
		return mapEngagementError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    "Requested coach successfully",
		"engagement": user.EngagementState(),
		"user":       user,
	})
}

// AcceptClient lets the authenticated coach confirm a pending request that
// names them.
func (h *EngagementHandler) AcceptClient(c *fiber.Ctx) error {
	coach, ok := h.resolveActingCoach(c)
	if !ok {
		return nil
	}

	var req acceptClientRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.Accept(c.Context(), req.UserID, coach.ID)
	if err != nil {
		return mapEngagementError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    "Accepted client successfully",
		"engagement": user.EngagementState(),
		"user":       user,
	})
}

// FireCoach dissolves the engagement regardless of its current state.
func (h *EngagementHandler) FireCoach(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.service.Fire(c.Context(), userID)
	if err != nil {
		return mapEngagementError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    "Successfully fired coach",
		"engagement": user.EngagementState(),
		"user":       user,
	})
}

// ListClients returns the coach's clients, hired by default, or the pending
// requests with ?status=requested.
func (h *EngagementHandler) ListClients(c *fiber.Ctx) error {
	coach, ok := h.resolveActingCoach(c)
	if !ok {
		return nil
	}

	status := c.Query("status", models.EngagementHired)
	if status != models.EngagementHired && status != models.EngagementRequested {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be hired or requested"})
	}

	clients, err := h.userRepo.ListClientsOfCoach(c.Context(), coach.ID, status == models.EngagementHired)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch clients"})
	}

	return c.JSON(fiber.Map{"clients": clients})
}

// resolveActingCoach looks up the coach row behind the authenticated token.
// On failure the response has already been written and ok is false.
func (h *EngagementHandler) resolveActingCoach(c *fiber.Ctx) (*models.Coach, bool) {
	role, roleOK := c.Locals("role").(string)
	if !roleOK || role != RoleCoach {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		return nil, false
	}

	actorID, err := parseActorID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		return nil, false
	}

	coach, err := h.coachRepo.GetByUserID(c.Context(), actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		} else {
			_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve coach"})
		}
		return nil, false
	}
	return coach, true
}

func mapEngagementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrCoachMismatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "User already has an active coach engagement"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrCoachNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process engagement request"})
	}
}
