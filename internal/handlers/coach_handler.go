package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type coachStore interface {
	List(ctx context.Context, filter repository.CoachListFilter) ([]models.CoachListItem, int, error)
	GetByID(ctx context.Context, id int64) (*models.Coach, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Coach, error)
	UpdatePartial(ctx context.Context, id int64, input repository.UpdateCoachInput) (*models.Coach, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type goalStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]models.Goal, error)
}

type CoachHandler struct {
	coachRepo coachStore
	goalRepo  goalStore
}

func NewCoachHandler(coachRepo coachStore, goalRepo goalStore) *CoachHandler {
	return &CoachHandler{coachRepo: coachRepo, goalRepo: goalRepo}
}

// ListCoaches filters conjunctively: goal, minimum experience, maximum cost.
func (h *CoachHandler) ListCoaches(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	goalID, err := parseID(c.Query("goal"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "goal must be a valid goal id"})
	}
	minExperience, err := parseNonNegativeInt(c.Query("experience"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "experience must be a valid non-negative integer"})
	}
	maxCost, err := parseNonNegativeFloat(c.Query("cost"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cost must be a valid non-negative number"})
	}

	coaches, total, err := h.coachRepo.List(c.Context(), repository.CoachListFilter{
		GoalID:        goalID,
		MinExperience: minExperience,
		MaxCost:       maxCost,
		Offset:        (page - 1) * limit,
		Limit:         limit,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coaches"})
	}

	return c.JSON(fiber.Map{
		"coaches":    coaches,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *CoachHandler) GetCoach(c *fiber.Ctx) error {
	coachID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || coachID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	coach, err := h.coachRepo.GetByID(c.Context(), coachID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coach"})
	}

	return c.JSON(fiber.Map{"coach": coach})
}

type updateCoachRequest struct {
	GoalID     *int64   `json:"goal_id"`
	Bio        *string  `json:"bio"`
	Cost       *float64 `json:"cost"`
	Experience *int     `json:"experience"`
}

// UpdateCoach allows a coach to edit their own record; admins may edit any.
func (h *CoachHandler) UpdateCoach(c *fiber.Ctx) error {
	coachID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || coachID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	if !h.authorizeCoachEdit(c, coachID) {
		return nil
	}

	var req updateCoachRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validateUpdateCoachRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}
	if req.GoalID != nil {
		exists, err := h.goalRepo.Exists(c.Context(), *req.GoalID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to validate goal"})
		}
		if !exists {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"goal_id": "goal_id must be a valid goal"}})
		}
	}

	coach, err := h.coachRepo.UpdatePartial(c.Context(), coachID, repository.UpdateCoachInput{
		GoalID:     req.GoalID,
		Bio:        req.Bio,
		Cost:       req.Cost,
		Experience: req.Experience,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update coach"})
	}

	return c.JSON(fiber.Map{"coach": coach})
}

func (h *CoachHandler) DeleteCoach(c *fiber.Ctx) error {
	coachID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || coachID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coach id"})
	}

	if !h.authorizeCoachEdit(c, coachID) {
		return nil
	}

	deleted, err := h.coachRepo.Delete(c.Context(), coachID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete coach"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coach not found"})
	}

	return c.JSON(fiber.Map{"success": "Coach deleted"})
}

func (h *CoachHandler) ListGoals(c *fiber.Ctx) error {
	goals, err := h.goalRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch goals"})
	}
	return c.JSON(fiber.Map{"goals": goals})
}

// authorizeCoachEdit permits admins, or the coach editing their own record.
// When it returns false the response has already been written.
func (h *CoachHandler) authorizeCoachEdit(c *fiber.Ctx, coachID int64) bool {
	role, _ := c.Locals("role").(string)
	if role == RoleAdmin {
		return true
	}
	if role != RoleCoach {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		return false
	}

	actorID, err := parseActorID(c)
	if err != nil {
		_ = c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		return false
	}

	own, err := h.coachRepo.GetByUserID(c.Context(), actorID)
	if err != nil || own.ID != coachID {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		return false
	}
	return true
}
