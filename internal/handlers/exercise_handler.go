package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

type exerciseStore interface {
	Create(ctx context.Context, input repository.CreateExerciseInput) (*models.Exercise, error)
	Search(ctx context.Context, filter repository.ExerciseSearchFilter) ([]models.ExerciseListItem, int, error)
	Deactivate(ctx context.Context, id int64) (bool, error)
	ListMuscleGroups(ctx context.Context) ([]models.MuscleGroup, error)
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
}

type ExerciseHandler struct {
	store exerciseStore
}

func NewExerciseHandler(store exerciseStore) *ExerciseHandler {
	return &ExerciseHandler{store: store}
}

type createExerciseRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	MuscleGroupID int64  `json:"muscle_group_id"`
	EquipmentID   int64  `json:"equipment_id"`
}

// Search filters the catalog. Inactive exercises stay hidden unless the
// caller asks for them, so deactivated entries do not leak into plan builders.
func (h *ExerciseHandler) Search(c *fiber.Ctx) error {
	filter := repository.ExerciseSearchFilter{
		Name:            strings.TrimSpace(c.Query("name")),
		IncludeInactive: c.Query("include_inactive") == "true",
	}

	var err error
	if filter.MuscleGroupID, err = parseID(c.Query("muscle_group")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid muscle_group filter"})
	}
	if filter.EquipmentID, err = parseID(c.Query("equipment")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment filter"})
	}

	page, limit := parsePagination(c)
	filter.Offset = (page - 1) * limit
	filter.Limit = limit

	exercises, total, err := h.store.Search(c.Context(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search exercises"})
	}

	return c.JSON(fiber.Map{
		"exercises":  exercises,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

// ListMuscleGroups and ListEquipment serve the reference tables the search
// filters and the create form key on.
func (h *ExerciseHandler) ListMuscleGroups(c *fiber.Ctx) error {
	groups, err := h.store.ListMuscleGroups(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch muscle groups"})
	}
	return c.JSON(fiber.Map{"muscle_groups": groups})
}

func (h *ExerciseHandler) ListEquipment(c *fiber.Ctx) error {
	equipment, err := h.store.ListEquipment(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch equipment"})
	}
	return c.JSON(fiber.Map{"equipment": equipment})
}

func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req createExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := validateCreateExerciseRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	exercise, err := h.store.Create(c.Context(), repository.CreateExerciseInput{
		Name:          strings.TrimSpace(req.Name),
		Description:   strings.TrimSpace(req.Description),
		MuscleGroupID: req.MuscleGroupID,
		EquipmentID:   req.EquipmentID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown muscle group or equipment"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create exercise"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"exercise": exercise})
}

func (h *ExerciseHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid exercise id"})
	}

	deactivated, err := h.store.Deactivate(c.Context(), id)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate exercise"})
	}
	if !deactivated {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Exercise not found"})
	}

	return c.JSON(fiber.Map{"success": "Exercise deactivated"})
}
