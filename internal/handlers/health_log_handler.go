package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
)

type calorieLogStore interface {
	Create(ctx context.Context, userID int64, calories int, recordedAt time.Time) (*models.CalorieLog, error)
	ListByUser(ctx context.Context, userID int64) ([]models.CalorieLog, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type waterLogStore interface {
	Create(ctx context.Context, userID int64, amountML int, recordedAt time.Time) (*models.WaterLog, error)
	ListByUser(ctx context.Context, userID int64) ([]models.WaterLog, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type mentalLogStore interface {
	Create(ctx context.Context, userID int64, mood int, recordedAt time.Time) (*models.MentalHealthLog, error)
	ListByUser(ctx context.Context, userID int64) ([]models.MentalHealthLog, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

type physicalLogStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.PhysicalHealthLog, error)
}

// HealthLogHandler serves the daily self-tracking endpoints. Every operation
// is scoped to the token's user, so a delete against someone else's entry
// reads as not found.
type HealthLogHandler struct {
	calories calorieLogStore
	water    waterLogStore
	mental   mentalLogStore
	physical physicalLogStore
	now      func() time.Time
}

func NewHealthLogHandler(calories calorieLogStore, water waterLogStore, mental mentalLogStore, physical physicalLogStore) *HealthLogHandler {
	return &HealthLogHandler{
		calories: calories,
		water:    water,
		mental:   mental,
		physical: physical,
		now:      time.Now,
	}
}

type logEntryRequest struct {
	Calories   int    `json:"calories"`
	AmountML   int    `json:"amount_ml"`
	Mood       int    `json:"mood"`
	RecordedAt string `json:"recorded_at"`
}

// resolveRecordedAt accepts an optional date stamp and falls back to now.
func (h *HealthLogHandler) resolveRecordedAt(raw string) (time.Time, bool) {
	if raw == "" {
		return h.now(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (h *HealthLogHandler) CreateCalorieLog(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Calories <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"calories": "calories must be greater than 0"}})
	}
	recordedAt, ok := h.resolveRecordedAt(req.RecordedAt)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"recorded_at": "recorded_at must be YYYY-MM-DD or RFC 3339"}})
	}

	entry, err := h.calories.Create(c.Context(), userID, req.Calories, recordedAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record calories"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": entry})
}

func (h *HealthLogHandler) ListCalorieLogs(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := h.calories.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch calorie logs"})
	}
	return c.JSON(fiber.Map{"logs": entries})
}

func (h *HealthLogHandler) DeleteCalorieLog(c *fiber.Ctx) error {
	return h.deleteLog(c, func(ctx context.Context, userID, id int64) (bool, error) {
		return h.calories.Delete(ctx, userID, id)
	})
}

func (h *HealthLogHandler) CreateWaterLog(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AmountML <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"amount_ml": "amount_ml must be greater than 0"}})
	}
	recordedAt, ok := h.resolveRecordedAt(req.RecordedAt)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"recorded_at": "recorded_at must be YYYY-MM-DD or RFC 3339"}})
	}

	entry, err := h.water.Create(c.Context(), userID, req.AmountML, recordedAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record water intake"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": entry})
}

func (h *HealthLogHandler) ListWaterLogs(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := h.water.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch water logs"})
	}
	return c.JSON(fiber.Map{"logs": entries})
}

func (h *HealthLogHandler) DeleteWaterLog(c *fiber.Ctx) error {
	return h.deleteLog(c, func(ctx context.Context, userID, id int64) (bool, error) {
		return h.water.Delete(ctx, userID, id)
	})
}

func (h *HealthLogHandler) CreateMoodLog(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Mood < 1 || req.Mood > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"mood": "mood must be between 1 and 5"}})
	}
	recordedAt, ok := h.resolveRecordedAt(req.RecordedAt)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"recorded_at": "recorded_at must be YYYY-MM-DD or RFC 3339"}})
	}

	entry, err := h.mental.Create(c.Context(), userID, req.Mood, recordedAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record mood"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"log": entry})
}

func (h *HealthLogHandler) ListMoodLogs(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := h.mental.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch mood logs"})
	}
	return c.JSON(fiber.Map{"logs": entries})
}

func (h *HealthLogHandler) DeleteMoodLog(c *fiber.Ctx) error {
	return h.deleteLog(c, func(ctx context.Context, userID, id int64) (bool, error) {
		return h.mental.Delete(ctx, userID, id)
	})
}

func (h *HealthLogHandler) ListPhysicalLogs(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	entries, err := h.physical.ListByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch physical logs"})
	}
	return c.JSON(fiber.Map{"logs": entries})
}

func (h *HealthLogHandler) deleteLog(c *fiber.Ctx, deleteFn func(ctx context.Context, userID, id int64) (bool, error)) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid log id"})
	}

	deleted, err := deleteFn(c.Context(), userID, id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete log"})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log entry not found"})
	}
	return c.JSON(fiber.Map{"success": "Log entry deleted"})
}
