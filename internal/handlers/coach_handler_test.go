package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
)

// withIdentity stands in for the auth middleware in handler tests.
func withIdentity(userID int64, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", strconv.FormatInt(userID, 10))
		c.Locals("role", role)
		return c.Next()
	}
}

type stubCoachStore struct {
	coaches    []models.CoachListItem
	total      int
	listFilter repository.CoachListFilter

	byID     map[int64]*models.Coach
	byUserID map[int64]*models.Coach

	updated *models.Coach
	deleted bool
}

func (s *stubCoachStore) List(_ context.Context, filter repository.CoachListFilter) ([]models.CoachListItem, int, error) {
	s.listFilter = filter
	return s.coaches, s.total, nil
}

func (s *stubCoachStore) GetByID(_ context.Context, id int64) (*models.Coach, error) {
	coach, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return coach, nil
}

func (s *stubCoachStore) GetByUserID(_ context.Context, userID int64) (*models.Coach, error) {
	coach, ok := s.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return coach, nil
}

func (s *stubCoachStore) UpdatePartial(_ context.Context, id int64, input repository.UpdateCoachInput) (*models.Coach, error) {
	coach, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	updated := *coach
	if input.Bio != nil {
		updated.Bio = *input.Bio
	}
	if input.Cost != nil {
		updated.Cost = *input.Cost
	}
	if input.Experience != nil {
		updated.Experience = *input.Experience
	}
	if input.GoalID != nil {
		updated.GoalID = *input.GoalID
	}
	s.updated = &updated
	return &updated, nil
}

func (s *stubCoachStore) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	s.deleted = true
	return true, nil
}

type stubGoalStore struct {
	known map[int64]bool
	goals []models.Goal
}

func (s *stubGoalStore) Exists(_ context.Context, id int64) (bool, error) {
	return s.known[id], nil
}

func (s *stubGoalStore) List(_ context.Context) ([]models.Goal, error) {
	return s.goals, nil
}

func TestListCoachesAppliesFiltersAndPagination(t *testing.T) {
	store := &stubCoachStore{
		coaches: []models.CoachListItem{{
			Coach:     models.Coach{ID: 7, UserID: 2, GoalID: 3, Cost: 40, Experience: 5},
			FirstName: "Dana",
			LastName:  "K",
			GoalName:  "Build Muscle",
		}},
		total: 23,
	}
	handler := NewCoachHandler(store, &stubGoalStore{})

	app := fiber.New()
	app.Get("/api/v1/coaches", withIdentity(1, RoleUser), handler.ListCoaches)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coaches?goal=3&experience=2&cost=50&page=2&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if store.listFilter.GoalID == nil || *store.listFilter.GoalID != 3 {
		t.Fatalf("goal filter not applied: %+v", store.listFilter)
	}
	if store.listFilter.MinExperience == nil || *store.listFilter.MinExperience != 2 {
		t.Fatalf("experience filter not applied: %+v", store.listFilter)
	}
	if store.listFilter.MaxCost == nil || *store.listFilter.MaxCost != 50 {
		t.Fatalf("cost filter not applied: %+v", store.listFilter)
	}
	if store.listFilter.Offset != 5 || store.listFilter.Limit != 5 {
		t.Fatalf("pagination not applied: %+v", store.listFilter)
	}

	var body struct {
		Coaches    []models.CoachListItem `json:"coaches"`
		Pagination models.PaginationMeta  `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Pagination.Total != 23 || body.Pagination.TotalPages != 5 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListCoachesRejectsBadFilter(t *testing.T) {
	handler := NewCoachHandler(&stubCoachStore{}, &stubGoalStore{})

	app := fiber.New()
	app.Get("/api/v1/coaches", withIdentity(1, RoleUser), handler.ListCoaches)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coaches?experience=-3", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetCoachNotFound(t *testing.T) {
	handler := NewCoachHandler(&stubCoachStore{byID: map[int64]*models.Coach{}}, &stubGoalStore{})

	app := fiber.New()
	app.Get("/api/v1/coaches/:id", withIdentity(1, RoleUser), handler.GetCoach)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/coaches/42", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateCoachOwnRecord(t *testing.T) {
	store := &stubCoachStore{
		byID:     map[int64]*models.Coach{7: {ID: 7, UserID: 2, GoalID: 3, Cost: 40, Experience: 5}},
		byUserID: map[int64]*models.Coach{2: {ID: 7, UserID: 2, GoalID: 3, Cost: 40, Experience: 5}},
	}
	handler := NewCoachHandler(store, &stubGoalStore{known: map[int64]bool{3: true}})

	app := fiber.New()
	app.Put("/api/v1/coaches/:id", withIdentity(2, RoleCoach), handler.UpdateCoach)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/coaches/7", strings.NewReader(`{"cost": 55}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.updated == nil || store.updated.Cost != 55 {
		t.Fatalf("update not applied: %+v", store.updated)
	}
}

func TestUpdateCoachForeignRecordForbidden(t *testing.T) {
	store := &stubCoachStore{
		byID:     map[int64]*models.Coach{7: {ID: 7, UserID: 2}, 8: {ID: 8, UserID: 3}},
		byUserID: map[int64]*models.Coach{3: {ID: 8, UserID: 3}},
	}
	handler := NewCoachHandler(store, &stubGoalStore{})

	app := fiber.New()
	app.Put("/api/v1/coaches/:id", withIdentity(3, RoleCoach), handler.UpdateCoach)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/coaches/7", strings.NewReader(`{"cost": 55}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if store.updated != nil {
		t.Fatal("foreign record must not be updated")
	}
}

func TestDeleteCoachAsAdmin(t *testing.T) {
	store := &stubCoachStore{
		byID: map[int64]*models.Coach{7: {ID: 7, UserID: 2}},
	}
	handler := NewCoachHandler(store, &stubGoalStore{})

	app := fiber.New()
	app.Delete("/api/v1/coaches/:id", withIdentity(99, RoleAdmin), handler.DeleteCoach)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/coaches/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !store.deleted {
		t.Fatal("delete did not reach the store")
	}
}

func TestDeleteCoachAsPlainUserForbidden(t *testing.T) {
	store := &stubCoachStore{byID: map[int64]*models.Coach{7: {ID: 7, UserID: 2}}}
	handler := NewCoachHandler(store, &stubGoalStore{})

	app := fiber.New()
	app.Delete("/api/v1/coaches/:id", withIdentity(1, RoleUser), handler.DeleteCoach)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/coaches/7", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if store.deleted {
		t.Fatal("plain user must not delete a coach")
	}
}
