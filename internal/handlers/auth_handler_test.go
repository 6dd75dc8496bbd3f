package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
	"github.com/EngineNeo/FitConnect-Backend/pkg/utils"
)

type stubAuthUserStore struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User

	updatedID    int64
	updatedInput repository.UpdateUserInput
}

func (s *stubAuthUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubAuthUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubAuthUserStore) UpdatePartial(_ context.Context, id int64, input repository.UpdateUserInput) (*models.User, error) {
	user, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	s.updatedID = id
	s.updatedInput = input

	updated := *user
	if input.FirstName != nil {
		updated.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		updated.LastName = *input.LastName
	}
	if input.Gender != nil {
		updated.Gender = input.Gender
	}
	if input.BirthDate != nil {
		updated.BirthDate = input.BirthDate
	}
	return &updated, nil
}

type stubAuthCredentialsStore struct {
	hashes map[int64]string
}

func (s *stubAuthCredentialsStore) GetHash(_ context.Context, userID int64) (string, error) {
	hash, ok := s.hashes[userID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return hash, nil
}

type stubAuthCoachResolver struct {
	byUserID map[int64]*models.Coach
}

func (s *stubAuthCoachResolver) GetByUserID(_ context.Context, userID int64) (*models.Coach, error) {
	coach, ok := s.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return coach, nil
}

func newAuthTestHandler(users *stubAuthUserStore, creds *stubAuthCredentialsStore, coaches *stubAuthCoachResolver) *AuthHandler {
	if creds == nil {
		creds = &stubAuthCredentialsStore{}
	}
	if coaches == nil {
		coaches = &stubAuthCoachResolver{}
	}
	return NewAuthHandler(nil, users, creds, coaches, "test-secret", "admin@fitconnect.local")
}

func TestLoginResolvesCoachRole(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &stubAuthUserStore{
		byEmail: map[string]*models.User{"dana@example.com": {ID: 2, Email: "dana@example.com"}},
	}
	creds := &stubAuthCredentialsStore{hashes: map[int64]string{2: hash}}
	coaches := &stubAuthCoachResolver{byUserID: map[int64]*models.Coach{2: {ID: 7, UserID: 2}}}
	handler := newAuthTestHandler(users, creds, coaches)

	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"dana@example.com","password":"s3cret!pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Token    string `json:"token"`
		UserType string `json:"user_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.UserType != RoleCoach {
		t.Fatalf("expected coach role, got %q", body.UserType)
	}
	claims, err := utils.ValidateToken(body.Token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "2" || claims.Role != RoleCoach {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	users := &stubAuthUserStore{
		byEmail: map[string]*models.User{"dana@example.com": {ID: 2, Email: "dana@example.com"}},
	}
	creds := &stubAuthCredentialsStore{hashes: map[int64]string{2: hash}}
	handler := newAuthTestHandler(users, creds, nil)

	app := fiber.New()
	app.Post("/api/auth/login", handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"dana@example.com","password":"wrong!pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestUpdateProfileAppliesPartialEdit(t *testing.T) {
	users := &stubAuthUserStore{
		byID: map[int64]*models.User{5: {ID: 5, Email: "sam@example.com", FirstName: "Sam", LastName: "Park"}},
	}
	handler := newAuthTestHandler(users, nil, nil)

	app := fiber.New()
	app.Patch("/api/auth/me", withIdentity(5, RoleUser), handler.UpdateMe)

	req := httptest.NewRequest(http.MethodPatch, "/api/auth/me",
		strings.NewReader(`{"first_name":"  Samuel ","gender":"male"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if users.updatedID != 5 {
		t.Fatalf("expected update against user 5, got %d", users.updatedID)
	}
	if users.updatedInput.FirstName == nil || *users.updatedInput.FirstName != "Samuel" {
		t.Fatalf("first_name not trimmed and forwarded: %+v", users.updatedInput)
	}
	if users.updatedInput.Gender == nil || *users.updatedInput.Gender != "male" {
		t.Fatalf("gender not forwarded: %+v", users.updatedInput)
	}
	if users.updatedInput.LastName != nil || users.updatedInput.BirthDate != nil {
		t.Fatalf("absent fields must stay nil: %+v", users.updatedInput)
	}

	var body struct {
		User models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.User.FirstName != "Samuel" || body.User.LastName != "Park" {
		t.Fatalf("unexpected user in response: %+v", body.User)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"empty body", `{}`, "body"},
		{"unknown gender", `{"gender":"robot"}`, "gender"},
		{"blank first name", `{"first_name":"  "}`, "first_name"},
		{"bad birth date", `{"birth_date":"31-12-1990"}`, "birth_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &stubAuthUserStore{byID: map[int64]*models.User{5: {ID: 5}}}
			handler := newAuthTestHandler(users, nil, nil)

			app := fiber.New()
			app.Patch("/api/auth/me", withIdentity(5, RoleUser), handler.UpdateMe)

			req := httptest.NewRequest(http.MethodPatch, "/api/auth/me", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}

			var body struct {
				Errors fieldErrors `json:"errors"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if _, ok := body.Errors[tc.field]; !ok {
				t.Fatalf("expected error on %s, got %+v", tc.field, body.Errors)
			}
			if users.updatedID != 0 {
				t.Fatalf("store must not be touched on invalid input")
			}
		})
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	handler := newAuthTestHandler(&stubAuthUserStore{byID: map[int64]*models.User{}}, nil, nil)

	app := fiber.New()
	app.Patch("/api/auth/me", withIdentity(99, RoleUser), handler.UpdateMe)

	req := httptest.NewRequest(http.MethodPatch, "/api/auth/me", strings.NewReader(`{"first_name":"Riley"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
