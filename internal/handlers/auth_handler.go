package handlers

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
	"github.com/EngineNeo/FitConnect-Backend/pkg/utils"
)

const (
	RoleUser  = "user"
	RoleCoach = "coach"
	RoleAdmin = "admin"
)

type authUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePartial(ctx context.Context, id int64, input repository.UpdateUserInput) (*models.User, error)
}

type authCredentialsStore interface {
	GetHash(ctx context.Context, userID int64) (string, error)
}

type authCoachResolver interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Coach, error)
}

type AuthHandler struct {
	db         *pgxpool.Pool
	userRepo   authUserStore
	credsRepo  authCredentialsStore
	coachRepo  authCoachResolver
	jwtSecret  string
	adminEmail string
}

func NewAuthHandler(
	db *pgxpool.Pool,
	userRepo authUserStore,
	credsRepo authCredentialsStore,
	coachRepo authCoachResolver,
	jwtSecret string,
	adminEmail string,
) *AuthHandler {
	return &AuthHandler{
		db:         db,
		userRepo:   userRepo,
		credsRepo:  credsRepo,
		coachRepo:  coachRepo,
		jwtSecret:  jwtSecret,
		adminEmail: adminEmail,
	}
}

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errs := validateRegisterRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"email": "enter a valid email address"}})
	}
	email := strings.ToLower(parsedEmail.Address)

	var birthDate *time.Time
	if req.BirthDate != nil && strings.TrimSpace(*req.BirthDate) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*req.BirthDate))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"birth_date": "birth_date must be YYYY-MM-DD"}})
		}
		birthDate = &parsed
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	user := &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Gender:    req.Gender,
		BirthDate: birthDate,
	}

	tx, err := h.db.Begin(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start registration transaction"})
	}
	defer func() {
		_ = tx.Rollback(c.Context())
	}()

	txUserRepo := repository.NewUserRepository(tx)
	txCredsRepo := repository.NewCredentialsRepository(tx)

	if err := txUserRepo.CreateUser(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	if err := txCredsRepo.Set(c.Context(), user.ID, hashed); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store credentials"})
	}

	if err := tx.Commit(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize registration"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), RoleUser, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	email := strings.ToLower(parsedEmail.Address)

	user, err := h.userRepo.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to lookup user"})
	}

	hash, err := h.credsRepo.GetHash(c.Context(), user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to lookup credentials"})
	}
	if !utils.CheckPassword(req.Password, hash) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	role := RoleUser
	if h.adminEmail != "" && user.Email == h.adminEmail {
		role = RoleAdmin
	} else if _, err := h.coachRepo.GetByUserID(c.Context(), user.ID); err == nil {
		role = RoleCoach
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve account type"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), role, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"user_type": role,
		"user":      user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{
		"user":       user,
		"engagement": user.EngagementState(),
	})
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

// UpdateMe applies a partial edit of the caller's own profile. Absent fields
// keep their stored value.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := parseActorID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errs := validateUpdateProfileRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	input := repository.UpdateUserInput{
		Gender: req.Gender,
	}
	if req.FirstName != nil {
		trimmed := strings.TrimSpace(*req.FirstName)
		input.FirstName = &trimmed
	}
	if req.LastName != nil {
		trimmed := strings.TrimSpace(*req.LastName)
		input.LastName = &trimmed
	}
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*req.BirthDate))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrors{"birth_date": "birth_date must be YYYY-MM-DD"}})
		}
		input.BirthDate = &parsed
	}

	user, err := h.userRepo.UpdatePartial(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"user": user})
}
