package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EngineNeo/FitConnect-Backend/internal/config"
	"github.com/EngineNeo/FitConnect-Backend/internal/database"
	"github.com/EngineNeo/FitConnect-Backend/internal/models"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
	"github.com/EngineNeo/FitConnect-Backend/internal/routes"
	"github.com/EngineNeo/FitConnect-Backend/pkg/utils"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// 3. Ensure the review account exists before the API starts taking traffic
	if cfg.AdminBootstrapEnabled() {
		if err := ensureAdminAccount(cfg, database.DB); err != nil {
			log.Fatalf("Failed to bootstrap admin account: %v", err)
		}
	}

	// 4. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	if cfg.RequestLogging && cfg.AppEnv != "test" {
		app.Use(logger.New())
	}
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, database.DB)

	// 5. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// ensureAdminAccount creates the configured admin user on first boot. The
// admin role itself is derived at login from the configured email, so the
// account is an ordinary user row plus credentials.
func ensureAdminAccount(cfg *config.Config, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	admin := &models.User{
		Email:     cfg.AdminEmail,
		FirstName: "Admin",
		LastName:  "Account",
	}
	if err := repository.NewUserRepository(tx).CreateUser(ctx, admin); err != nil {
		return err
	}
	if err := repository.NewCredentialsRepository(tx).Set(ctx, admin.ID, hash); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("Admin account created for %s", cfg.AdminEmail)
	return nil
}
