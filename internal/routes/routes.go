package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/EngineNeo/FitConnect-Backend/internal/config"
	"github.com/EngineNeo/FitConnect-Backend/internal/handlers"
	"github.com/EngineNeo/FitConnect-Backend/internal/middleware"
	"github.com/EngineNeo/FitConnect-Backend/internal/repository"
	"github.com/EngineNeo/FitConnect-Backend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	credsRepo := repository.NewCredentialsRepository(db)
	coachRepo := repository.NewCoachRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	physicalRepo := repository.NewPhysicalHealthLogRepository(db)
	calorieRepo := repository.NewCalorieLogRepository(db)
	waterRepo := repository.NewWaterLogRepository(db)
	mentalRepo := repository.NewMentalHealthLogRepository(db)
	requestRepo := repository.NewCoachRequestRepository(db)
	workoutRepo := repository.NewWorkoutPlanRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)

	engagementService := services.NewEngagementService(userRepo, coachRepo)
	surveyService := services.NewSurveyService(userRepo, goalRepo, physicalRepo)
	intakeService := services.NewCoachIntakeService(requestRepo, coachRepo, userRepo, goalRepo)
	workoutService := services.NewWorkoutService(workoutRepo, exerciseRepo, userRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, credsRepo, coachRepo, cfg.JWTSecret, cfg.AdminEmail)
	coachHandler := handlers.NewCoachHandler(coachRepo, goalRepo)
	engagementHandler := handlers.NewEngagementHandler(engagementService, coachRepo, userRepo)
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	becomeCoachHandler := handlers.NewBecomeCoachHandler(intakeService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseRepo)
	logHandler := handlers.NewHealthLogHandler(calorieRepo, waterRepo, mentalRepo, physicalRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Patch("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.UpdateMe)

	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	coaches := authProtected.Group("/coaches")
	coaches.Get("/", coachHandler.ListCoaches)
	coaches.Get("/clients", engagementHandler.ListClients)
	coaches.Get("/:id", coachHandler.GetCoach)
	coaches.Put("/:id", coachHandler.UpdateCoach)
	coaches.Delete("/:id", coachHandler.DeleteCoach)

	authProtected.Get("/goals", coachHandler.ListGoals)

	engagement := authProtected.Group("/engagement")
	engagement.Patch("/request", engagementHandler.RequestCoach)
	engagement.Patch("/accept", engagementHandler.AcceptClient)
	engagement.Patch("/fire", engagementHandler.FireCoach)

	authProtected.Post("/surveys/initial", surveyHandler.InitialSurvey)

	coachRequests := authProtected.Group("/coach-requests")
	coachRequests.Post("/", becomeCoachHandler.Submit)
	coachRequests.Get("/pending", middleware.RoleRequired(handlers.RoleAdmin), becomeCoachHandler.ListPending)
	coachRequests.Post("/review", middleware.RoleRequired(handlers.RoleAdmin), becomeCoachHandler.Review)

	workoutPlans := authProtected.Group("/workout-plans")
	workoutPlans.Post("/", workoutHandler.CreatePlan)
	workoutPlans.Get("/", workoutHandler.ListPlans)
	workoutPlans.Get("/:id", workoutHandler.GetPlan)

	exercises := authProtected.Group("/exercises")
	exercises.Get("/", exerciseHandler.Search)
	exercises.Get("/muscle-groups", exerciseHandler.ListMuscleGroups)
	exercises.Get("/equipment", exerciseHandler.ListEquipment)
	exercises.Post("/", middleware.RoleRequired(handlers.RoleAdmin), exerciseHandler.Create)
	exercises.Put("/:id/deactivate", middleware.RoleRequired(handlers.RoleAdmin), exerciseHandler.Deactivate)

	logs := authProtected.Group("/logs")
	logs.Post("/calories", logHandler.CreateCalorieLog)
	logs.Get("/calories", logHandler.ListCalorieLogs)
	logs.Delete("/calories/:id", logHandler.DeleteCalorieLog)
	logs.Post("/water", logHandler.CreateWaterLog)
	logs.Get("/water", logHandler.ListWaterLogs)
	logs.Delete("/water/:id", logHandler.DeleteWaterLog)
	logs.Post("/mood", logHandler.CreateMoodLog)
	logs.Get("/mood", logHandler.ListMoodLogs)
	logs.Delete("/mood/:id", logHandler.DeleteMoodLog)
	logs.Get("/physical", logHandler.ListPhysicalLogs)
}
