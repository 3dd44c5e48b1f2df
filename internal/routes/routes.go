package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frazakram/gym/internal/config"
	"github.com/frazakram/gym/internal/handlers"
	"github.com/frazakram/gym/internal/middleware"
	"github.com/frazakram/gym/internal/repository"
	"github.com/frazakram/gym/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	sessionService := services.NewSessionService(map[string]string{
		services.ProviderAnthropic: cfg.AnthropicAPIKey,
		services.ProviderOpenAI:    cfg.OpenAIAPIKey,
	})
	routineService := services.NewRoutineService(sessionService,
		services.NewAnthropicProvider(cfg.AnthropicModel),
		services.NewOpenAIProvider(cfg.OpenAIModel),
	)

	authHandler := handlers.NewAuthHandler(userRepo, profileRepo, sessionService, cfg.JWTSecret)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	routineHandler := handlers.NewRoutineHandler(profileRepo, routineService, sessionService)
	settingsHandler := handlers.NewSettingsHandler(sessionService)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)
	auth.Post("/logout", middleware.AuthRequired(cfg.JWTSecret), authHandler.Logout)

	v1 := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	v1.Get("/profile", profileHandler.GetProfile)
	v1.Put("/profile", profileHandler.SaveProfile)

	v1.Get("/settings", settingsHandler.GetSettings)
	v1.Put("/settings/provider", settingsHandler.UpdateProvider)

	v1.Post("/routines/generate", routineHandler.Generate)
	v1.Get("/routines/last", routineHandler.LastRoutine)
}
