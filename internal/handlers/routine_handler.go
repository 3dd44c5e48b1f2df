package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/frazakram/gym/internal/models"
	"github.com/frazakram/gym/internal/services"
)

type routineGenerator interface {
	Generate(ctx context.Context, userID int64, profile *models.Profile) (*models.GeneratedPlan, error)
}

type lastPlanReader interface {
	LastPlan(userID int64) *models.GeneratedPlan
}

type RoutineHandler struct {
	profileRepo profileGetter
	routines    routineGenerator
	sessions    lastPlanReader
}

func NewRoutineHandler(profileRepo profileGetter, routines routineGenerator, sessions lastPlanReader) *RoutineHandler {
	return &RoutineHandler{
		profileRepo: profileRepo,
		routines:    routines,
		sessions:    sessions,
	}
}

// Generate runs one synchronous generation call for the user's stored
// profile. Provider and schema failures collapse to the same user-facing
// message; the underlying cause is only logged.
func (h *RoutineHandler) Generate(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"error": "Please complete your profile first"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	plan, err := h.routines.Generate(c.Context(), userID, profile)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredential):
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Please provide an API key for the selected provider"})
		case errors.Is(err, services.ErrUnknownProvider):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown provider selected"})
		case errors.Is(err, services.ErrProviderUnavailable), errors.Is(err, services.ErrMalformedPlan):
			log.Printf("routine generation failed for user %d: %v", userID, err)
			return c.Status(fiber.StatusBadGateway).
				JSON(fiber.Map{"error": "Failed to generate routine. Please check your API keys."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate routine"})
		}
	}

	return c.JSON(plan)
}

func (h *RoutineHandler) LastRoutine(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	plan := h.sessions.LastPlan(userID)
	if plan == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No routine generated yet"})
	}
	return c.JSON(plan)
}
