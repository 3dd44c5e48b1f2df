package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/frazakram/gym/internal/models"
	"github.com/frazakram/gym/internal/repository"
)

type profileStore interface {
	Upsert(ctx context.Context, userID int64, input repository.SaveProfileInput) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type ProfileHandler struct {
	profileRepo profileStore
}

func NewProfileHandler(profileRepo profileStore) *ProfileHandler {
	return &ProfileHandler{profileRepo: profileRepo}
}

type saveProfileRequest struct {
	Age          int     `json:"age"`
	WeightKG     float64 `json:"weight_kg"`
	HeightCM     float64 `json:"height_cm"`
	Gender       string  `json:"gender"`
	Goal         string  `json:"goal"`
	GoalWeightKG float64 `json:"goal_weight_kg"`
	Level        string  `json:"level"`
	Tenure       string  `json:"tenure"`
	Notes        string  `json:"notes"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profileRepo.GetByUserID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}
	return c.JSON(profile)
}

// SaveProfile upserts the whole profile row; every field is rewritten on
// each save.
func (h *ProfileHandler) SaveProfile(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req saveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := validateSaveProfileRequest(req); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	// 0 (or anything non-positive) means the goal weight was not provided.
	var goalWeight *float64
	if req.GoalWeightKG > 0 {
		goalWeight = &req.GoalWeightKG
	}

	profile, err := h.profileRepo.Upsert(c.Context(), userID, repository.SaveProfileInput{
		Age:          req.Age,
		WeightKG:     req.WeightKG,
		HeightCM:     req.HeightCM,
		Gender:       strings.TrimSpace(req.Gender),
		Goal:         strings.TrimSpace(req.Goal),
		GoalWeightKG: goalWeight,
		Level:        strings.TrimSpace(req.Level),
		Tenure:       strings.TrimSpace(req.Tenure),
		Notes:        strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save profile"})
	}
	return c.JSON(profile)
}
