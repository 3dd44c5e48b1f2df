package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/frazakram/gym/internal/services"
)

type sessionSettingsStore interface {
	SetProvider(userID int64, provider, key string) error
	SelectedProvider(userID int64) string
	KeyAvailability(userID int64) map[string]bool
}

type SettingsHandler struct {
	sessions sessionSettingsStore
}

func NewSettingsHandler(sessions sessionSettingsStore) *SettingsHandler {
	return &SettingsHandler{sessions: sessions}
}

type updateProviderRequest struct {
	Provider string `json:"provider"`
	// APIKey is held in session memory only; it is never persisted or
	// echoed back in any response.
	APIKey string `json:"api_key"`
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	return c.JSON(fiber.Map{
		"provider":       h.sessions.SelectedProvider(userID),
		"keys_available": h.sessions.KeyAvailability(userID),
	})
}

func (h *SettingsHandler) UpdateProvider(c *fiber.Ctx) error {
	userID, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.sessions.SetProvider(userID, strings.TrimSpace(req.Provider), strings.TrimSpace(req.APIKey)); err != nil {
		if errors.Is(err, services.ErrUnknownProvider) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Provider must be Anthropic or OpenAI"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{
		"provider":       h.sessions.SelectedProvider(userID),
		"keys_available": h.sessions.KeyAvailability(userID),
	})
}
