package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frazakram/gym/internal/models"
)

var (
	ErrUnknownProvider     = errors.New("unknown model provider")
	ErrMissingCredential   = errors.New("no API key configured for provider")
	ErrProviderUnavailable = errors.New("model provider request failed")
	ErrMalformedPlan       = errors.New("model output does not match the routine schema")
)

// Prompt is a role-tagged instruction for a model backend.
type Prompt struct {
	System string
	User   string
}

// ModelProvider is one selectable language-model backend. Implementations
// must return output conforming to the WeeklyRoutine schema or fail whole;
// partially decoded plans are never surfaced.
type ModelProvider interface {
	Name() string
	GenerateRoutine(ctx context.Context, apiKey string, prompt Prompt) (*models.WeeklyRoutine, error)
}

const routineSystemPrompt = "You are an expert personal trainer and strength coach. " +
	"You create safe, realistic, highly personalized 7-day gym routines."

const routineUserTemplate = `Create a detailed one-week gym routine for a user with the following profile (use ALL fields):
- Age: %d
- Current weight: %.1f kg
- Height: %.1f cm
- Gender: %s
- Primary goal: %s
- Goal weight (optional): %s
- Experience Level: %s (Beginner, Regular, Expert)
- Gym Tenure / Training history: %s
- Additional comments/constraints: %s

Requirements:
- Choose a weekly split and number of training days appropriate for the goal + experience level.
- Include at least 1 rest/recovery day unless the user is advanced AND notes explicitly request otherwise.
- Adjust volume/intensity to match the goal (fat loss vs muscle gain vs strength vs recomposition vs endurance vs general fitness).
- If notes mention injuries/pain/equipment limits, avoid aggravating movements and propose safer substitutions.
- Use realistic set/rep prescriptions; include rest guidance in sets_reps when helpful.

Output rules:
- Structure the response as a weekly plan of exactly 7 days.
- For each exercise, include a REAL video tutorial URL and a "form_tip" describing how to do it correctly.`

// BuildRoutinePrompt renders the fixed trainer instruction with the profile
// interpolated. Missing optional fields get the documented defaults so the
// template never sees empty slots.
func BuildRoutinePrompt(profile *models.Profile) Prompt {
	gender := strings.TrimSpace(profile.Gender)
	if gender == "" {
		gender = "Prefer not to say"
	}
	goal := strings.TrimSpace(profile.Goal)
	if goal == "" {
		goal = "General fitness"
	}
	goalWeight := "not specified"
	if profile.GoalWeightKG != nil {
		goalWeight = fmt.Sprintf("%.1f kg", *profile.GoalWeightKG)
	}

	return Prompt{
		System: routineSystemPrompt,
		User: fmt.Sprintf(routineUserTemplate,
			profile.Age,
			profile.WeightKG,
			profile.HeightCM,
			gender,
			goal,
			goalWeight,
			profile.Level,
			profile.Tenure,
			profile.Notes,
		),
	}
}

// routineSchema is the JSON schema both backends are required to conform to.
// Every field is required and no extra properties are accepted, so a decoded
// response either is a complete WeeklyRoutine or a schema violation.
func routineSchema() map[string]any {
	exercise := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "description": "Name of the exercise"},
			"sets_reps":    map[string]any{"type": "string", "description": "Sets and reps, e.g. '3 sets of 12 reps'"},
			"tutorial_url": map[string]any{"type": "string", "description": "Real video tutorial URL for the exercise"},
			"form_tip":     map[string]any{"type": "string", "description": "2-3 sentence guide on proper form and technique"},
		},
		"required":             []string{"name", "sets_reps", "tutorial_url", "form_tip"},
		"additionalProperties": false,
	}
	day := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"day":       map[string]any{"type": "string", "description": "Day label, e.g. 'Day 1: Chest & Triceps'"},
			"exercises": map[string]any{"type": "array", "items": exercise},
		},
		"required":             []string{"day", "exercises"},
		"additionalProperties": false,
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"days": map[string]any{
				"type":        "array",
				"items":       day,
				"description": "7 days of workout routines",
			},
		},
		"required":             []string{"days"},
		"additionalProperties": false,
	}
}
