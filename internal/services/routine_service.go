package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frazakram/gym/internal/models"
)

type sessionStateStore interface {
	SelectedProvider(userID int64) string
	ResolveKey(userID int64, provider string) string
	SetLastPlan(userID int64, plan *models.GeneratedPlan)
}

// RoutineService runs the single-step generation pipeline: resolve the
// session's provider and credential, render the prompt, make one synchronous
// backend call and validate the returned plan. No retries, no fallback
// between providers.
type RoutineService struct {
	providers map[string]ModelProvider
	sessions  sessionStateStore
}

func NewRoutineService(sessions sessionStateStore, providers ...ModelProvider) *RoutineService {
	byName := make(map[string]ModelProvider, len(providers))
	for _, provider := range providers {
		byName[provider.Name()] = provider
	}
	return &RoutineService{
		providers: byName,
		sessions:  sessions,
	}
}

// Generate produces a fresh weekly plan for the profile and stores it as the
// session's last plan. Returns ErrMissingCredential before any network
// attempt when no key is available for the selected provider.
func (s *RoutineService) Generate(ctx context.Context, userID int64, profile *models.Profile) (*models.GeneratedPlan, error) {
	providerName := s.sessions.SelectedProvider(userID)
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, ErrUnknownProvider
	}

	apiKey := s.sessions.ResolveKey(userID, providerName)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredential, providerName)
	}

	routine, err := provider.GenerateRoutine(ctx, apiKey, BuildRoutinePrompt(profile))
	if err != nil {
		return nil, err
	}
	if err := validateRoutine(routine); err != nil {
		return nil, err
	}

	plan := &models.GeneratedPlan{
		ID:        uuid.NewString(),
		Provider:  providerName,
		Routine:   *routine,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions.SetLastPlan(userID, plan)
	return plan, nil
}

// validateRoutine enforces the structural contract: exactly 7 days, every
// day labeled with at least one exercise, every exercise with all four
// fields. The plan is accepted whole or rejected whole; domain correctness
// of the content stays with the model.
func validateRoutine(routine *models.WeeklyRoutine) error {
	if routine == nil {
		return fmt.Errorf("%w: empty plan", ErrMalformedPlan)
	}
	if len(routine.Days) != 7 {
		return fmt.Errorf("%w: expected 7 days, got %d", ErrMalformedPlan, len(routine.Days))
	}
	for i, day := range routine.Days {
		if strings.TrimSpace(day.Day) == "" {
			return fmt.Errorf("%w: day %d has no label", ErrMalformedPlan, i+1)
		}
		if len(day.Exercises) == 0 {
			return fmt.Errorf("%w: day %d has no exercises", ErrMalformedPlan, i+1)
		}
		for j, exercise := range day.Exercises {
			if strings.TrimSpace(exercise.Name) == "" ||
				strings.TrimSpace(exercise.SetsReps) == "" ||
				strings.TrimSpace(exercise.TutorialURL) == "" ||
				strings.TrimSpace(exercise.FormTip) == "" {
				return fmt.Errorf("%w: day %d exercise %d is missing required fields", ErrMalformedPlan, i+1, j+1)
			}
		}
	}
	return nil
}
