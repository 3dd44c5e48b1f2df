package handlers

import (
	"strings"

	"github.com/frazakram/gym/internal/models"
)

var (
	allowedGenders = toSet(models.Genders)
	allowedGoals   = toSet(models.Goals)
	allowedLevels  = toSet(models.Levels)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Range limits mirror the profile form of the reference frontend.
func validateSaveProfileRequest(req saveProfileRequest) string {
	if req.Age < 16 || req.Age > 100 {
		return "age must be between 16 and 100"
	}
	if req.WeightKG < 30 || req.WeightKG > 300 {
		return "weight_kg must be between 30 and 300"
	}
	if req.HeightCM < 100 || req.HeightCM > 250 {
		return "height_cm must be between 100 and 250"
	}
	if _, ok := allowedGenders[strings.TrimSpace(req.Gender)]; !ok {
		return "gender must be one of: " + strings.Join(models.Genders, ", ")
	}
	if _, ok := allowedGoals[strings.TrimSpace(req.Goal)]; !ok {
		return "goal must be one of: " + strings.Join(models.Goals, ", ")
	}
	if req.GoalWeightKG > 0 && (req.GoalWeightKG < 30 || req.GoalWeightKG > 300) {
		return "goal_weight_kg must be between 30 and 300 when provided"
	}
	if _, ok := allowedLevels[strings.TrimSpace(req.Level)]; !ok {
		return "level must be one of: " + strings.Join(models.Levels, ", ")
	}
	return ""
}
