package models

import "time"

// Enum values accepted for profile fields. The generator interpolates these
// verbatim into the model prompt, so they are stored as display strings.
var (
	Genders = []string{"Male", "Female", "Non-binary", "Prefer not to say"}
	Goals   = []string{"General fitness", "Fat loss", "Muscle gain", "Strength", "Recomposition", "Endurance"}
	Levels  = []string{"Beginner", "Regular", "Expert"}
)

// Profile is a user's anthropometric and goal data, one row per user.
// GoalWeightKG is nil when the user did not provide one; a 0 submitted by a
// form is treated as "unset" and never stored literally.
type Profile struct {
	UserID       int64     `json:"user_id"`
	Age          int       `json:"age"`
	WeightKG     float64   `json:"weight_kg"`
	HeightCM     float64   `json:"height_cm"`
	Gender       string    `json:"gender"`
	Goal         string    `json:"goal"`
	GoalWeightKG *float64  `json:"goal_weight_kg,omitempty"`
	Level        string    `json:"level"`
	Tenure       string    `json:"tenure"`
	Notes        string    `json:"notes"`
	UpdatedAt    time.Time `json:"updated_at"`
}
