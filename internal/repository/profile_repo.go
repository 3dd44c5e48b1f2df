package repository

import (
	"context"

	"github.com/frazakram/gym/internal/models"
)

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type SaveProfileInput struct {
	Age          int
	WeightKG     float64
	HeightCM     float64
	Gender       string
	Goal         string
	GoalWeightKG *float64
	Level        string
	Tenure       string
	Notes        string
}

// Upsert inserts the profile row for userID or rewrites every column if one
// exists already. There are no partial updates: a save replaces the whole row.
func (r *ProfileRepository) Upsert(ctx context.Context, userID int64, input SaveProfileInput) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (user_id, age, weight_kg, height_cm, gender, goal, goal_weight_kg, level, tenure, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET age = EXCLUDED.age,
			weight_kg = EXCLUDED.weight_kg,
			height_cm = EXCLUDED.height_cm,
			gender = EXCLUDED.gender,
			goal = EXCLUDED.goal,
			goal_weight_kg = EXCLUDED.goal_weight_kg,
			level = EXCLUDED.level,
			tenure = EXCLUDED.tenure,
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING user_id, age, weight_kg, height_cm, gender, goal, goal_weight_kg, level, tenure, notes, updated_at
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query,
		userID,
		input.Age,
		input.WeightKG,
		input.HeightCM,
		input.Gender,
		input.Goal,
		input.GoalWeightKG,
		input.Level,
		input.Tenure,
		input.Notes,
	).Scan(
		&profile.UserID,
		&profile.Age,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.Gender,
		&profile.Goal,
		&profile.GoalWeightKG,
		&profile.Level,
		&profile.Tenure,
		&profile.Notes,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByUserID returns the user's profile, or pgx.ErrNoRows when none exists.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT user_id, age, weight_kg, height_cm, gender, goal, goal_weight_kg, level, tenure, notes, updated_at
		FROM profiles
		WHERE user_id = $1
	`
	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Age,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.Gender,
		&profile.Goal,
		&profile.GoalWeightKG,
		&profile.Level,
		&profile.Tenure,
		&profile.Notes,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
