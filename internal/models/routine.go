package models

import "time"

// Exercise is a single prescribed movement within a daily routine.
type Exercise struct {
	Name        string `json:"name"`
	SetsReps    string `json:"sets_reps"`
	TutorialURL string `json:"tutorial_url"`
	FormTip     string `json:"form_tip"`
}

type DailyRoutine struct {
	Day       string     `json:"day"`
	Exercises []Exercise `json:"exercises"`
}

// WeeklyRoutine is the structured 7-day plan produced by a model provider.
type WeeklyRoutine struct {
	Days []DailyRoutine `json:"days"`
}

// GeneratedPlan wraps a routine with its generation metadata. Plans are
// session-scoped: the most recent one per user lives in memory only.
type GeneratedPlan struct {
	ID        string        `json:"id"`
	Provider  string        `json:"provider"`
	Routine   WeeklyRoutine `json:"routine"`
	CreatedAt time.Time     `json:"created_at"`
}
