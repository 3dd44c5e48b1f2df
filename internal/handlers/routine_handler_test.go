package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/frazakram/gym/internal/models"
	"github.com/frazakram/gym/internal/services"
)

type stubRoutineGenerator struct {
	plan        *models.GeneratedPlan
	err         error
	calls       int
	lastProfile *models.Profile
}

func (s *stubRoutineGenerator) Generate(_ context.Context, _ int64, profile *models.Profile) (*models.GeneratedPlan, error) {
	s.calls++
	s.lastProfile = profile
	return s.plan, s.err
}

type stubLastPlanReader struct {
	plan *models.GeneratedPlan
}

func (s *stubLastPlanReader) LastPlan(_ int64) *models.GeneratedPlan {
	return s.plan
}

func newRoutineTestApp(handler *RoutineHandler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return c.Next()
	})
	app.Post("/api/v1/routines/generate", handler.Generate)
	app.Get("/api/v1/routines/last", handler.LastRoutine)
	return app
}

func testPlan() *models.GeneratedPlan {
	return &models.GeneratedPlan{
		ID:       "3d7c2f14-6a21-4d55-9f3e-1b8a34e90c77",
		Provider: "Anthropic",
		Routine: models.WeeklyRoutine{Days: []models.DailyRoutine{{
			Day: "Day 1: Push",
			Exercises: []models.Exercise{{
				Name:        "Bench Press",
				SetsReps:    "4 sets of 6 reps",
				TutorialURL: "https://youtu.be/bench",
				FormTip:     "Keep your shoulder blades pinned. Touch the bar to mid chest.",
			}},
		}}},
	}
}

func TestGenerateRequiresProfile(t *testing.T) {
	generator := &stubRoutineGenerator{plan: testPlan()}
	handler := NewRoutineHandler(&stubProfileGetter{err: pgx.ErrNoRows}, generator, &stubLastPlanReader{})
	app := newRoutineTestApp(handler)

	resp := postJSON(t, app, "/api/v1/routines/generate", map[string]string{})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 without a profile, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Please complete your profile first" {
		t.Fatalf("unexpected message %q", body["error"])
	}
	if generator.calls != 0 {
		t.Fatalf("generator must not run without a profile")
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	generator := &stubRoutineGenerator{err: services.ErrMissingCredential}
	handler := NewRoutineHandler(&stubProfileGetter{profile: &models.Profile{UserID: 42}}, generator, &stubLastPlanReader{})
	app := newRoutineTestApp(handler)

	resp := postJSON(t, app, "/api/v1/routines/generate", map[string]string{})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGenerateCollapsesBackendFailures(t *testing.T) {
	for name, genErr := range map[string]error{
		"provider error":   services.ErrProviderUnavailable,
		"schema violation": services.ErrMalformedPlan,
	} {
		generator := &stubRoutineGenerator{err: genErr}
		handler := NewRoutineHandler(&stubProfileGetter{profile: &models.Profile{UserID: 42}}, generator, &stubLastPlanReader{})
		app := newRoutineTestApp(handler)

		resp := postJSON(t, app, "/api/v1/routines/generate", map[string]string{})
		if resp.StatusCode != fiber.StatusBadGateway {
			t.Fatalf("%s: expected 502, got %d", name, resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode body: %v", name, err)
		}
		if body["error"] != "Failed to generate routine. Please check your API keys." {
			t.Fatalf("%s: unexpected message %q", name, body["error"])
		}
	}
}

func TestGenerateReturnsPlan(t *testing.T) {
	plan := testPlan()
	generator := &stubRoutineGenerator{plan: plan}
	profile := &models.Profile{UserID: 42, Age: 30, Goal: "Muscle gain"}
	handler := NewRoutineHandler(&stubProfileGetter{profile: profile}, generator, &stubLastPlanReader{})
	app := newRoutineTestApp(handler)

	resp := postJSON(t, app, "/api/v1/routines/generate", map[string]string{})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got models.GeneratedPlan
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode plan: %v", err)
	}
	if got.ID != plan.ID || len(got.Routine.Days) != 1 {
		t.Fatalf("unexpected plan %+v", got)
	}
	if generator.lastProfile != profile {
		t.Fatalf("expected stored profile to be passed through")
	}
}

func TestLastRoutine(t *testing.T) {
	handler := NewRoutineHandler(&stubProfileGetter{}, &stubRoutineGenerator{}, &stubLastPlanReader{})
	app := newRoutineTestApp(handler)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/routines/last", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 with no plan, got %d", resp.StatusCode)
	}

	handler = NewRoutineHandler(&stubProfileGetter{}, &stubRoutineGenerator{}, &stubLastPlanReader{plan: testPlan()})
	app = newRoutineTestApp(handler)
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/routines/last", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 with a plan, got %d", resp.StatusCode)
	}
}
