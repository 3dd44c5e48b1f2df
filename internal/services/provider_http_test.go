package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnthropicProviderDecodesToolUse(t *testing.T) {
	var gotRequest anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "input": null},
				{"type": "tool_use", "input": {"days": [{"day": "Day 1", "exercises": [
					{"name": "Push Up", "sets_reps": "3x12", "tutorial_url": "https://youtu.be/x", "form_tip": "Keep a straight line from head to heels. Lower with control."}
				]}]}}
			]
		}`))
	}))
	defer server.Close()

	provider := &AnthropicProvider{baseURL: server.URL, model: "claude-test", httpClient: server.Client()}
	routine, err := provider.GenerateRoutine(context.Background(), "test-key", Prompt{System: "persona", User: "profile"})
	if err != nil {
		t.Fatalf("GenerateRoutine: %v", err)
	}
	if len(routine.Days) != 1 || routine.Days[0].Exercises[0].Name != "Push Up" {
		t.Fatalf("unexpected routine: %+v", routine)
	}

	if gotRequest.System != "persona" {
		t.Fatalf("expected system prompt to be sent, got %q", gotRequest.System)
	}
	if gotRequest.ToolChoice["name"] != "weekly_routine" {
		t.Fatalf("expected forced tool choice, got %+v", gotRequest.ToolChoice)
	}
}

func TestAnthropicProviderMapsHTTPFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"type": "rate_limit_error"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := &AnthropicProvider{baseURL: server.URL, model: "claude-test", httpClient: server.Client()}
	_, err := provider.GenerateRoutine(context.Background(), "test-key", Prompt{})
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestAnthropicProviderRejectsMissingToolUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content": [{"type": "text"}]}`))
	}))
	defer server.Close()

	provider := &AnthropicProvider{baseURL: server.URL, model: "claude-test", httpClient: server.Client()}
	_, err := provider.GenerateRoutine(context.Background(), "test-key", Prompt{})
	if !errors.Is(err, ErrMalformedPlan) {
		t.Fatalf("expected ErrMalformedPlan, got %v", err)
	}
}

func TestOpenAIProviderDecodesContent(t *testing.T) {
	var gotRequest openAIRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"content": "{\"days\": [{\"day\": \"Day 1\", \"exercises\": [{\"name\": \"Row\", \"sets_reps\": \"3x10\", \"tutorial_url\": \"https://youtu.be/r\", \"form_tip\": \"Pull to your waist. Avoid shrugging.\"}]}]}"}}]
		}`))
	}))
	defer server.Close()

	provider := &OpenAIProvider{baseURL: server.URL, model: "gpt-test", httpClient: server.Client()}
	routine, err := provider.GenerateRoutine(context.Background(), "test-key", Prompt{System: "persona", User: "profile"})
	if err != nil {
		t.Fatalf("GenerateRoutine: %v", err)
	}
	if len(routine.Days) != 1 || routine.Days[0].Exercises[0].Name != "Row" {
		t.Fatalf("unexpected routine: %+v", routine)
	}

	if gotRequest.ResponseFormat.Type != "json_schema" {
		t.Fatalf("expected json_schema response format, got %q", gotRequest.ResponseFormat.Type)
	}
	if !gotRequest.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("expected strict schema enforcement")
	}
	if len(gotRequest.Messages) != 2 || gotRequest.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %+v", gotRequest.Messages)
	}
}

func TestOpenAIProviderRejectsUnparsableContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "sorry, here is a plan in prose"}}]}`))
	}))
	defer server.Close()

	provider := &OpenAIProvider{baseURL: server.URL, model: "gpt-test", httpClient: server.Client()}
	_, err := provider.GenerateRoutine(context.Background(), "test-key", Prompt{})
	if !errors.Is(err, ErrMalformedPlan) {
		t.Fatalf("expected ErrMalformedPlan, got %v", err)
	}
}
