package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/frazakram/gym/internal/models"
)

// OpenAIProvider calls the chat completions API with a strict json_schema
// response format, so the reply content is a WeeklyRoutine document or an
// API-side refusal.
type OpenAIProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAIProvider(model string) *OpenAIProvider {
	return &OpenAIProvider{
		baseURL:    "https://api.openai.com",
		model:      model,
		httpClient: http.DefaultClient,
	}
}

func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

type openAIRequest struct {
	Model          string               `json:"model"`
	Messages       []openAIMessage      `json:"messages"`
	Temperature    float64              `json:"temperature"`
	ResponseFormat openAIResponseFormat `json:"response_format"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type       string           `json:"type"`
	JSONSchema openAIJSONSchema `json:"json_schema"`
}

type openAIJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *OpenAIProvider) GenerateRoutine(ctx context.Context, apiKey string, prompt Prompt) (*models.WeeklyRoutine, error) {
	payload := openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature: 0.7,
		ResponseFormat: openAIResponseFormat{
			Type: "json_schema",
			JSONSchema: openAIJSONSchema{
				Name:   "weekly_routine",
				Strict: true,
				Schema: routineSchema(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal completions request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build completions request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformedPlan, err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrMalformedPlan)
	}
	if refusal := decoded.Choices[0].Message.Refusal; refusal != "" {
		return nil, fmt.Errorf("%w: model refused: %s", ErrMalformedPlan, refusal)
	}

	var routine models.WeeklyRoutine
	if err := json.Unmarshal([]byte(decoded.Choices[0].Message.Content), &routine); err != nil {
		return nil, fmt.Errorf("%w: decode message content: %v", ErrMalformedPlan, err)
	}
	return &routine, nil
}
