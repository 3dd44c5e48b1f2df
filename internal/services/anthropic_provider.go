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

const anthropicVersion = "2023-06-01"

// AnthropicProvider calls the Anthropic Messages API with tool use forced to
// the routine schema, so the model can only answer in WeeklyRoutine shape.
type AnthropicProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewAnthropicProvider(model string) *AnthropicProvider {
	return &AnthropicProvider{
		baseURL:    "https://api.anthropic.com",
		model:      model,
		httpClient: http.DefaultClient,
	}
}

func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}

type anthropicRequest struct {
	Model      string             `json:"model"`
	MaxTokens  int                `json:"max_tokens"`
	System     string             `json:"system"`
	Messages   []anthropicMessage `json:"messages"`
	Tools      []anthropicTool    `json:"tools"`
	ToolChoice map[string]string  `json:"tool_choice"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

type anthropicResponse struct {
	Content []struct {
		Type  string          `json:"type"`
		Input json.RawMessage `json:"input"`
	} `json:"content"`
}

func (p *AnthropicProvider) GenerateRoutine(ctx context.Context, apiKey string, prompt Prompt) (*models.WeeklyRoutine, error) {
	payload := anthropicRequest{
		Model:     p.model,
		MaxTokens: 8192,
		System:    prompt.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt.User},
		},
		Tools: []anthropicTool{{
			Name:        "weekly_routine",
			Description: "Record the generated 7-day workout routine",
			InputSchema: routineSchema(),
		}},
		ToolChoice: map[string]string{"type": "tool", "name": "weekly_routine"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal messages request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build messages request: %w", err)
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
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

	var decoded anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformedPlan, err)
	}

	for _, block := range decoded.Content {
		if block.Type != "tool_use" {
			continue
		}
		var routine models.WeeklyRoutine
		if err := json.Unmarshal(block.Input, &routine); err != nil {
			return nil, fmt.Errorf("%w: decode tool input: %v", ErrMalformedPlan, err)
		}
		return &routine, nil
	}

	return nil, fmt.Errorf("%w: no tool_use block in response", ErrMalformedPlan)
}
