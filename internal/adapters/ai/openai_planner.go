package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
)

const defaultBaseURL = "https://api.openai.com/v1"

var _ domain.ItineraryPlanner = (*OpenAIPlanner)(nil)

// OpenAIPlanner implements the itinerary planner port on top of the OpenAI
// chat completions API, forcing a JSON object response that matches the
// ItineraryPlan shape.
type OpenAIPlanner struct {
	APIKey  string
	Model   string
	BaseURL string

	httpClient *http.Client
}

func NewOpenAIPlanner(apiKey, model string) *OpenAIPlanner {
	return &OpenAIPlanner{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIPlanner) GenerateItinerary(ctx context.Context, input domain.ItineraryInput) (*domain.ItineraryPlan, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildUserPrompt(input)},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"

	content, err := c.complete(ctx, reqBody)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	var plan domain.ItineraryPlan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return nil, fmt.Errorf("planner: decode plan: %w", err)
	}

	if len(plan.Itinerary) == 0 {
		return nil, domain.ErrEmptyItinerary
	}

	return &plan, nil
}

// complete posts a chat completion request and returns the first choice's
// message content.
func (c *OpenAIPlanner) complete(ctx context.Context, reqBody any) (string, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatRes chatResponse
	if err := json.Unmarshal(body, &chatRes); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if chatRes.Error != nil {
			return "", fmt.Errorf("api error (%d): %s", res.StatusCode, chatRes.Error.Message)
		}
		return "", fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	if len(chatRes.Choices) == 0 {
		return "", fmt.Errorf("response has no choices")
	}

	return chatRes.Choices[0].Message.Content, nil
}
