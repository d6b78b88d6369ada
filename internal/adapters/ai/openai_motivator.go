package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/triptailor/triptailor/internal/core/domain"
)

var _ domain.MotivationCoach = (*OpenAIPlanner)(nil)

// GenerateMessage implements the motivation coach port. Unlike the itinerary
// call this asks for plain text, so no response_format is sent.
func (c *OpenAIPlanner) GenerateMessage(ctx context.Context, input domain.MotivationInput) (string, error) {
	reqBody := struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: coachPrompt},
			{Role: "user", Content: BuildMotivationPrompt(input)},
		},
	}

	content, err := c.complete(ctx, reqBody)
	if err != nil {
		return "", fmt.Errorf("coach: %w", err)
	}

	message := strings.TrimSpace(strings.Trim(strings.TrimSpace(content), `"`))
	if message == "" {
		return "", fmt.Errorf("coach: response message is empty")
	}

	return message, nil
}
