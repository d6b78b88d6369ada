package domain

import (
	"context"
	"errors"
)

var ErrCoachUnavailable = errors.New("motivation coach unavailable")

// MotivationInput is the progress snapshot a coach message is written from.
type MotivationInput struct {
	UserName      string
	GoalsAchieved int
	GoalsTotal    int
	CurrentStreak int
}

// MotivationCoach writes a short personalized encouragement for the user.
type MotivationCoach interface {
	GenerateMessage(ctx context.Context, input MotivationInput) (string, error)
}
