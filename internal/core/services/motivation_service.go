package services

import (
	"context"
	"fmt"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/progress"
)

// MotivationService turns the user's current progress into a coach message.
type MotivationService struct {
	goalRepo domain.GoalRepository
	userRepo domain.UserRepository
	coach    domain.MotivationCoach
}

func NewMotivationService(goalRepo domain.GoalRepository, userRepo domain.UserRepository, coach domain.MotivationCoach) *MotivationService {
	return &MotivationService{
		goalRepo: goalRepo,
		userRepo: userRepo,
		coach:    coach,
	}
}

// MessageFor builds the progress snapshot for the user and asks the coach
// for an encouragement. Nothing is persisted.
func (s *MotivationService) MessageFor(ctx context.Context, userID string, now time.Time) (string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return "", err
	}

	summary := progress.Summarize(goals, now)

	message, err := s.coach.GenerateMessage(ctx, domain.MotivationInput{
		UserName:      user.DisplayName,
		GoalsAchieved: summary.TotalCompletions,
		GoalsTotal:    summary.TotalGoals,
		CurrentStreak: summary.BestStreak,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCoachUnavailable, err)
	}

	return message, nil
}
