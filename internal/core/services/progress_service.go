package services

import (
	"context"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/progress"
)

// ProgressService answers the dashboard queries. It holds no state of its
// own: every call pulls a fresh goal snapshot and recomputes from scratch,
// which is cheap at personal-tracking volumes and trivially correct.
type ProgressService struct {
	goalRepo domain.GoalRepository
}

func NewProgressService(goalRepo domain.GoalRepository) *ProgressService {
	return &ProgressService{
		goalRepo: goalRepo,
	}
}

func (s *ProgressService) Chart(ctx context.Context, userID string, start, end time.Time, granularity progress.Granularity) ([]progress.BucketCount, error) {
	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return progress.CompletionsPerBucket(goals, start, end, granularity)
}

func (s *ProgressService) Summary(ctx context.Context, userID string, now time.Time) (progress.Summary, error) {
	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return progress.Summary{}, err
	}

	return progress.Summarize(goals, now), nil
}

func (s *ProgressService) Calendar(ctx context.Context, userID string, start, end time.Time) ([]progress.DayKey, error) {
	goals, err := s.goalRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return progress.CompletedDays(goals, start, end)
}
