package services

import (
	"context"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/progress"
	"github.com/triptailor/triptailor/internal/core/workers"
)

type GoalService struct {
	repo   domain.GoalRepository
	worker *workers.StreakWorker
}

func NewGoalService(repo domain.GoalRepository, worker *workers.StreakWorker) *GoalService {
	return &GoalService{
		repo:   repo,
		worker: worker,
	}
}

type CreateGoalInput struct {
	UserID    string
	Name      string
	Cadence   string
	StartDate time.Time
}

type UpdateGoalInput struct {
	ID      string
	UserID  string
	Name    string
	Cadence string
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, input.Name, input.Cadence, input.StartDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		if err := goal.Rename(input.Name); err != nil {
			return nil, err
		}
	}

	if input.Cadence != "" {
		if err := goal.ChangeCadence(input.Cadence); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ToggleCompletion flips a single day's completion for a goal: done becomes
// not-done and vice versa. The toggle is idempotent at day granularity, so
// toggling twice restores the original state. Returns the post-toggle
// completion state and the freshly computed current streak.
func (s *GoalService) ToggleCompletion(ctx context.Context, goalID, userID string, date time.Time) (bool, int, error) {
	goal, err := s.GetByID(ctx, goalID, userID)
	if err != nil {
		return false, 0, err
	}

	now := time.Now().UTC()
	day := progress.NewDayKey(date)

	if day.Before(progress.NewDayKey(goal.StartDate)) {
		return false, 0, domain.ErrCompletionBeforeStart
	}
	if progress.NewDayKey(now).Before(day) {
		return false, 0, domain.ErrCompletionInFuture
	}

	completed, err := s.repo.ToggleCompletion(ctx, goalID, userID, date)
	if err != nil {
		return false, 0, err
	}

	updated, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return false, 0, err
	}

	streak := progress.CurrentStreak(progress.BuildIndex(updated), now)

	s.worker.Enqueue(goalID)

	return completed, streak, nil
}

// CurrentStreak recomputes the streak from the stored snapshot. The cached
// current_streak column is refreshed by the worker and may lag; this is the
// authoritative value.
func (s *GoalService) CurrentStreak(ctx context.Context, goalID, userID string, now time.Time) (int, error) {
	goal, err := s.GetByID(ctx, goalID, userID)
	if err != nil {
		return 0, err
	}

	return progress.CurrentStreak(progress.BuildIndex(goal), now), nil
}

// CompletionsForMonth returns the goal's completion days falling in the
// calendar month containing the given date.
func (s *GoalService) CompletionsForMonth(ctx context.Context, goalID, userID string, month time.Time) ([]time.Time, error) {
	goal, err := s.GetByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	days := make([]time.Time, 0)
	for _, c := range goal.Completions {
		c = c.UTC()
		if c.Year() == month.Year() && c.Month() == month.Month() {
			days = append(days, c)
		}
	}

	return days, nil
}
