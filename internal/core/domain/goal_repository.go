package domain

import (
	"context"
	"time"
)

type GoalRepository interface {
	// Create persists a new goal definition.
	Create(ctx context.Context, goal *Goal) error

	// GetByID retrieves a goal with its completion snapshot loaded.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// ListByUserID retrieves all goals owned by a user, completions included,
	// ordered by start date.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	// Update persists name and cadence changes.
	Update(ctx context.Context, goal *Goal) error

	// Delete permanently removes a goal and its completion history.
	Delete(ctx context.Context, id string) error

	// ToggleCompletion flips a single day's completion: adds it when absent,
	// removes it when present. Returns whether the day is completed after the
	// toggle. Day-level uniqueness must hold regardless of the instant given.
	ToggleCompletion(ctx context.Context, goalID, userID string, day time.Time) (bool, error)

	// UpdateStreak stores the denormalized current streak for a goal.
	UpdateStreak(ctx context.Context, id string, current int) error
}
