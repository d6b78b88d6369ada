package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptailor/triptailor/internal/core/domain"
)

func TestInMemoryGoalRepository(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Create and GetByID return clones", func(t *testing.T) {
		repo := NewInMemoryGoalRepository()
		goal, _ := domain.NewGoal("u1", "Run", "", start)
		require.NoError(t, repo.Create(ctx, goal))

		fetched, err := repo.GetByID(ctx, goal.ID)
		require.NoError(t, err)

		fetched.Name = "Mutated"
		fetched.Completions = append(fetched.Completions, time.Now())

		again, err := repo.GetByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, "Run", again.Name, "Store must not observe caller mutations")
		assert.Empty(t, again.Completions)
	})

	t.Run("ToggleCompletion flips day membership", func(t *testing.T) {
		repo := NewInMemoryGoalRepository()
		goal, _ := domain.NewGoal("u1", "Run", "", start)
		require.NoError(t, repo.Create(ctx, goal))

		day := time.Date(2024, 2, 1, 15, 30, 0, 0, time.UTC)

		completed, err := repo.ToggleCompletion(ctx, goal.ID, "u1", day)
		require.NoError(t, err)
		assert.True(t, completed)

		// A different instant of the same day toggles the same entry off.
		completed, err = repo.ToggleCompletion(ctx, goal.ID, "u1", time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.False(t, completed)

		fetched, _ := repo.GetByID(ctx, goal.ID)
		assert.Empty(t, fetched.Completions)
	})

	t.Run("Update preserves completions", func(t *testing.T) {
		repo := NewInMemoryGoalRepository()
		goal, _ := domain.NewGoal("u1", "Run", "", start)
		require.NoError(t, repo.Create(ctx, goal))

		_, err := repo.ToggleCompletion(ctx, goal.ID, "u1", start)
		require.NoError(t, err)

		goal.Name = "Evening run"
		require.NoError(t, repo.Update(ctx, goal))

		fetched, _ := repo.GetByID(ctx, goal.ID)
		assert.Equal(t, "Evening run", fetched.Name)
		assert.Len(t, fetched.Completions, 1)
	})

	t.Run("UpdateStreak persists the cached value", func(t *testing.T) {
		repo := NewInMemoryGoalRepository()
		goal, _ := domain.NewGoal("u1", "Run", "", start)
		require.NoError(t, repo.Create(ctx, goal))

		require.NoError(t, repo.UpdateStreak(ctx, goal.ID, 7))

		fetched, _ := repo.GetByID(ctx, goal.ID)
		assert.Equal(t, 7, fetched.CurrentStreak)
	})

	t.Run("Unknown IDs yield ErrGoalNotFound", func(t *testing.T) {
		repo := NewInMemoryGoalRepository()

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrGoalNotFound)
		assert.ErrorIs(t, repo.UpdateStreak(ctx, "missing", 1), domain.ErrGoalNotFound)

		_, err = repo.ToggleCompletion(ctx, "missing", "u1", start)
		assert.ErrorIs(t, err, domain.ErrGoalNotFound)
	})
}

func TestInMemoryUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Email uniqueness", func(t *testing.T) {
		repo := NewInMemoryUserRepository()

		u1, _ := domain.NewUser("u1", "a@b.com", "")
		require.NoError(t, repo.Create(ctx, u1))

		u2, _ := domain.NewUser("u2", "a@b.com", "")
		assert.ErrorIs(t, repo.Create(ctx, u2), domain.ErrEmailAlreadyExists)
	})

	t.Run("GetByEmail finds the stored user", func(t *testing.T) {
		repo := NewInMemoryUserRepository()
		u, _ := domain.NewUser("u1", "a@b.com", "Alice")
		require.NoError(t, repo.Create(ctx, u))

		fetched, err := repo.GetByEmail(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", fetched.ID)

		_, err = repo.GetByEmail(ctx, "nobody@b.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
