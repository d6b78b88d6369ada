package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
)

// InMemoryGoalRepository implements the goal port with a plain map. Used by
// tests and local development without Postgres.
type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func cloneGoal(g *domain.Goal) *domain.Goal {
	clone := *g
	clone.Completions = append([]time.Time(nil), g.Completions...)
	return &clone
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[goal.ID] = cloneGoal(goal)
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return cloneGoal(goal), nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := []*domain.Goal{}
	for _, g := range r.store {
		if g.UserID == userID {
			goals = append(goals, cloneGoal(g))
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].StartDate.Before(goals[j].StartDate)
	})

	return goals, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[goal.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}

	updated := cloneGoal(goal)
	updated.Completions = append([]time.Time(nil), existing.Completions...)
	r.store[goal.ID] = updated
	return nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrGoalNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryGoalRepository) ToggleCompletion(ctx context.Context, goalID, userID string, day time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[goalID]
	if !ok {
		return false, domain.ErrGoalNotFound
	}

	dayUTC := day.UTC().Truncate(24 * time.Hour)

	for i, c := range goal.Completions {
		if c.UTC().Truncate(24 * time.Hour).Equal(dayUTC) {
			goal.Completions = append(goal.Completions[:i], goal.Completions[i+1:]...)
			return false, nil
		}
	}

	goal.Completions = append(goal.Completions, dayUTC)
	return true, nil
}

func (r *InMemoryGoalRepository) UpdateStreak(ctx context.Context, id string, current int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.store[id]
	if !ok {
		return domain.ErrGoalNotFound
	}

	goal.CurrentStreak = current
	return nil
}

// InMemoryUserRepository backs auth and token tests.
type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}

	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
