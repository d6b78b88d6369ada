package services

import (
	"context"
	"fmt"

	"github.com/triptailor/triptailor/internal/core/domain"
)

type TripService struct {
	repo    domain.TripRepository
	planner domain.ItineraryPlanner
}

func NewTripService(repo domain.TripRepository, planner domain.ItineraryPlanner) *TripService {
	return &TripService{
		repo:    repo,
		planner: planner,
	}
}

// Generate asks the planner for a fresh itinerary. Nothing is persisted:
// the client decides whether to save the result.
func (s *TripService) Generate(ctx context.Context, input domain.ItineraryInput) (*domain.ItineraryPlan, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.planner.GenerateItinerary(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlannerUnavailable, err)
	}
	if plan == nil || len(plan.Itinerary) == 0 {
		return nil, fmt.Errorf("%w: planner returned an empty plan", domain.ErrPlannerUnavailable)
	}

	return plan, nil
}

func (s *TripService) Save(ctx context.Context, userID string, input domain.ItineraryInput, plan domain.ItineraryPlan) (*domain.Trip, error) {
	trip, err := domain.NewTrip(userID, input, plan)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, trip); err != nil {
		return nil, err
	}

	return trip, nil
}

func (s *TripService) ListByUserID(ctx context.Context, userID string) ([]*domain.Trip, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *TripService) GetByID(ctx context.Context, id, userID string) (*domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, domain.ErrTripNotFound
	}
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
