package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrDestinationEmpty   = errors.New("destination cannot be empty")
	ErrInvalidTripDates   = errors.New("trip end date cannot be before start date")
	ErrEmptyItinerary     = errors.New("itinerary plan has no days")
	ErrPlannerUnavailable = errors.New("itinerary planner unavailable")
)

// DayPlan is one day of a generated itinerary.
type DayPlan struct {
	Day             int      `json:"day"`
	Title           string   `json:"title"`
	Activities      []string `json:"activities"`
	MealSuggestions string   `json:"mealSuggestions"`
}

// ItineraryPlan is the structured output of the planner: a day-by-day plan
// plus a packing list and local tips.
type ItineraryPlan struct {
	Itinerary   []DayPlan `json:"itinerary"`
	PackingList []string  `json:"packingList"`
	LocalTips   []string  `json:"localTips"`
}

type ItineraryInput struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Preferences []string
}

// ItineraryPlanner is the external generation collaborator. The core never
// cares how the plan is produced, only that it comes back structured.
type ItineraryPlanner interface {
	GenerateItinerary(ctx context.Context, input ItineraryInput) (*ItineraryPlan, error)
}

// Trip is a saved itinerary.
type Trip struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Destination string        `json:"destination"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Preferences []string      `json:"preferences"`
	Plan        ItineraryPlan `json:"plan"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (in ItineraryInput) Validate() error {
	if strings.TrimSpace(in.Destination) == "" {
		return ErrDestinationEmpty
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return ErrInvalidTripDates
	}
	return nil
}

func NewTrip(userID string, input ItineraryInput, plan ItineraryPlan) (*Trip, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if len(plan.Itinerary) == 0 {
		return nil, ErrEmptyItinerary
	}

	preferences := input.Preferences
	if preferences == nil {
		preferences = []string{}
	}

	return &Trip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Destination: strings.TrimSpace(input.Destination),
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		Preferences: preferences,
		Plan:        plan,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
