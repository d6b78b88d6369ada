package domain

import "context"

type TripRepository interface {
	// Create persists a saved trip.
	Create(ctx context.Context, trip *Trip) error

	// GetByID retrieves a single trip.
	GetByID(ctx context.Context, id string) (*Trip, error)

	// ListByUserID retrieves all trips of a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Trip, error)

	// Delete permanently removes a trip.
	Delete(ctx context.Context, id string) error
}
