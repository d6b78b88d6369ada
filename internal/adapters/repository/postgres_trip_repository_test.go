package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptailor/triptailor/internal/core/domain"
)

func newIntegrationTrip(t *testing.T, userID string) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(userID,
		domain.ItineraryInput{
			Destination: "Porto",
			StartDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
			Preferences: []string{"wine", "river walks"},
		},
		domain.ItineraryPlan{
			Itinerary: []domain.DayPlan{
				{Day: 1, Title: "Ribeira", Activities: []string{"Dom Luis bridge"}, MealSuggestions: "Francesinha"},
			},
			PackingList: []string{"Light jacket"},
			LocalTips:   []string{"Port cellars close early"},
		})
	require.NoError(t, err)
	return trip
}

func TestPostgresTripRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanupTables(t, db)
	defer cleanupTables(t, db)

	repo := NewPostgresTripRepository(db)
	ctx := context.Background()

	userID := createTestUser(t, db)
	trip := newIntegrationTrip(t, userID)

	t.Run("Create", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, trip))
	})

	t.Run("GetByID round-trips preferences and plan", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, trip.ID)
		require.NoError(t, err)

		assert.Equal(t, "Porto", fetched.Destination)
		assert.Equal(t, []string{"wine", "river walks"}, fetched.Preferences)
		require.Len(t, fetched.Plan.Itinerary, 1)
		assert.Equal(t, "Ribeira", fetched.Plan.Itinerary[0].Title)
		assert.Equal(t, []string{"Port cellars close early"}, fetched.Plan.LocalTips)
	})

	t.Run("ListByUserID is newest first", func(t *testing.T) {
		second := newIntegrationTrip(t, userID)
		second.CreatedAt = trip.CreatedAt.Add(time.Minute)
		require.NoError(t, repo.Create(ctx, second))

		trips, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Equal(t, second.ID, trips[0].ID)
		assert.Equal(t, trip.ID, trips[1].ID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, trip.ID))

		_, err := repo.GetByID(ctx, trip.ID)
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})

	t.Run("Unknown trip", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrTripNotFound)
	})
}
