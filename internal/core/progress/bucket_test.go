package progress_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triptailor/triptailor/internal/core/progress"
)

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketize_Day(t *testing.T) {
	t.Run("Success: One bucket per day, inclusive ends", func(t *testing.T) {
		buckets, err := progress.Bucketize(utcDay(2024, 3, 1), utcDay(2024, 3, 7), progress.GranularityDay)

		require.NoError(t, err)
		require.Len(t, buckets, 7)

		assert.Equal(t, "2024-03-01", buckets[0].Label)
		assert.Equal(t, buckets[0].Start, buckets[0].End)
		assert.Equal(t, "2024-03-07", buckets[6].Label)
	})

	t.Run("Success: Single day range yields one bucket", func(t *testing.T) {
		d := utcDay(2024, 3, 1)
		buckets, err := progress.Bucketize(d, d, progress.GranularityDay)

		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, d, buckets[0].Start)
		assert.Equal(t, d, buckets[0].End)
	})

	t.Run("Success: Time-of-day is ignored", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC)
		buckets, err := progress.Bucketize(start, end, progress.GranularityDay)

		require.NoError(t, err)
		assert.Len(t, buckets, 2)
	})
}

func TestBucketize_Week(t *testing.T) {
	t.Run("Success: Weeks run Monday through Sunday", func(t *testing.T) {
		// 2024-03-06 is a Wednesday, 2024-03-19 is a Tuesday.
		buckets, err := progress.Bucketize(utcDay(2024, 3, 6), utcDay(2024, 3, 19), progress.GranularityWeek)

		require.NoError(t, err)
		require.Len(t, buckets, 3)

		assert.Equal(t, "2024-03-04", buckets[0].Label)
		assert.Equal(t, utcDay(2024, 3, 4), buckets[0].Start)
		assert.Equal(t, utcDay(2024, 3, 10), buckets[0].End)

		assert.Equal(t, utcDay(2024, 3, 11), buckets[1].Start)
		assert.Equal(t, utcDay(2024, 3, 18), buckets[2].Start)
		assert.Equal(t, utcDay(2024, 3, 24), buckets[2].End)
	})

	t.Run("Success: Sunday belongs to the week started the previous Monday", func(t *testing.T) {
		sunday := utcDay(2024, 3, 10)
		buckets, err := progress.Bucketize(sunday, sunday, progress.GranularityWeek)

		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, utcDay(2024, 3, 4), buckets[0].Start)
		assert.Equal(t, sunday, buckets[0].End)
	})

	t.Run("Success: Boundaries may spill outside the range", func(t *testing.T) {
		buckets, err := progress.Bucketize(utcDay(2024, 3, 6), utcDay(2024, 3, 8), progress.GranularityWeek)

		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.True(t, buckets[0].Start.Before(utcDay(2024, 3, 6)))
		assert.True(t, buckets[0].End.After(utcDay(2024, 3, 8)))
	})
}

func TestBucketize_Month(t *testing.T) {
	t.Run("Success: Calendar months, first through last day", func(t *testing.T) {
		buckets, err := progress.Bucketize(utcDay(2024, 1, 15), utcDay(2024, 3, 10), progress.GranularityMonth)

		require.NoError(t, err)
		require.Len(t, buckets, 3)

		assert.Equal(t, "2024-01", buckets[0].Label)
		assert.Equal(t, utcDay(2024, 1, 1), buckets[0].Start)
		assert.Equal(t, utcDay(2024, 1, 31), buckets[0].End)

		// Leap February.
		assert.Equal(t, "2024-02", buckets[1].Label)
		assert.Equal(t, utcDay(2024, 2, 29), buckets[1].End)

		assert.Equal(t, utcDay(2024, 3, 31), buckets[2].End)
	})

	t.Run("Success: Range inside one month", func(t *testing.T) {
		buckets, err := progress.Bucketize(utcDay(2024, 4, 10), utcDay(2024, 4, 20), progress.GranularityMonth)

		require.NoError(t, err)
		require.Len(t, buckets, 1)
		assert.Equal(t, utcDay(2024, 4, 1), buckets[0].Start)
		assert.Equal(t, utcDay(2024, 4, 30), buckets[0].End)
	})
}

func TestBucketize_Errors(t *testing.T) {
	t.Run("Error: End before start", func(t *testing.T) {
		_, err := progress.Bucketize(utcDay(2024, 3, 10), utcDay(2024, 3, 9), progress.GranularityDay)
		assert.ErrorIs(t, err, progress.ErrInvalidRange)
	})

	t.Run("Error: Unknown granularity", func(t *testing.T) {
		_, err := progress.Bucketize(utcDay(2024, 3, 1), utcDay(2024, 3, 7), progress.Granularity("hourly"))
		assert.ErrorIs(t, err, progress.ErrInvalidGranularity)
	})

	t.Run("Edge Case: Same day after truncation is valid", func(t *testing.T) {
		start := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 10, 6, 0, 0, 0, time.UTC)

		buckets, err := progress.Bucketize(start, end, progress.GranularityDay)
		require.NoError(t, err)
		assert.Len(t, buckets, 1)
	})
}
