package progress

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange       = errors.New("range end cannot be before range start")
	ErrInvalidGranularity = errors.New("invalid granularity (must be day, week, or month)")
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// Bucket is a contiguous calendar sub-range used to group completions.
// Start and End are inclusive UTC midnights.
type Bucket struct {
	Label string
	Start time.Time
	End   time.Time
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// startOfISOWeek returns the Monday of the week containing t.
func startOfISOWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -daysSinceMonday)
}

// Bucketize partitions [start, end] into ordered buckets, oldest first.
//
//   - day: one bucket per calendar day, inclusive on both ends.
//   - week: one bucket per ISO week (Monday through Sunday) whose span
//     intersects the range; boundaries may spill outside the range.
//   - month: one bucket per calendar month intersecting the range,
//     first through last day of the month.
func Bucketize(start, end time.Time, g Granularity) ([]Bucket, error) {
	if !g.Valid() {
		return nil, ErrInvalidGranularity
	}

	start = truncateToDay(start)
	end = truncateToDay(end)

	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	var buckets []Bucket

	switch g {
	case GranularityDay:
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			buckets = append(buckets, Bucket{
				Label: d.Format(dayKeyLayout),
				Start: d,
				End:   d,
			})
		}

	case GranularityWeek:
		for ws := startOfISOWeek(start); !ws.After(end); ws = ws.AddDate(0, 0, 7) {
			buckets = append(buckets, Bucket{
				Label: ws.Format(dayKeyLayout),
				Start: ws,
				End:   ws.AddDate(0, 0, 6),
			})
		}

	case GranularityMonth:
		firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for ms := firstOfMonth; !ms.After(end); ms = ms.AddDate(0, 1, 0) {
			buckets = append(buckets, Bucket{
				Label: ms.Format("2006-01"),
				Start: ms,
				End:   ms.AddDate(0, 1, -1),
			})
		}
	}

	return buckets, nil
}
