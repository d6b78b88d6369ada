package progress

import (
	"sort"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
)

type BucketCount struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalGoals       int `json:"total_goals"`
	TotalCompletions int `json:"total_completions"`
	BestStreak       int `json:"best_streak"`
}

// CompletionsPerBucket counts, for each bucket of the range, the number of
// (goal, day) pairs whose completion day falls inside the bucket's span.
// A goal completed on a given day counts once for that day regardless of
// bucket width. Everything is recomputed from the snapshot on each call.
func CompletionsPerBucket(goals []*domain.Goal, start, end time.Time, g Granularity) ([]BucketCount, error) {
	buckets, err := Bucketize(start, end, g)
	if err != nil {
		return nil, err
	}

	indexes := make([]Index, 0, len(goals))
	for _, goal := range goals {
		indexes = append(indexes, BuildIndex(goal))
	}

	counts := make([]BucketCount, 0, len(buckets))
	for _, b := range buckets {
		count := 0
		for _, idx := range indexes {
			for d := b.Start; !d.After(b.End); d = d.AddDate(0, 0, 1) {
				if idx.Contains(NewDayKey(d)) {
					count++
				}
			}
		}
		counts = append(counts, BucketCount{
			Label: b.Label,
			Start: b.Start.Format(dayKeyLayout),
			End:   b.End.Format(dayKeyLayout),
			Count: count,
		})
	}

	return counts, nil
}

// Summarize computes the dashboard stats for a snapshot of goals.
// TotalCompletions counts distinct completed days per goal, BestStreak is
// the maximum current streak across goals (0 for an empty snapshot).
func Summarize(goals []*domain.Goal, today time.Time) Summary {
	s := Summary{TotalGoals: len(goals)}

	for _, goal := range goals {
		idx := BuildIndex(goal)
		s.TotalCompletions += len(idx)

		if streak := CurrentStreak(idx, today); streak > s.BestStreak {
			s.BestStreak = streak
		}
	}

	return s
}

// CompletedDays returns the sorted distinct days within [start, end] on
// which at least one goal was completed.
func CompletedDays(goals []*domain.Goal, start, end time.Time) ([]DayKey, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	startKey := NewDayKey(start)
	endKey := NewDayKey(end)

	seen := make(map[DayKey]struct{})
	for _, goal := range goals {
		for key := range BuildIndex(goal) {
			if key.Before(startKey) || endKey.Before(key) {
				continue
			}
			seen[key] = struct{}{}
		}
	}

	days := make([]DayKey, 0, len(seen))
	for key := range seen {
		days = append(days, key)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days, nil
}
