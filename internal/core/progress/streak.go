package progress

import "time"

// CurrentStreak counts the consecutive completed days ending at today.
// A run ending yesterday still counts: the user has until the end of today
// to keep the streak alive, so a missing entry for today is not yet a gap.
// Older isolated runs are ignored; this is the current streak, not the
// longest ever. Cadence plays no role: all goals are counted day by day.
func CurrentStreak(idx Index, today time.Time) int {
	day := NewDayKey(today)

	if !idx.Contains(day) {
		day = day.AddDays(-1)
		if !idx.Contains(day) {
			return 0
		}
	}

	streak := 0
	for idx.Contains(day) {
		streak++
		day = day.AddDays(-1)
	}

	return streak
}
