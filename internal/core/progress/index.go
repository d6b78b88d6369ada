package progress

import (
	"log"

	"github.com/triptailor/triptailor/internal/core/domain"
)

// Index is a day-level membership set built from a goal's completion list.
type Index map[DayKey]struct{}

// BuildIndex collapses a goal's completion instants into a set of day keys.
// Duplicate days collapse to one entry. Completions dated before the goal's
// start day are dropped with a warning rather than failing the computation:
// they can legitimately arrive via clock skew or late sync writes.
func BuildIndex(goal *domain.Goal) Index {
	idx := make(Index, len(goal.Completions))
	startKey := NewDayKey(goal.StartDate)

	for _, c := range goal.Completions {
		key := NewDayKey(c)
		if key.Before(startKey) {
			log.Printf("progress: dropping completion %s before start %s of goal %s", key, startKey, goal.ID)
			continue
		}
		idx[key] = struct{}{}
	}

	return idx
}

func (i Index) Contains(key DayKey) bool {
	_, ok := i[key]
	return ok
}
