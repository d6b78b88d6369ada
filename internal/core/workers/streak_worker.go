package workers

import (
	"context"
	"log"
	"time"

	"github.com/triptailor/triptailor/internal/core/domain"
	"github.com/triptailor/triptailor/internal/core/progress"
)

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	UpdateStreak(ctx context.Context, id string, current int) error
}

type StreakJob struct {
	GoalID string
}

// StreakWorker refreshes the denormalized current_streak of a goal after its
// completions change. The streak shown to clients is always recomputed from
// the snapshot; this cache only exists so goal listings carry a recent value
// without recomputation in SQL.
type StreakWorker struct {
	repo GoalRepository
	jobs chan StreakJob
}

func NewStreakWorker(repo GoalRepository) *StreakWorker {
	return &StreakWorker{
		repo: repo,
		jobs: make(chan StreakJob, 100),
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Streak Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Streak Worker shutting down...")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(goalID string) {
	select {
	case w.jobs <- StreakJob{GoalID: goalID}:
	default:
		log.Printf("Streak Worker queue full! Dropping job for goal %s", goalID)
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	goal, err := w.repo.GetByID(ctx, job.GoalID)
	if err != nil {
		log.Printf("Worker Error fetching goal %s: %v", job.GoalID, err)
		return
	}

	current := progress.CurrentStreak(progress.BuildIndex(goal), time.Now().UTC())

	if goal.CurrentStreak != current {
		if err := w.repo.UpdateStreak(ctx, goal.ID, current); err != nil {
			log.Printf("Worker Failed to update streak for %s: %v", goal.ID, err)
		} else {
			log.Printf("Streak updated for %q: Current=%d", goal.Name, current)
		}
	}
}
