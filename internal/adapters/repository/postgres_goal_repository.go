package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/triptailor/triptailor/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresGoalRepository stores goals in a goals table and their day-level
// completions in goal_completions, keyed by (goal_id, day). The primary key
// enforces the one-entry-per-day invariant at the storage level.
type PostgresGoalRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRepository(db *sqlx.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

const goalColumns = `id, user_id, name, cadence, start_date, current_streak, created_at, updated_at`

func (r *PostgresGoalRepository) Create(ctx context.Context, g *domain.Goal) error {
	query := `
        INSERT INTO goals (` + goalColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		g.ID, g.UserID, g.Name, g.Cadence, g.StartDate, g.CurrentStreak,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return errors.New("referenced user does not exist")
		}
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	var g domain.Goal
	if err := r.db.GetContext(ctx, &g, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	completions, err := r.loadCompletions(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Completions = completions

	return &g, nil
}

func (r *PostgresGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	query := `
        SELECT ` + goalColumns + ` FROM goals
        WHERE user_id = $1
        ORDER BY start_date ASC, created_at ASC`

	goals := []*domain.Goal{}
	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT goal_id, day FROM goal_completions
        WHERE user_id = $1
        ORDER BY day ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("completions query error: %w", err)
	}
	defer rows.Close()

	byGoal := make(map[string][]time.Time)
	for rows.Next() {
		var goalID string
		var day time.Time
		if err := rows.Scan(&goalID, &day); err != nil {
			return nil, fmt.Errorf("completion scan error: %w", err)
		}
		byGoal[goalID] = append(byGoal[goalID], day.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completions rows error: %w", err)
	}

	for _, g := range goals {
		g.Completions = byGoal[g.ID]
		if g.Completions == nil {
			g.Completions = []time.Time{}
		}
	}

	return goals, nil
}

func (r *PostgresGoalRepository) Update(ctx context.Context, g *domain.Goal) error {
	query := `
        UPDATE goals
        SET name = $1, cadence = $2, updated_at = NOW()
        WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, g.Name, g.Cadence, g.ID)
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_completions WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("delete completions failed: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete goal failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return tx.Commit()
}

func (r *PostgresGoalRepository) ToggleCompletion(ctx context.Context, goalID, userID string, day time.Time) (bool, error) {
	dayUTC := day.UTC().Truncate(24 * time.Hour)

	insert := `
        INSERT INTO goal_completions (goal_id, user_id, day, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (goal_id, day) DO NOTHING`

	res, err := r.db.ExecContext(ctx, insert, goalID, userID, dayUTC)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return false, domain.ErrGoalNotFound
		}
		return false, fmt.Errorf("toggle insert failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return true, nil
	}

	// Already completed on that day: the toggle removes it.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM goal_completions WHERE goal_id = $1 AND day = $2`, goalID, dayUTC); err != nil {
		return false, fmt.Errorf("toggle delete failed: %w", err)
	}

	return false, nil
}

func (r *PostgresGoalRepository) UpdateStreak(ctx context.Context, id string, current int) error {
	query := `UPDATE goals SET current_streak = $1, updated_at = NOW() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, current, id)
	if err != nil {
		return fmt.Errorf("streak update failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

func (r *PostgresGoalRepository) loadCompletions(ctx context.Context, goalID string) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day FROM goal_completions WHERE goal_id = $1 ORDER BY day ASC`, goalID)
	if err != nil {
		return nil, fmt.Errorf("completions query error: %w", err)
	}
	defer rows.Close()

	completions := []time.Time{}
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("completion scan error: %w", err)
		}
		completions = append(completions, day.UTC())
	}

	return completions, rows.Err()
}
