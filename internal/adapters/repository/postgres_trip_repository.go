package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/triptailor/triptailor/internal/core/domain"
)

type PostgresTripRepository struct {
	db *sqlx.DB
}

func NewPostgresTripRepository(db *sqlx.DB) *PostgresTripRepository {
	return &PostgresTripRepository{db: db}
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresTripRepository) scanRow(row scannable) (*domain.Trip, error) {
	var t domain.Trip
	var prefs pq.StringArray
	var planJSON []byte

	err := row.Scan(
		&t.ID, &t.UserID, &t.Destination,
		&t.StartDate, &t.EndDate,
		&prefs, &planJSON, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Preferences = []string(prefs)
	if len(planJSON) > 0 {
		if err := json.Unmarshal(planJSON, &t.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
	}

	return &t, nil
}

func (r *PostgresTripRepository) Create(ctx context.Context, t *domain.Trip) error {
	planJSON, err := json.Marshal(t.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `
        INSERT INTO trips (
            id, user_id, destination,
            start_date, end_date,
            preferences, plan, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Destination,
		t.StartDate, t.EndDate,
		pq.Array(t.Preferences), planJSON, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

func (r *PostgresTripRepository) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	query := `
        SELECT id, user_id, destination, start_date, end_date, preferences, plan, created_at
        FROM trips WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	t, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTripNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return t, nil
}

func (r *PostgresTripRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Trip, error) {
	query := `
        SELECT id, user_id, destination, start_date, end_date, preferences, plan, created_at
        FROM trips
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("row scan error: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

func (r *PostgresTripRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTripNotFound
	}

	return nil
}
