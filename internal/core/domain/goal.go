package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNotFound          = errors.New("goal not found")
	ErrGoalNameEmpty         = errors.New("goal name cannot be empty")
	ErrGoalNameTooLong       = errors.New("goal name is too long (max 100 chars)")
	ErrGoalInvalidUserID     = errors.New("invalid user id")
	ErrInvalidCadence        = errors.New("invalid cadence (must be daily, weekly, or monthly)")
	ErrInvalidStartDate      = errors.New("start date is required")
	ErrCompletionBeforeStart = errors.New("completion date is before the goal start date")
	ErrCompletionInFuture    = errors.New("completion date is in the future")
	ErrUnauthorized          = errors.New("operation not permitted for this user")
)

const (
	CadenceDaily   = "daily"
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
	MaxGoalNameLen = 100
)

// Goal is a recurring personal goal. Completions holds the day-level
// completion snapshot: one instant per completed calendar day, never two
// instants on the same day. Cadence is informational; streak and chart math
// treat every goal day-granularly regardless of cadence.
type Goal struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	Name          string      `json:"name" db:"name"`
	Cadence       string      `json:"cadence" db:"cadence"`
	StartDate     time.Time   `json:"start_date" db:"start_date"`
	CurrentStreak int         `json:"current_streak" db:"current_streak"`
	Completions   []time.Time `json:"completions" db:"-"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

func validCadence(c string) bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

func validateGoalName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrGoalNameEmpty
	}
	if len(trimmed) > MaxGoalNameLen {
		return "", ErrGoalNameTooLong
	}
	return trimmed, nil
}

func NewGoal(userID, name, cadence string, startDate time.Time) (*Goal, error) {
	if userID == "" {
		return nil, ErrGoalInvalidUserID
	}

	cleanName, err := validateGoalName(name)
	if err != nil {
		return nil, err
	}

	if cadence == "" {
		cadence = CadenceDaily
	}
	if !validCadence(cadence) {
		return nil, ErrInvalidCadence
	}

	if startDate.IsZero() {
		return nil, ErrInvalidStartDate
	}

	now := time.Now().UTC()

	return &Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        cleanName,
		Cadence:     cadence,
		StartDate:   startDate.UTC(),
		Completions: []time.Time{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Goal) Rename(name string) error {
	cleanName, err := validateGoalName(name)
	if err != nil {
		return err
	}

	g.Name = cleanName
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *Goal) ChangeCadence(cadence string) error {
	if !validCadence(cadence) {
		return ErrInvalidCadence
	}

	g.Cadence = cadence
	g.UpdatedAt = time.Now().UTC()
	return nil
}
