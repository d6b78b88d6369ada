package domain

import "context"

type UserRepository interface {
	// Create persists a new user. Implementations must reject duplicate
	// emails with ErrEmailAlreadyExists.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by its unique identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retrieves a user by its (lowercased) email.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
