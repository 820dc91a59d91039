package user

import (
	"context"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// List retrieves all users
	List(ctx context.Context) ([]User, error)

	// Exists checks if a user exists by ID
	Exists(ctx context.Context, id kernel.UserID) (bool, error)

	// DeleteCascade deletes a user and all their applications atomically
	DeleteCascade(ctx context.Context, id kernel.UserID) error
}
