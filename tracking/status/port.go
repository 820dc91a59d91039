package status

import (
	"context"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

type Repository interface {
	// Create creates a new status
	Create(ctx context.Context, status *Status) error

	// GetByID retrieves a status by ID
	GetByID(ctx context.Context, id kernel.StatusID) (*Status, error)

	// List retrieves all statuses
	List(ctx context.Context) ([]Status, error)

	// Exists checks if a status exists by ID
	Exists(ctx context.Context, id kernel.StatusID) (bool, error)
}
