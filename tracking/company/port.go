package company

import (
	"context"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

type Repository interface {
	// Create creates a new company
	Create(ctx context.Context, company *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// List retrieves all companies
	List(ctx context.Context) ([]Company, error)

	// Exists checks if a company exists by ID
	Exists(ctx context.Context, id kernel.CompanyID) (bool, error)

	// DeleteCascade deletes a company and all its applications atomically
	DeleteCascade(ctx context.Context, id kernel.CompanyID) error
}
