package application

import (
	"context"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Create creates a new application
	Create(ctx context.Context, application *Application) error

	// Update updates an existing application
	Update(ctx context.Context, id kernel.ApplicationID, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// GetDetailByID retrieves an application joined with its related entities
	GetDetailByID(ctx context.Context, id kernel.ApplicationID) (*ApplicationDetailResponse, error)

	// ListDetails retrieves a page of applications joined with their related
	// entities, newest first
	ListDetails(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[ApplicationDetailResponse], error)

	// Delete deletes an application by ID
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// GetForUpdate loads an application through a transaction handle with a
	// row lock held until the transaction finishes
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id kernel.ApplicationID) (*Application, error)

	// UpdateTx saves an application through a transaction handle
	UpdateTx(ctx context.Context, tx *sqlx.Tx, app *Application) error
}
