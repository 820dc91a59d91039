package statusinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/status"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresStatusRepository implements status.Repository using PostgreSQL
type PostgresStatusRepository struct {
	db *sqlx.DB
}

// NewPostgresStatusRepository creates a new PostgreSQL status repository
func NewPostgresStatusRepository(db *sqlx.DB) *PostgresStatusRepository {
	return &PostgresStatusRepository{
		db: db,
	}
}

// Create creates a new status
func (r *PostgresStatusRepository) Create(ctx context.Context, s *status.Status) error {
	query := `
		INSERT INTO statuses (id, label, created_at, updated_at)
		VALUES (:id, :label, :created_at, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return status.ErrStatusAlreadyExists()
		}
		return fmt.Errorf("failed to create status: %w", err)
	}

	return nil
}

// GetByID retrieves a status by ID
func (r *PostgresStatusRepository) GetByID(ctx context.Context, id kernel.StatusID) (*status.Status, error) {
	query := `SELECT id, label, created_at, updated_at FROM statuses WHERE id = $1`

	var s status.Status
	err := r.db.GetContext(ctx, &s, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, status.ErrStatusNotFound()
		}
		return nil, fmt.Errorf("failed to get status by id: %w", err)
	}

	return &s, nil
}

// List retrieves all statuses
func (r *PostgresStatusRepository) List(ctx context.Context) ([]status.Status, error) {
	query := `SELECT id, label, created_at, updated_at FROM statuses ORDER BY created_at`

	var statuses []status.Status
	if err := r.db.SelectContext(ctx, &statuses, query); err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}

	return statuses, nil
}

// Exists checks if a status exists by ID
func (r *PostgresStatusRepository) Exists(ctx context.Context, id kernel.StatusID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM statuses WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check status existence: %w", err)
	}

	return exists, nil
}
