package applicationinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/tracking/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

// applicationDetailModel for joined queries
type applicationDetailModel struct {
	ID              string     `db:"id"`
	PositionTitle   string     `db:"position_title"`
	DateApplied     time.Time  `db:"date_applied"`
	Source          *string    `db:"source"`
	Notes           *string    `db:"notes"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	UserID          string     `db:"user_id"`
	UserName        string     `db:"user_name"`
	UserEmail       string     `db:"user_email"`
	CompanyID       string     `db:"company_id"`
	CompanyName     string     `db:"company_name"`
	CompanyIndustry *string    `db:"company_industry"`
	CompanyLocation *string    `db:"company_location"`
	StatusID        string     `db:"status_id"`
	StatusLabel     string     `db:"status_label"`
}

func (m *applicationDetailModel) toDetailResponse() *application.ApplicationDetailResponse {
	return &application.ApplicationDetailResponse{
		ID: kernel.ApplicationID(m.ID),
		User: application.UserSummary{
			ID:    kernel.UserID(m.UserID),
			Name:  m.UserName,
			Email: m.UserEmail,
		},
		Company: application.CompanySummary{
			ID:       kernel.CompanyID(m.CompanyID),
			Name:     m.CompanyName,
			Industry: m.CompanyIndustry,
			Location: m.CompanyLocation,
		},
		Status: application.StatusSummary{
			ID:    kernel.StatusID(m.StatusID),
			Label: m.StatusLabel,
		},
		PositionTitle: m.PositionTitle,
		DateApplied:   m.DateApplied,
		Source:        m.Source,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

const detailSelect = `
	SELECT
		a.id, a.position_title, a.date_applied, a.source, a.notes,
		a.created_at, a.updated_at,
		u.id AS user_id, u.name AS user_name, u.email AS user_email,
		c.id AS company_id, c.name AS company_name,
		c.industry AS company_industry, c.location AS company_location,
		s.id AS status_id, s.label AS status_label
	FROM applications a
	INNER JOIN users u ON a.user_id = u.id
	INNER JOIN companies c ON a.company_id = c.id
	INNER JOIN statuses s ON a.status_id = s.id
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, user_id, company_id, status_id, position_title,
			date_applied, source, notes, created_at, updated_at
		) VALUES (
			:id, :user_id, :company_id, :status_id, :position_title,
			:date_applied, :source, :notes, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return application.ErrInvalidReference().WithDetail("constraint", pqErr.Constraint)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// Update updates an existing application
func (r *PostgresApplicationRepository) Update(ctx context.Context, id kernel.ApplicationID, app *application.Application) error {
	query := `
		UPDATE applications SET
			user_id = :user_id,
			company_id = :company_id,
			status_id = :status_id,
			position_title = :position_title,
			date_applied = :date_applied,
			source = :source,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, app)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return application.ErrInvalidReference().WithDetail("constraint", pqErr.Constraint)
		}
		return fmt.Errorf("failed to update application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT id, user_id, company_id, status_id, position_title,
			date_applied, source, notes, created_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var app application.Application
	err := r.db.GetContext(ctx, &app, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application by id: %w", err)
	}

	return &app, nil
}

// GetDetailByID retrieves an application with its user, company and status
func (r *PostgresApplicationRepository) GetDetailByID(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationDetailResponse, error) {
	query := detailSelect + ` WHERE a.id = $1`

	var model applicationDetailModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application detail: %w", err)
	}

	return model.toDetailResponse(), nil
}

// ListDetails retrieves a page of applications with their related entities
func (r *PostgresApplicationRepository) ListDetails(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[application.ApplicationDetailResponse], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications`); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	query := detailSelect + `
		ORDER BY a.date_applied DESC
		LIMIT $1 OFFSET $2
	`

	var models []applicationDetailModel
	if err := r.db.SelectContext(ctx, &models, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	responses := make([]application.ApplicationDetailResponse, 0, len(models))
	for _, model := range models {
		responses = append(responses, *model.toDetailResponse())
	}

	page := kernel.NewPaginated(responses, pagination.Page, pagination.PageSize, total)
	return &page, nil
}

// Delete deletes an application by ID
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	query := `DELETE FROM applications WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// GetForUpdate loads an application through the transaction with a row lock
func (r *PostgresApplicationRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id kernel.ApplicationID) (*application.Application, error) {
	query := `
		SELECT id, user_id, company_id, status_id, position_title,
			date_applied, source, notes, created_at, updated_at
		FROM applications
		WHERE id = $1
		FOR UPDATE
	`

	var app application.Application
	err := tx.GetContext(ctx, &app, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to lock application: %w", err)
	}

	return &app, nil
}

// UpdateTx saves an application through the transaction handle
func (r *PostgresApplicationRepository) UpdateTx(ctx context.Context, tx *sqlx.Tx, app *application.Application) error {
	query := `
		UPDATE applications SET
			user_id = :user_id,
			company_id = :company_id,
			status_id = :status_id,
			position_title = :position_title,
			date_applied = :date_applied,
			source = :source,
			notes = :notes,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := tx.NamedExecContext(ctx, query, app)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return application.ErrInvalidReference().WithDetail("constraint", pqErr.Constraint)
		}
		return fmt.Errorf("failed to update application in transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound().WithDetail("application_id", app.ID.String())
	}

	return nil
}
