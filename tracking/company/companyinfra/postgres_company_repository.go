package companyinfra

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acamacho/jobtrail/pkg/kernel"
	"github.com/acamacho/jobtrail/pkg/txm"
	"github.com/acamacho/jobtrail/tracking/company"
	"github.com/jmoiron/sqlx"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db  *sqlx.DB
	txm *txm.Manager
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB, manager *txm.Manager) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db:  db,
		txm: manager,
	}
}

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (id, name, industry, location, website, created_at, updated_at)
		VALUES (:id, :name, :industry, :location, :website, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	query := `
		SELECT id, name, industry, location, website, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := r.db.GetContext(ctx, &c, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company by id: %w", err)
	}

	return &c, nil
}

// List retrieves all companies
func (r *PostgresCompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	query := `
		SELECT id, name, industry, location, website, created_at, updated_at
		FROM companies
		ORDER BY name
	`

	var companies []company.Company
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, nil
}

// Exists checks if a company exists by ID
func (r *PostgresCompanyRepository) Exists(ctx context.Context, id kernel.CompanyID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, string(id)); err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}

	return exists, nil
}

// DeleteCascade deletes a company and all its applications in one transaction
func (r *PostgresCompanyRepository) DeleteCascade(ctx context.Context, id kernel.CompanyID) error {
	return r.txm.Run(ctx, txm.Serializable, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM applications WHERE company_id = $1`, string(id)); err != nil {
			return fmt.Errorf("failed to delete company applications: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, string(id))
		if err != nil {
			return fmt.Errorf("failed to delete company: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return company.ErrCompanyNotFound()
		}

		return nil
	})
}
