package company

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// Company is an employer a user applied to
type Company struct {
	ID        kernel.CompanyID `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	Industry  *string          `db:"industry" json:"industry,omitempty"`
	Location  *string          `db:"location" json:"location,omitempty"`
	Website   *string          `db:"website" json:"website,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
}

// CreateCompanyRequest - DTO for creating a new company
type CreateCompanyRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Industry *string `json:"industry,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
}
