package status

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// Status is a user-defined application state (e.g. "Applied", "Offer")
type Status struct {
	ID        kernel.StatusID `db:"id" json:"id"`
	Label     string          `db:"label" json:"label"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// CreateStatusRequest - DTO for creating a new status
type CreateStatusRequest struct {
	Label string `json:"label" validate:"required,min=1,max=100"`
}
