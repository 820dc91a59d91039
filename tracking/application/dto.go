package application

import (
	"time"

	"github.com/acamacho/jobtrail/pkg/kernel"
)

// CreateApplicationRequest - DTO for creating a new application
type CreateApplicationRequest struct {
	User          string  `json:"user" validate:"required,uuid4"`
	Company       string  `json:"company" validate:"required,uuid4"`
	Status        string  `json:"status" validate:"required,uuid4"`
	PositionTitle string  `json:"position_title" validate:"required,min=1,max=300"`
	DateApplied   string  `json:"date_applied,omitempty"`
	Source        *string `json:"source,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// UpdateApplicationRequest - DTO for partially updating an application.
// The same generic field map the bulk update uses.
type UpdateApplicationRequest struct {
	Changes map[string]any `json:"changes" validate:"required"`
}

// TransferRequest - DTO for reassigning an application to another user
type TransferRequest struct {
	NewUserID      string `json:"newUserId" validate:"required,uuid4"`
	IsolationLevel string `json:"isolationLevel,omitempty"`
}

// BulkUpdateItem is a single entity change in a bulk update
type BulkUpdateItem struct {
	ID      string         `json:"id" validate:"required,uuid4"`
	Changes map[string]any `json:"changes" validate:"required"`
}

// BulkUpdateRequest - DTO for an all-or-nothing multi-application update
type BulkUpdateRequest struct {
	Updates        []BulkUpdateItem `json:"updates" validate:"required,min=1,dive"`
	IsolationLevel string           `json:"isolationLevel,omitempty"`
}

// BulkUpdateResponse - result of a committed bulk update
type BulkUpdateResponse struct {
	Updated        int                    `json:"updated"`
	ApplicationIDs []kernel.ApplicationID `json:"application_ids"`
	IsolationLevel string                 `json:"isolation_level"`
}

// UserSummary - joined user fields on a detail response
type UserSummary struct {
	ID    kernel.UserID `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
}

// CompanySummary - joined company fields on a detail response
type CompanySummary struct {
	ID       kernel.CompanyID `json:"id"`
	Name     string           `json:"name"`
	Industry *string          `json:"industry,omitempty"`
	Location *string          `json:"location,omitempty"`
}

// StatusSummary - joined status fields on a detail response
type StatusSummary struct {
	ID    kernel.StatusID `json:"id"`
	Label string          `json:"label"`
}

// ApplicationDetailResponse - application enriched with its related entities
type ApplicationDetailResponse struct {
	ID            kernel.ApplicationID `json:"id"`
	User          UserSummary          `json:"user"`
	Company       CompanySummary       `json:"company"`
	Status        StatusSummary        `json:"status"`
	PositionTitle string               `json:"position_title"`
	DateApplied   time.Time            `json:"date_applied"`
	Source        *string              `json:"source,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
